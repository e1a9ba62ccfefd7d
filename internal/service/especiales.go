package service

import (
	"fmt"
	"time"

	"fletero/internal/model"
	"fletero/internal/pricing"
)

// EvaluacionTarifaEspecial records the outcome for one rule. Every fetched
// rule gets an entry — including the ones that did not match, with the reason
// why — so the UI can explain "why didn't this apply".
type EvaluacionTarifaEspecial struct {
	Tarifa model.TarifaEspecial
	Cumple bool
	Motivo string
}

// evaluarTarifasEspeciales walks a client's active rules (already ordered by
// priority descending) against the current shipment. The applied rule is the
// FIRST matching one — the highest priority among matches, not the globally
// highest priority.
func evaluarTarifasEspeciales(tarifas []model.TarifaEspecial, carga pricing.Carga, origen, destino string, hoy time.Time, trace *pricing.Trace) ([]EvaluacionTarifaEspecial, *model.TarifaEspecial) {
	evaluadas := make([]EvaluacionTarifaEspecial, 0, len(tarifas))
	var aplicada *model.TarifaEspecial

	for i := range tarifas {
		t := tarifas[i]
		ev := evaluarTarifaEspecial(&t, carga, origen, destino, hoy)
		trace.Agregar("tarifa especial %q (prioridad %d): cumple=%t — %s", t.Nombre, t.Prioridad, ev.Cumple, ev.Motivo)
		evaluadas = append(evaluadas, ev)
		if ev.Cumple && aplicada == nil {
			aplicada = &tarifas[i]
		}
	}
	return evaluadas, aplicada
}

func evaluarTarifaEspecial(t *model.TarifaEspecial, carga pricing.Carga, origen, destino string, hoy time.Time) EvaluacionTarifaEspecial {
	ev := EvaluacionTarifaEspecial{Tarifa: *t}

	if !t.VigenteEn(hoy) {
		if t.ValidaHasta != nil && t.ValidaHasta.Before(hoy) {
			ev.Motivo = fmt.Sprintf("vencida el %s", t.ValidaHasta.Format("2006-01-02"))
		} else {
			ev.Motivo = fmt.Sprintf("vigente recién desde el %s", t.ValidaDesde.Format("2006-01-02"))
		}
		return ev
	}

	if t.Origen != nil && !pricing.MismaCiudad(*t.Origen, origen) {
		ev.Motivo = fmt.Sprintf("la ruta esperada parte de %s, no de %s", *t.Origen, origen)
		return ev
	}
	if t.Destino != nil && !pricing.MismaCiudad(*t.Destino, destino) {
		ev.Motivo = fmt.Sprintf("la ruta esperada llega a %s, no a %s", *t.Destino, destino)
		return ev
	}

	switch cond := t.Condicion.(type) {
	case pricing.CondPesoMinimo:
		if carga.PesoKg < cond.Kg {
			ev.Motivo = fmt.Sprintf("requiere al menos %.2f kg, la carga tiene %.2f kg", cond.Kg, carga.PesoKg)
			return ev
		}
		ev.Cumple = true
		ev.Motivo = fmt.Sprintf("peso %.2f kg alcanza el mínimo de %.2f kg", carga.PesoKg, cond.Kg)

	case pricing.CondVolumenMinimo:
		if carga.VolumenM3 < cond.M3 {
			ev.Motivo = fmt.Sprintf("requiere al menos %.3f m³, la carga tiene %.3f m³", cond.M3, carga.VolumenM3)
			return ev
		}
		ev.Cumple = true
		ev.Motivo = fmt.Sprintf("volumen %.3f m³ alcanza el mínimo de %.3f m³", carga.VolumenM3, cond.M3)

	case pricing.CondBultosMinimo:
		if carga.Bultos < cond.Cantidad {
			ev.Motivo = fmt.Sprintf("requiere al menos %d bultos, el envío tiene %d", cond.Cantidad, carga.Bultos)
			return ev
		}
		ev.Cumple = true
		ev.Motivo = fmt.Sprintf("%d bultos alcanzan el mínimo de %d", carga.Bultos, cond.Cantidad)

	case pricing.CondTipoCarga:
		// Advisory only: annotates but never blocks.
		ev.Cumple = true
		ev.Motivo = fmt.Sprintf("condición por tipo de carga %q (informativa, no bloquea)", cond.Tipo)

	case pricing.CondCualquiera:
		ev.Cumple = true
		ev.Motivo = "aplica a cualquier envío"

	default:
		// Unknown condition types never block a quotation.
		ev.Cumple = true
		ev.Motivo = fmt.Sprintf("condición %q no reconocida, se considera cumplida", t.TipoCondicion)
	}

	return ev
}
