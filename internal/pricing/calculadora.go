package pricing

import (
	"github.com/shopspring/decimal"
)

// Carga holds the physical cargo attributes of a pricing request. Immutable
// per request.
type Carga struct {
	PesoKg         float64
	VolumenM3      float64
	ValorDeclarado decimal.Decimal
	Bultos         int
}

// Claves del desglose de precio devuelto al frontend. El desglose es un mapa
// plano serializable: decimales para montos, floats para pesos, ints para
// flags.
const (
	DesglosePrecioLista = "precio_lista"
	DesglosePesoACobrar = "peso_a_cobrar_kg"
	DesgloseTipoTarifa  = "tipo_tarifa" // 0 = peso real, 2 = volumétrico
	DesgloseTipoEntrega = "tipo_entrega"
	DesgloseDescuento   = "descuento"
	DesgloseFlete       = "flete"
	DesgloseSeguro      = "seguro"
)

const (
	flagTarifaPesoReal    = 0
	flagTarifaVolumetrica = 2
)

var cien = decimal.NewFromInt(100)

// Calculadora turns a resolved tariff (or a matched special tariff) plus
// commercial modifiers into a final price and a structured breakdown.
type Calculadora struct {
	// TasaSeguroDefault applies when neither the special tariff nor the
	// client's commercial terms override the insurance rate.
	TasaSeguroDefault decimal.Decimal
}

func flagTipoTarifa(peso PesoACobrar) int {
	if peso.Criterio == CriterioVolumetrico {
		return flagTarifaVolumetrica
	}
	return flagTarifaPesoReal
}

// PrecioPorContrato applies a signed percentage modifier to a resolved list
// price and adds insurance on the declared value.
func (c Calculadora) PrecioPorContrato(base decimal.Decimal, modificadorPct decimal.Decimal, carga Carga, peso PesoACobrar, tasaSeguro decimal.Decimal, tipoEntrega string, trace *Trace) (decimal.Decimal, map[string]any) {
	desglose := map[string]any{
		DesglosePrecioLista: base,
		DesglosePesoACobrar: peso.ACobrarKg,
		DesgloseTipoTarifa:  flagTipoTarifa(peso),
		DesgloseTipoEntrega: tipoEntrega,
	}

	flete := base
	if !modificadorPct.IsZero() {
		ajuste := base.Mul(modificadorPct).Div(cien)
		flete = base.Add(ajuste)
		desglose[DesgloseDescuento] = ajuste
		trace.Agregar("modificador comercial %s%%: %s sobre precio de lista %s", modificadorPct, ajuste, base)
	}
	desglose[DesgloseFlete] = flete

	precio := c.agregarSeguro(flete, carga, c.tasaCliente(tasaSeguro), desglose, trace)
	return precio.Round(2), desglose
}

// tasaCliente resolves the effective client insurance rate: an unset (zero)
// rate falls back to the carrier default. An explicit special-tariff override
// of 0 is handled separately and does NOT fall through here.
func (c Calculadora) tasaCliente(tasa decimal.Decimal) decimal.Decimal {
	if tasa.IsZero() {
		return c.TasaSeguroDefault
	}
	return tasa
}

// PrecioPorTarifaEspecial dispatches on the decoded pricing mode of a matched
// special tariff. A failing custom formula falls back to the base tariff
// price and leaves a trace note — the error never reaches the caller.
func (c Calculadora) PrecioPorTarifaEspecial(m Modalidad, carga Carga, peso PesoACobrar, base decimal.Decimal, tasaSeguro decimal.Decimal, seguroOverride *decimal.Decimal, trace *Trace) (decimal.Decimal, map[string]any) {
	desglose := map[string]any{
		DesglosePesoACobrar: peso.ACobrarKg,
		DesgloseTipoTarifa:  flagTipoTarifa(peso),
	}

	var flete decimal.Decimal
	switch mod := m.(type) {
	case ModFijo:
		flete = mod.Precio
		trace.Agregar("tarifa especial fija: %s", flete)

	case ModPorKg:
		flete = decimal.NewFromFloat(carga.PesoKg).Mul(mod.PrecioKg)
		if flete.LessThan(mod.Minimo) {
			trace.Agregar("por_kg %s × %.2f kg = %s, se aplica el mínimo %s", mod.PrecioKg, carga.PesoKg, flete, mod.Minimo)
			flete = mod.Minimo
		} else {
			trace.Agregar("por_kg %s × %.2f kg = %s", mod.PrecioKg, carga.PesoKg, flete)
		}

	case ModPorM3:
		flete = decimal.NewFromFloat(carga.VolumenM3).Mul(mod.PrecioM3)
		trace.Agregar("por_m3 %s × %.3f m³ = %s", mod.PrecioM3, carga.VolumenM3, flete)

	case ModPorPallet:
		flete = decimal.NewFromInt(int64(mod.Pallets)).Mul(mod.PrecioPallet)
		trace.Agregar("por_pallet %s × %d pallets = %s", mod.PrecioPallet, mod.Pallets, flete)

	case ModPorBulto:
		bultos := carga.Bultos
		if bultos <= 0 {
			bultos = 1
		}
		flete = decimal.NewFromInt(int64(bultos)).Mul(mod.PrecioBulto)
		trace.Agregar("por_bulto %s × %d bultos = %s", mod.PrecioBulto, bultos, flete)

	case ModFormula:
		valor, err := EvaluarFormula(mod.Expresion, carga.PesoKg, carga.VolumenM3)
		if err != nil {
			flete = base
			trace.Agregar("fórmula %q inválida (%v): se usa el precio de tarifa base %s", mod.Expresion, err, base)
		} else {
			flete = decimal.NewFromFloat(valor)
			trace.Agregar("fórmula %q con kg=%.2f m3=%.3f = %s", mod.Expresion, carga.PesoKg, carga.VolumenM3, flete)
		}

	case ModDescuentoPorcentaje:
		referencia := base
		if mod.PrecioM3 != nil {
			referencia = decimal.NewFromFloat(carga.VolumenM3).Mul(*mod.PrecioM3)
		}
		ajuste := referencia.Mul(decimal.NewFromFloat(mod.Porcentaje)).Div(cien)
		flete = referencia.Add(ajuste)
		desglose[DesgloseDescuento] = ajuste
		trace.Agregar("ajuste %.2f%% sobre %s = %s", mod.Porcentaje, referencia, ajuste)

	case ModDescuentoMonto:
		flete = base.Add(mod.Monto)
		desglose[DesgloseDescuento] = mod.Monto
		trace.Agregar("ajuste de monto %s sobre precio base %s", mod.Monto, base)

	default:
		flete = base
		trace.Agregar("tipo de precio %q desconocido: se usa el precio de tarifa base %s", m.TipoModalidad(), base)
	}

	desglose[DesgloseFlete] = flete

	// Insurance override: an explicit 0 means "sin seguro"; nil falls back to
	// the client/default rate.
	tasa := c.tasaCliente(tasaSeguro)
	if seguroOverride != nil {
		tasa = *seguroOverride
	}

	precio := c.agregarSeguro(flete, carga, tasa, desglose, trace)
	return precio.Round(2), desglose
}

func (c Calculadora) agregarSeguro(precio decimal.Decimal, carga Carga, tasa decimal.Decimal, desglose map[string]any, trace *Trace) decimal.Decimal {
	if tasa.LessThanOrEqual(decimal.Zero) || carga.ValorDeclarado.LessThanOrEqual(decimal.Zero) {
		return precio
	}
	seguro := carga.ValorDeclarado.Mul(tasa)
	desglose[DesgloseSeguro] = seguro
	trace.Agregar("seguro %s × tasa %s = %s", carga.ValorDeclarado, tasa, seguro)
	return precio.Add(seguro)
}
