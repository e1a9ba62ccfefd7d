package service

import (
	"context"
	"math"

	"fletero/internal/model"
	"fletero/internal/pricing"
	"fletero/internal/repository"

	"github.com/shopspring/decimal"
)

// UmbralToneladaKg: above this chargeable weight the resolver first tries the
// per-kilogram tonnage bands instead of flat bucket pricing.
const UmbralToneladaKg = 1000.0

// ResultadoTarifa is the outcome of a base tariff lookup. Both pointers nil
// means no tariff exists for the route/weight — a normal outcome, not an
// error.
type ResultadoTarifa struct {
	Tarifa      *model.TarifaPeso
	Tonelada    *model.TarifaTonelada
	UsaTonelada bool
	PrecioBase  decimal.Decimal
}

// TarifaResolver looks up a base freight price with an ordered fallback
// chain. The strategies run strictly in sequence — an earlier, more specific
// match always wins over a later, broader fallback, so they must never be
// parallelized.
type TarifaResolver struct {
	repo repository.TarifaRepository
}

func NewTarifaResolver(repo repository.TarifaRepository) *TarifaResolver {
	return &TarifaResolver{repo: repo}
}

// BucketPeso rounds a chargeable weight up to the next multiple of 10 kg,
// the granularity at which weight tariffs are loaded.
func BucketPeso(kg float64) float64 {
	return math.Ceil(kg/10) * 10
}

// estrategiaBusqueda is one step of the fallback chain, with the label the
// trace uses to describe it.
type estrategiaBusqueda struct {
	descripcion string
	busqueda    repository.BusquedaTarifaPeso
}

// Resolver finds the base tariff for a route and chargeable weight.
// Order: tonnage short-circuit (only above the threshold), weight bucket by
// route + delivery type, same route without delivery type, and finally
// same-origin/any-destination — the last one is explicitly flagged in the
// trace because it means no route-specific tariff exists.
func (r *TarifaResolver) Resolver(ctx context.Context, origen, destino string, pesoACobrarKg float64, tipoEntrega string, trace *pricing.Trace) (*ResultadoTarifa, error) {
	origenes := pricing.ExpandirAlias(origen)
	destinos := pricing.ExpandirAlias(destino)

	if pesoACobrarKg > UmbralToneladaKg {
		tonelada, err := r.repo.FindTarifaTonelada(ctx, origenes, destinos, tipoEntrega, pesoACobrarKg)
		if err != nil {
			return nil, err
		}
		if tonelada != nil {
			precio := decimal.NewFromFloat(pesoACobrarKg).Mul(tonelada.PrecioPorKg)
			trace.Agregar("tonelaje: banda %s→%s desde %.0f kg a %s/kg → %.2f kg × %s = %s",
				tonelada.Origen, tonelada.Destino, tonelada.ToneladaDesdeKg, tonelada.PrecioPorKg,
				pesoACobrarKg, tonelada.PrecioPorKg, precio)
			return &ResultadoTarifa{Tonelada: tonelada, UsaTonelada: true, PrecioBase: precio}, nil
		}
		trace.Agregar("tonelaje: %.2f kg supera el umbral de %.0f kg pero no hay banda activa para %s→%s, se continúa con tarifas por peso",
			pesoACobrarKg, UmbralToneladaKg, origen, destino)
	}

	bucket := BucketPeso(pesoACobrarKg)
	estrategias := []estrategiaBusqueda{
		{
			descripcion: "por ruta y tipo de entrega",
			busqueda: repository.BusquedaTarifaPeso{
				Origenes: origenes, Destinos: destinos,
				TipoEntrega: tipoEntrega, BucketKg: bucket,
			},
		},
		{
			descripcion: "por ruta sin tipo de entrega",
			busqueda: repository.BusquedaTarifaPeso{
				Origenes: origenes, Destinos: destinos, BucketKg: bucket,
			},
		},
		{
			// Same-origin fallback: returns a tariff for another destination
			// when no route-specific one exists. Preserved, documented
			// behavior — the trace flags it so support can spot it.
			descripcion: "solo por origen (sin tarifa específica para la ruta)",
			busqueda: repository.BusquedaTarifaPeso{
				Origenes: origenes, BucketKg: bucket, SoloOrigen: true,
			},
		},
	}

	for _, e := range estrategias {
		tarifa, err := r.repo.FindTarifaPeso(ctx, e.busqueda)
		if err != nil {
			return nil, err
		}
		if tarifa == nil {
			trace.Agregar("búsqueda %s, bucket %.0f kg: sin resultado", e.descripcion, bucket)
			continue
		}
		trace.Agregar("búsqueda %s, bucket %.0f kg: tarifa %s→%s hasta %.0f kg a %s",
			e.descripcion, bucket, tarifa.Origen, tarifa.Destino, tarifa.PesoHastaKg, tarifa.Precio)
		return &ResultadoTarifa{Tarifa: tarifa, PrecioBase: tarifa.Precio}, nil
	}

	trace.Agregar("sin tarifa cargada para %s→%s con %.2f kg (bucket %.0f kg)", origen, destino, pesoACobrarKg, bucket)
	return nil, nil
}
