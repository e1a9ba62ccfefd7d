package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"fletero/internal/model"
	"fletero/internal/pricing"
	"fletero/internal/repository"
)

// buscarCotizacion finds a pre-existing bot/manual quotation for a recipient.
// Search order: exact CUIT among pending+valid, most recent first; then fuzzy
// name plus alias-expanded destination under the same filter.
func buscarCotizacion(ctx context.Context, repo repository.CotizacionRepository, cuit, nombre, destino string, ahora time.Time, trace *pricing.Trace) (*model.Cotizacion, error) {
	if cuit != "" {
		cot, err := repo.FindPendienteByCUIT(ctx, cuit, ahora)
		if err != nil {
			return nil, err
		}
		if cot != nil {
			trace.Agregar("cotización pendiente %s encontrada por CUIT %s", cot.ID, cuit)
			return cot, nil
		}
		trace.Agregar("sin cotización pendiente para CUIT %s", cuit)
	}

	if nombre != "" && destino != "" {
		destinos := pricing.ExpandirAlias(destino)
		cot, err := repo.FindPendienteByNombreDestino(ctx, nombre, destinos, ahora)
		if err != nil {
			return nil, err
		}
		if cot != nil {
			trace.Agregar("cotización pendiente %s encontrada por nombre %q y destino %s", cot.ID, nombre, cot.Destino)
			return cot, nil
		}
		trace.Agregar("sin cotización pendiente para %q con destino %s", nombre, destino)
	}

	return nil, nil
}

// validarCotizacion checks the actual cargo against the quoted one. Weight is
// tolerance-based (default 10 %); package count has zero tolerance by design.
func validarCotizacion(cot *model.Cotizacion, pesoKg float64, bultos int) (bool, string) {
	if cot.PesoKg > 0 && pesoKg > 0 {
		desvio := math.Abs(pesoKg-cot.PesoKg) / cot.PesoKg * 100
		if desvio > cot.Tolerancia() {
			return true, fmt.Sprintf("el peso real %.2f kg difiere %.1f%% del cotizado %.2f kg (tolerancia %.0f%%)",
				pesoKg, desvio, cot.PesoKg, cot.Tolerancia())
		}
	}
	if cot.Bultos > 0 && bultos > 0 && bultos != cot.Bultos {
		return true, fmt.Sprintf("la cantidad de bultos %d no coincide con la cotizada %d", bultos, cot.Bultos)
	}
	return false, ""
}
