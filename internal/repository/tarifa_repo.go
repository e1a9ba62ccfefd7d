package repository

import (
	"context"
	"errors"

	"fletero/internal/model"

	"gorm.io/gorm"
)

// BusquedaTarifaPeso describes one step of the resolver's fallback chain.
// Origenes/Destinos are alias-expanded variant lists; an empty TipoEntrega
// drops the delivery-type filter; SoloOrigen drops the destination filter
// entirely (same-origin fallback).
type BusquedaTarifaPeso struct {
	Origenes    []string
	Destinos    []string
	TipoEntrega string
	BucketKg    float64
	SoloOrigen  bool
}

// TarifaRepository is the read-only access to tariff reference data.
// Misses return (nil, nil).
type TarifaRepository interface {
	// FindTarifaPeso returns the cheapest applicable bucket: the first row
	// (excluding volume-typed tariffs) whose inclusive upper bound covers the
	// bucket, ordered by upper bound ascending.
	FindTarifaPeso(ctx context.Context, b BusquedaTarifaPeso) (*model.TarifaPeso, error)
	// FindTarifaTonelada returns the first active per-kg band covering pesoKg,
	// ordered by lower bound ascending. Open-ended bands (nil upper) match any
	// weight above their lower bound.
	FindTarifaTonelada(ctx context.Context, origenes, destinos []string, tipoEntrega string, pesoKg float64) (*model.TarifaTonelada, error)
}

type tarifaRepo struct{ db *gorm.DB }

func NewTarifaRepository(db *gorm.DB) TarifaRepository { return &tarifaRepo{db: db} }

func (r *tarifaRepo) FindTarifaPeso(ctx context.Context, b BusquedaTarifaPeso) (*model.TarifaPeso, error) {
	q := r.db.WithContext(ctx).
		Where("origen IN ?", b.Origenes).
		Where("tipo_tarifa <> ?", model.TipoTarifaVolumen).
		Where("peso_hasta_kg >= ?", b.BucketKg)

	if !b.SoloOrigen {
		q = q.Where("destino IN ?", b.Destinos)
	}
	if b.TipoEntrega != "" {
		q = q.Where("tipo_entrega = ?", b.TipoEntrega)
	}

	var t model.TarifaPeso
	err := q.Order("peso_hasta_kg ASC").First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tarifaRepo) FindTarifaTonelada(ctx context.Context, origenes, destinos []string, tipoEntrega string, pesoKg float64) (*model.TarifaTonelada, error) {
	var t model.TarifaTonelada
	err := r.db.WithContext(ctx).
		Where("origen IN ? AND destino IN ?", origenes, destinos).
		Where("tipo_entrega = ? AND activa = true", tipoEntrega).
		Where("tonelada_desde_kg <= ?", pesoKg).
		Where("tonelada_hasta_kg IS NULL OR tonelada_hasta_kg >= ?", pesoKg).
		Order("tonelada_desde_kg ASC").
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}
