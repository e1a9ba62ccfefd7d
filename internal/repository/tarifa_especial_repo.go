package repository

import (
	"context"
	"time"

	"fletero/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TarifaEspecialRepository fetches a client's active custom pricing rules.
type TarifaEspecialRepository interface {
	// FindActivas returns active rules already in force (valida_desde <= hoy),
	// ordered by prioridad descending, with their condition/pricing blobs
	// decoded into typed variants.
	FindActivas(ctx context.Context, clienteID uuid.UUID, hoy time.Time) ([]model.TarifaEspecial, error)
}

type tarifaEspecialRepo struct{ db *gorm.DB }

func NewTarifaEspecialRepository(db *gorm.DB) TarifaEspecialRepository {
	return &tarifaEspecialRepo{db: db}
}

func (r *tarifaEspecialRepo) FindActivas(ctx context.Context, clienteID uuid.UUID, hoy time.Time) ([]model.TarifaEspecial, error) {
	var tarifas []model.TarifaEspecial
	err := r.db.WithContext(ctx).
		Where("cliente_id = ? AND activa = true", clienteID).
		Where("valida_desde <= ?", hoy).
		Order("prioridad DESC").
		Find(&tarifas).Error
	if err != nil {
		return nil, err
	}
	for i := range tarifas {
		tarifas[i].Decodificar()
	}
	return tarifas, nil
}
