package repository

import (
	"context"
	"errors"
	"time"

	"fletero/internal/model"

	"gorm.io/gorm"
)

// CotizacionRepository reads previously computed offers. The pricing engine
// never creates quotations; the expiry sweep (worker) is the only writer
// here.
type CotizacionRepository interface {
	// FindPendienteByCUIT returns the most recent pending, unexpired quotation
	// for an exact CUIT match.
	FindPendienteByCUIT(ctx context.Context, cuit string, ahora time.Time) (*model.Cotizacion, error)
	// FindPendienteByNombreDestino does a fuzzy name match restricted to the
	// alias-expanded destination variants.
	FindPendienteByNombreDestino(ctx context.Context, nombre string, destinos []string, ahora time.Time) (*model.Cotizacion, error)
	// MarcarVencidas flips pending quotations past their validity to "vencida"
	// and returns how many rows changed.
	MarcarVencidas(ctx context.Context, ahora time.Time) (int64, error)
}

type cotizacionRepo struct{ db *gorm.DB }

func NewCotizacionRepository(db *gorm.DB) CotizacionRepository { return &cotizacionRepo{db: db} }

func (r *cotizacionRepo) FindPendienteByCUIT(ctx context.Context, cuit string, ahora time.Time) (*model.Cotizacion, error) {
	var c model.Cotizacion
	err := r.db.WithContext(ctx).
		Where("cliente_cuit = ?", cuit).
		Where("estado = ? AND valida_hasta >= ?", model.CotizacionPendiente, ahora).
		Order("created_at DESC").
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cotizacionRepo) FindPendienteByNombreDestino(ctx context.Context, nombre string, destinos []string, ahora time.Time) (*model.Cotizacion, error) {
	var c model.Cotizacion
	err := r.db.WithContext(ctx).
		Where("cliente_nombre ILIKE ?", "%"+nombre+"%").
		Where("destino IN ?", destinos).
		Where("estado = ? AND valida_hasta >= ?", model.CotizacionPendiente, ahora).
		Order("created_at DESC").
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cotizacionRepo) MarcarVencidas(ctx context.Context, ahora time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Cotizacion{}).
		Where("estado = ? AND valida_hasta < ?", model.CotizacionPendiente, ahora).
		Update("estado", model.CotizacionVencida)
	return res.RowsAffected, res.Error
}
