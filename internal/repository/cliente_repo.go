package repository

import (
	"context"
	"errors"

	"fletero/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClienteRepository defines the data access contract for clients and their
// commercial terms. "Not found" is a normal outcome for the pricing engine,
// so lookups return (nil, nil) on a miss; only real store failures surface as
// errors.
type ClienteRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
	FindByCUIT(ctx context.Context, cuit string) (*model.Cliente, error)
	// SearchByRazonSocial does a fuzzy (ILIKE) name match, first hit wins
	SearchByRazonSocial(ctx context.Context, nombre string) (*model.Cliente, error)
	FindCondicionComercial(ctx context.Context, clienteID uuid.UUID) (*model.CondicionComercial, error)
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).Where("id = ? AND activo = true", id).First(&c).Error
	return sinFila(&c, err)
}

func (r *clienteRepo) FindByCUIT(ctx context.Context, cuit string) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).Where("cuit = ? AND activo = true", cuit).First(&c).Error
	return sinFila(&c, err)
}

func (r *clienteRepo) SearchByRazonSocial(ctx context.Context, nombre string) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).
		Where("razon_social ILIKE ? AND activo = true", "%"+nombre+"%").
		Order("razon_social ASC").
		First(&c).Error
	return sinFila(&c, err)
}

func (r *clienteRepo) FindCondicionComercial(ctx context.Context, clienteID uuid.UUID) (*model.CondicionComercial, error) {
	var cc model.CondicionComercial
	err := r.db.WithContext(ctx).
		Where("cliente_id = ? AND activa = true", clienteID).
		Order("updated_at DESC").
		First(&cc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cc, nil
}

// sinFila maps gorm's not-found error to the (nil, nil) contract.
func sinFila(c *model.Cliente, err error) (*model.Cliente, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}
