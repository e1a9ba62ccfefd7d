package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente is a freight recipient/account holder.
// TipoCliente: "regular" | "ocasional". CondicionPago: "cuenta_corriente" | "contado".
type Cliente struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RazonSocial string    `gorm:"index;not null"`
	CUIT        string    `gorm:"uniqueIndex"`
	TipoCliente string    `gorm:"type:varchar(20);not null;default:'ocasional'"`
	// CondicionPago drives Path A eligibility together with TipoCliente
	CondicionPago string `gorm:"type:varchar(30);not null;default:'contado'"`
	// TipoEntrega: "deposito" | "domicilio"
	TipoEntrega      string     `gorm:"type:varchar(20);not null;default:'deposito'"`
	TarifaAsignadaID *uuid.UUID `gorm:"type:uuid"`
	Activo           bool       `gorm:"not null;default:true"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// GORM's pluralizer speaks English, not Spanish.
func (Cliente) TableName() string { return "clientes" }

// TipoEntregaEfectivo returns the client's delivery type, defaulting to
// "deposito" for legacy rows created before the column existed.
func (c *Cliente) TipoEntregaEfectivo() string {
	if c == nil || c.TipoEntrega == "" {
		return EntregaDeposito
	}
	return c.TipoEntrega
}

const (
	EntregaDeposito  = "deposito"
	EntregaDomicilio = "domicilio"

	ClienteRegular      = "regular"
	PagoCuentaCorriente = "cuenta_corriente"
)
