package model

import (
	"time"

	"fletero/internal/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TarifaEspecial is a client-scoped custom pricing rule, evaluated (never
// mutated) at request time. Higher Prioridad wins among matching rules.
type TarifaEspecial struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID     uuid.UUID `gorm:"type:uuid;index;not null"`
	Nombre        string    `gorm:"not null"`
	TipoCondicion string    `gorm:"type:varchar(30);not null;default:'cualquiera'"`
	// CondicionValores / PrecioValores persist the rule parameters as jsonb;
	// the repository decodes them into Condicion / Modalidad below.
	CondicionValores JSONMap `gorm:"type:jsonb"`
	TipoPrecio       string  `gorm:"type:varchar(30);not null"`
	PrecioValores    JSONMap `gorm:"type:jsonb"`
	// Optional route restriction; nil = applies on any route
	Origen  *string
	Destino *string
	// Prioridad: higher wins among matches
	Prioridad int `gorm:"not null;default:0"`
	// TasaSeguro overrides the client rate; an explicit 0 means "sin seguro",
	// nil falls back to the client/default rate
	TasaSeguro  *decimal.Decimal `gorm:"type:decimal(6,4)"`
	ValidaDesde time.Time        `gorm:"not null"`
	ValidaHasta *time.Time
	Activa      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Decoded typed variants, populated by the repository after each fetch.
	Condicion pricing.Condicion `gorm:"-" json:"-"`
	Modalidad pricing.Modalidad `gorm:"-" json:"-"`
}

func (TarifaEspecial) TableName() string { return "tarifas_especiales" }

// Decodificar populates the typed condition and pricing variants from the
// stored jsonb blobs.
func (t *TarifaEspecial) Decodificar() {
	t.Condicion = pricing.DecodificarCondicion(t.TipoCondicion, t.CondicionValores)
	t.Modalidad = pricing.DecodificarModalidad(t.TipoPrecio, t.PrecioValores)
}

// VigenteEn reports whether the rule's validity window contains the given day
// (ValidaDesde inclusive; a nil ValidaHasta never expires).
func (t *TarifaEspecial) VigenteEn(dia time.Time) bool {
	if t.ValidaDesde.After(dia) {
		return false
	}
	return t.ValidaHasta == nil || !t.ValidaHasta.Before(dia)
}
