package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados de una cotización previa.
const (
	CotizacionPendiente  = "pendiente"
	CotizacionConfirmada = "confirmada"
	CotizacionVencida    = "vencida"
)

// ToleranciaPesoDefault is the weight tolerance (percent) applied when a
// quotation row does not carry its own.
const ToleranciaPesoDefault = 10.0

// Cotizacion is a previously computed offer (bot or manual). The pricing
// engine only CONSUMES these rows; they are created elsewhere.
type Cotizacion struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteNombre string    `gorm:"index;not null"`
	ClienteCUIT   string    `gorm:"index"`
	Destino       string    `gorm:"not null"`
	PesoKg        float64   `gorm:"not null;default:0"`
	Bultos        int       `gorm:"not null;default:0"`
	// ToleranciaPesoPct: 0 means "use the default" (10)
	ToleranciaPesoPct float64         `gorm:"not null;default:10"`
	PrecioTotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ValidaHasta       time.Time       `gorm:"index;not null"`
	Estado            string          `gorm:"type:varchar(20);index;not null;default:'pendiente'"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (Cotizacion) TableName() string { return "cotizaciones" }

// Tolerancia returns the effective weight tolerance percentage.
func (c *Cotizacion) Tolerancia() float64 {
	if c.ToleranciaPesoPct <= 0 {
		return ToleranciaPesoDefault
	}
	return c.ToleranciaPesoPct
}
