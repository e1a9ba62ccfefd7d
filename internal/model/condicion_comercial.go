package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CondicionComercial is a client's commercial contract: at most one active
// row per client.
type CondicionComercial struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID uuid.UUID `gorm:"type:uuid;index;not null"`
	// TipoTarifa names the negotiated tariff family (informational)
	TipoTarifa string `gorm:"type:varchar(30)"`
	// ModificadorPct is a signed percentage applied to the base freight
	// (negative = discount)
	ModificadorPct decimal.Decimal `gorm:"type:decimal(6,2);not null;default:0"`
	// TasaSeguro is a fraction of the declared value (default 0.008)
	TasaSeguro  decimal.Decimal `gorm:"type:decimal(6,4);not null;default:0.008"`
	DiasCredito int             `gorm:"not null;default:0"`
	Activa      bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Cliente *Cliente `gorm:"foreignKey:ClienteID"`
}

func (CondicionComercial) TableName() string { return "condiciones_comerciales" }
