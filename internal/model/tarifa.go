package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TipoTarifaVolumen marks weight-tariff rows priced by volume; they are
// excluded from weight-bucket searches.
const TipoTarifaVolumen = "volume"

// TarifaPeso is a flat price for a closed weight bucket on a route.
// The upper bound is inclusive. Immutable reference data.
type TarifaPeso struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Origen      string    `gorm:"index:idx_tarifa_ruta;not null"`
	Destino     string    `gorm:"index:idx_tarifa_ruta;not null"`
	TipoEntrega string    `gorm:"type:varchar(20);not null;default:'deposito'"`
	PesoDesdeKg float64   `gorm:"not null"`
	PesoHastaKg float64   `gorm:"index;not null"`
	Precio      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TipoTarifa  string          `gorm:"type:varchar(20);not null;default:'general'"`
	IncluyeIVA  bool            `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (TarifaPeso) TableName() string { return "tarifas_peso" }

// TarifaTonelada is a per-kilogram price band used above the tonnage
// threshold instead of flat bucket pricing. A nil upper bound means the band
// is open-ended.
type TarifaTonelada struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Origen          string    `gorm:"index:idx_tonelada_ruta;not null"`
	Destino         string    `gorm:"index:idx_tonelada_ruta;not null"`
	TipoEntrega     string    `gorm:"type:varchar(20);not null;default:'deposito'"`
	ToneladaDesdeKg float64   `gorm:"not null"`
	ToneladaHastaKg *float64
	PrecioPorKg     decimal.Decimal `gorm:"type:decimal(12,4);not null"`
	Activa          bool            `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (TarifaTonelada) TableName() string { return "tarifas_tonelada" }
