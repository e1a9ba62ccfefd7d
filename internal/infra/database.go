package infra

import (
	"fmt"

	"fletero/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate
// to create / update all tables, then applies the idempotent SQL patches that
// GORM cannot express (extensions, partial indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	// gen_random_uuid() needs pgcrypto on Postgres < 13
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return nil, fmt.Errorf("pgcrypto: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot fully handle
// (partial indexes used by the hot lookup paths and the expiry cron).
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// route lookup: origen/destino/tipo_entrega hit on every quote
		`CREATE INDEX IF NOT EXISTS idx_tarifas_peso_ruta
		     ON tarifas_peso (origen, destino, tipo_entrega)`,
		`CREATE INDEX IF NOT EXISTS idx_tarifas_tonelada_ruta
		     ON tarifas_tonelada (origen, destino)`,
		// expiry cron scans only pending quotations
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_cotizaciones_pendientes') THEN
		    CREATE INDEX idx_cotizaciones_pendientes
		        ON cotizaciones (valida_hasta)
		        WHERE estado = 'pendiente';
		  END IF;
		END $$`,
		// special tariffs are fetched by client, active only, priority order
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_tarifas_especiales_cliente') THEN
		    CREATE INDEX idx_tarifas_especiales_cliente
		        ON tarifas_especiales (cliente_id, prioridad DESC)
		        WHERE activa;
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}

// RunMigrations runs AutoMigrate for every table plus the idempotent SQL
// patches. Safe to re-run; also usable on a bare test database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Cliente{},
		&model.CondicionComercial{},
		&model.TarifaPeso{},
		&model.TarifaTonelada{},
		&model.TarifaEspecial{},
		&model.Cotizacion{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}
