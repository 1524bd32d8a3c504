package infra

import (
	"fmt"
	"strings"
	"time"

	"github.com/Alvarezzzzz/charlotte-seguridad/internal/model"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLitePrefix selects the embedded sqlite driver instead of Postgres,
// e.g. "sqlite://:memory:" or "sqlite:///tmp/seguridad.db".
const SQLitePrefix = "sqlite://"

// NewDatabase opens the store, migrates the schema and applies the patches
// GORM cannot express. TranslateError is on so unique violations surface as
// gorm.ErrDuplicatedKey on both dialects.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(dialector(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if isSQLite(dsn) {
		// every new connection to :memory: would see an empty database
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

func isSQLite(dsn string) bool { return strings.HasPrefix(dsn, SQLitePrefix) }

func dialector(dsn string) gorm.Dialector {
	if isSQLite(dsn) {
		return sqlite.Open(strings.TrimPrefix(dsn, SQLitePrefix))
	}
	return postgres.Open(dsn)
}

// RunMigrations creates/updates every table and then applies dialect patches.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Rol{},
		&model.Permiso{},
		&model.Restaurante{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent Postgres DDL that GORM tags cannot express.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// emails are stored lowercase; the functional index keeps it that way
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_usuarios_email_lower ON usuarios (lower(email))`,
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_restaurantes_coordenadas') THEN
		    ALTER TABLE restaurantes ADD CONSTRAINT chk_restaurantes_coordenadas
		      CHECK (latitud BETWEEN -90 AND 90 AND longitud BETWEEN -180 AND 180 AND radio > 0);
		  END IF;
		END $$`,
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_permisos_tipo') THEN
		    ALTER TABLE permisos ADD CONSTRAINT chk_permisos_tipo
		      CHECK (tipo IN ('Resource', 'View'));
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
