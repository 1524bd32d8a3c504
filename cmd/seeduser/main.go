// Crea o actualiza la cuenta administradora.
// Uso: go run ./cmd/seeduser
package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Alvarezzzzz/charlotte-seguridad/internal/auth"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/config"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/infra"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/model"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/repository"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect error")
	}

	// The bootstrap password skips the length policy; the default "admin"
	// is expected to be changed through passwordChange after first login.
	hash, err := auth.HashPassword(cfg.AdminPassword, cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("bcrypt error")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo := repository.NewUsuarioRepository(db)
	u, err := repo.FindByEmail(ctx, cfg.AdminEmail)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		u = &model.Usuario{
			Nombre:          "Jhon",
			Apellido:        "Doe",
			Email:           cfg.AdminEmail,
			DNI:             cfg.AdminDNI,
			PasswordHash:    hash,
			DataType:        model.DataTypeEmpleado,
			FechaNacimiento: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
			IsAdmin:         true,
			IsActive:        true,
		}
		err = repo.Create(ctx, u, nil)
	case err == nil:
		u.IsActive = true
		if err = repo.Update(ctx, u, nil); err == nil {
			err = repo.UpdatePassword(ctx, u.ID, hash)
		}
		if err == nil {
			// Update never touches is_admin
			err = db.WithContext(ctx).Model(u).Update("is_admin", true).Error
		}
	}
	if err != nil {
		log.Fatal().Err(err).Msg("upsert error")
	}
	fmt.Printf("✅ Usuario '%s' (id %d) creado/actualizado\n", u.Email, u.ID)
}
