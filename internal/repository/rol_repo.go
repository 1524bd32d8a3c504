package repository

import (
	"context"
	"fmt"

	"github.com/Alvarezzzzz/charlotte-seguridad/internal/model"

	"gorm.io/gorm"
)

// RolCambios describes one atomic role update.
type RolCambios struct {
	Nombre      *string
	Descripcion *string

	// ReemplazarPermisos deletes every permission of the role not listed in
	// Conservar. When false the current permissions are left untouched and
	// Conservar must be empty.
	ReemplazarPermisos bool
	Conservar          []model.Permiso // existing rows, saved with their new values
	Nuevos             []model.Permiso

	// UsuarioIDs, when non-nil, replaces the set of users holding the role.
	UsuarioIDs *[]uint
}

type RolRepository interface {
	Create(ctx context.Context, rol *model.Rol, usuarioIDs []uint) error
	FindByID(ctx context.Context, id uint, includeUsers bool) (*model.Rol, error)
	FindByIDs(ctx context.Context, ids []uint) ([]model.Rol, error)
	FindByNombre(ctx context.Context, nombre string) (*model.Rol, error)
	List(ctx context.Context, includeUsers bool) ([]model.Rol, error)
	Update(ctx context.Context, rol *model.Rol, c RolCambios) error
	Delete(ctx context.Context, id uint) error
}

type rolRepo struct{ db *gorm.DB }

func NewRolRepository(db *gorm.DB) RolRepository { return &rolRepo{db: db} }

func preloadRol(db *gorm.DB, includeUsers bool) *gorm.DB {
	db = db.Preload("Permisos", func(tx *gorm.DB) *gorm.DB { return tx.Order("permisos.id") })
	if includeUsers {
		db = db.Preload("Usuarios", func(tx *gorm.DB) *gorm.DB { return tx.Order("usuarios.id") })
	}
	return db
}

func (r *rolRepo) Create(ctx context.Context, rol *model.Rol, usuarioIDs []uint) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		permisos := rol.Permisos
		if err := tx.Omit("Permisos", "Usuarios").Create(rol).Error; err != nil {
			return err
		}
		if len(permisos) > 0 {
			for i := range permisos {
				permisos[i].RolID = rol.ID
			}
			if err := tx.Create(&permisos).Error; err != nil {
				return err
			}
			rol.Permisos = permisos
		}
		if len(usuarioIDs) == 0 {
			return nil
		}
		users, err := usuariosByIDs(tx, usuarioIDs)
		if err != nil {
			return err
		}
		return tx.Model(rol).Omit("Usuarios.*").Association("Usuarios").Replace(users)
	}))
}

func (r *rolRepo) FindByID(ctx context.Context, id uint, includeUsers bool) (*model.Rol, error) {
	var rol model.Rol
	if err := preloadRol(r.db.WithContext(ctx), includeUsers).First(&rol, id).Error; err != nil {
		return nil, translate(err)
	}
	return &rol, nil
}

func (r *rolRepo) FindByIDs(ctx context.Context, ids []uint) ([]model.Rol, error) {
	roles := []model.Rol{}
	if len(ids) == 0 {
		return roles, nil
	}
	err := preloadRol(r.db.WithContext(ctx), false).Where("id IN ?", ids).Order("id").Find(&roles).Error
	return roles, translate(err)
}

func (r *rolRepo) FindByNombre(ctx context.Context, nombre string) (*model.Rol, error) {
	var rol model.Rol
	if err := r.db.WithContext(ctx).Where("nombre = ?", nombre).First(&rol).Error; err != nil {
		return nil, translate(err)
	}
	return &rol, nil
}

func (r *rolRepo) List(ctx context.Context, includeUsers bool) ([]model.Rol, error) {
	roles := []model.Rol{}
	err := preloadRol(r.db.WithContext(ctx), includeUsers).Order("id").Find(&roles).Error
	return roles, translate(err)
}

// Update applies c in a single transaction: either every change lands or none does.
func (r *rolRepo) Update(ctx context.Context, rol *model.Rol, c RolCambios) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if c.Nombre != nil || c.Descripcion != nil {
			cols := map[string]interface{}{}
			if c.Nombre != nil {
				cols["nombre"] = *c.Nombre
			}
			if c.Descripcion != nil {
				cols["descripcion"] = *c.Descripcion
			}
			if err := tx.Model(&model.Rol{ID: rol.ID}).Updates(cols).Error; err != nil {
				return err
			}
		}

		if c.ReemplazarPermisos {
			keep := make([]uint, len(c.Conservar))
			for i, p := range c.Conservar {
				keep[i] = p.ID
			}
			del := tx.Where("rol_id = ?", rol.ID)
			if len(keep) > 0 {
				del = del.Where("id NOT IN ?", keep)
			}
			if err := del.Delete(&model.Permiso{}).Error; err != nil {
				return err
			}
		}
		// Kept rows may trade (recurso, metodo) pairs among themselves. The
		// unique index is checked per statement, so park every kept row on a
		// placeholder method first and only then write the final values.
		for _, p := range c.Conservar {
			res := tx.Model(&model.Permiso{}).
				Where("id = ? AND rol_id = ?", p.ID, rol.ID).
				Update("metodo", fmt.Sprintf("~%d", p.ID))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrNotFound
			}
		}
		for _, p := range c.Conservar {
			res := tx.Model(&model.Permiso{}).
				Where("id = ? AND rol_id = ?", p.ID, rol.ID).
				Updates(map[string]interface{}{
					"nombre":  p.Nombre,
					"tipo":    p.Tipo,
					"recurso": p.Recurso,
					"metodo":  p.Metodo,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrNotFound
			}
		}
		if len(c.Nuevos) > 0 {
			nuevos := make([]model.Permiso, len(c.Nuevos))
			for i, p := range c.Nuevos {
				p.ID = 0
				p.RolID = rol.ID
				nuevos[i] = p
			}
			if err := tx.Create(&nuevos).Error; err != nil {
				return err
			}
		}

		if c.UsuarioIDs != nil {
			users, err := usuariosByIDs(tx, *c.UsuarioIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(&model.Rol{ID: rol.ID}).Omit("Usuarios.*").Association("Usuarios").Replace(users); err != nil {
				return err
			}
		}
		return nil
	}))
}

// Delete removes the role, its permissions and its user links.
func (r *rolRepo) Delete(ctx context.Context, id uint) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("rol_id = ?", id).Delete(&model.Permiso{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Rol{ID: id}).Association("Usuarios").Clear(); err != nil {
			return err
		}
		res := tx.Delete(&model.Rol{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	}))
}

func usuariosByIDs(tx *gorm.DB, ids []uint) ([]model.Usuario, error) {
	users := []model.Usuario{}
	if len(ids) == 0 {
		return users, nil
	}
	if err := tx.Where("id IN ?", ids).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	if len(users) != len(uniqueIDs(ids)) {
		return nil, ErrNotFound
	}
	return users, nil
}
