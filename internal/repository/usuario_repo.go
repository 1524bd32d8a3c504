package repository

import (
	"context"
	"strings"

	"github.com/Alvarezzzzz/charlotte-seguridad/internal/model"

	"gorm.io/gorm"
)

// UsuarioFiltro narrows List.
type UsuarioFiltro struct {
	DataType *model.DataType
}

type UsuarioRepository interface {
	Create(ctx context.Context, u *model.Usuario, rolIDs []uint) error
	FindByEmail(ctx context.Context, email string) (*model.Usuario, error)
	FindByDNI(ctx context.Context, dni string) (*model.Usuario, error)
	FindByID(ctx context.Context, id uint) (*model.Usuario, error)
	FindByIDs(ctx context.Context, ids []uint) ([]model.Usuario, error)
	List(ctx context.Context, f UsuarioFiltro) ([]model.Usuario, error)
	// Update saves the scalar fields; a non-nil rolIDs replaces the role set.
	Update(ctx context.Context, u *model.Usuario, rolIDs *[]uint) error
	UpdatePassword(ctx context.Context, id uint, hash string) error
	Delete(ctx context.Context, id uint) error
}

type usuarioRepo struct{ db *gorm.DB }

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository { return &usuarioRepo{db: db} }

// withPermisos eager-loads roles and their permissions, the shape the
// authorization engine evaluates.
func withPermisos(db *gorm.DB) *gorm.DB {
	return db.Preload("Roles", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("roles.id")
	}).Preload("Roles.Permisos")
}

func (r *usuarioRepo) Create(ctx context.Context, u *model.Usuario, rolIDs []uint) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Roles").Create(u).Error; err != nil {
			return err
		}
		if len(rolIDs) == 0 {
			return nil
		}
		roles, err := rolesByIDs(tx, rolIDs)
		if err != nil {
			return err
		}
		if err := tx.Model(u).Omit("Roles.*").Association("Roles").Replace(roles); err != nil {
			return err
		}
		u.Roles = roles
		return nil
	}))
}

func (r *usuarioRepo) FindByEmail(ctx context.Context, email string) (*model.Usuario, error) {
	var u model.Usuario
	err := withPermisos(r.db.WithContext(ctx)).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&u).Error
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *usuarioRepo) FindByDNI(ctx context.Context, dni string) (*model.Usuario, error) {
	var u model.Usuario
	err := withPermisos(r.db.WithContext(ctx)).Where("dni = ?", dni).First(&u).Error
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *usuarioRepo) FindByID(ctx context.Context, id uint) (*model.Usuario, error) {
	var u model.Usuario
	err := withPermisos(r.db.WithContext(ctx)).First(&u, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *usuarioRepo) FindByIDs(ctx context.Context, ids []uint) ([]model.Usuario, error) {
	var users []model.Usuario
	if len(ids) == 0 {
		return users, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&users).Error
	return users, translate(err)
}

func (r *usuarioRepo) List(ctx context.Context, f UsuarioFiltro) ([]model.Usuario, error) {
	var users []model.Usuario
	q := withPermisos(r.db.WithContext(ctx)).Order("id")
	if f.DataType != nil {
		q = q.Where("data_type = ?", *f.DataType)
	}
	err := q.Find(&users).Error
	return users, translate(err)
}

func (r *usuarioRepo) Update(ctx context.Context, u *model.Usuario, rolIDs *[]uint) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(u).Select(
			"Nombre", "Apellido", "Email", "DNI", "Direccion", "Telefono",
			"DataType", "FechaNacimiento", "IsActive", "UpdatedAt",
		).Updates(u).Error; err != nil {
			return err
		}
		if rolIDs == nil {
			return nil
		}
		roles, err := rolesByIDs(tx, *rolIDs)
		if err != nil {
			return err
		}
		if err := tx.Model(u).Omit("Roles.*").Association("Roles").Replace(roles); err != nil {
			return err
		}
		u.Roles = roles
		return nil
	}))
}

func (r *usuarioRepo) UpdatePassword(ctx context.Context, id uint, hash string) error {
	res := r.db.WithContext(ctx).Model(&model.Usuario{}).Where("id = ?", id).Update("password_hash", hash)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *usuarioRepo) Delete(ctx context.Context, id uint) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u := &model.Usuario{ID: id}
		if err := tx.Model(u).Association("Roles").Clear(); err != nil {
			return err
		}
		res := tx.Delete(u)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	}))
}

// rolesByIDs loads the roles and fails with ErrNotFound if any id is missing.
func rolesByIDs(tx *gorm.DB, ids []uint) ([]model.Rol, error) {
	roles := []model.Rol{}
	if len(ids) == 0 {
		return roles, nil
	}
	if err := tx.Where("id IN ?", ids).Order("id").Find(&roles).Error; err != nil {
		return nil, err
	}
	if len(roles) != len(uniqueIDs(ids)) {
		return nil, ErrNotFound
	}
	return roles, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
