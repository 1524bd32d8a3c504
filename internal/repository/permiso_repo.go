package repository

import (
	"context"

	"github.com/Alvarezzzzz/charlotte-seguridad/internal/model"

	"gorm.io/gorm"
)

type PermisoRepository interface {
	Create(ctx context.Context, p *model.Permiso) error
	FindByID(ctx context.Context, id uint, includeRole bool) (*model.Permiso, error)
	List(ctx context.Context, includeRole bool) ([]model.Permiso, error)
	ListByRol(ctx context.Context, rolID uint) ([]model.Permiso, error)
	Update(ctx context.Context, p *model.Permiso) error
	Delete(ctx context.Context, id uint) error
}

type permisoRepo struct{ db *gorm.DB }

func NewPermisoRepository(db *gorm.DB) PermisoRepository { return &permisoRepo{db: db} }

func (r *permisoRepo) Create(ctx context.Context, p *model.Permiso) error {
	return translate(r.db.WithContext(ctx).Omit("Rol").Create(p).Error)
}

func (r *permisoRepo) FindByID(ctx context.Context, id uint, includeRole bool) (*model.Permiso, error) {
	var p model.Permiso
	q := r.db.WithContext(ctx)
	if includeRole {
		q = q.Preload("Rol")
	}
	if err := q.First(&p, id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *permisoRepo) List(ctx context.Context, includeRole bool) ([]model.Permiso, error) {
	permisos := []model.Permiso{}
	q := r.db.WithContext(ctx).Order("id")
	if includeRole {
		q = q.Preload("Rol")
	}
	err := q.Find(&permisos).Error
	return permisos, translate(err)
}

func (r *permisoRepo) ListByRol(ctx context.Context, rolID uint) ([]model.Permiso, error) {
	permisos := []model.Permiso{}
	err := r.db.WithContext(ctx).Where("rol_id = ?", rolID).Order("id").Find(&permisos).Error
	return permisos, translate(err)
}

func (r *permisoRepo) Update(ctx context.Context, p *model.Permiso) error {
	res := r.db.WithContext(ctx).Model(&model.Permiso{ID: p.ID}).Updates(map[string]interface{}{
		"nombre":  p.Nombre,
		"tipo":    p.Tipo,
		"recurso": p.Recurso,
		"metodo":  p.Metodo,
		"rol_id":  p.RolID,
	})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *permisoRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Permiso{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
