package repository

import (
	"context"

	"github.com/Alvarezzzzz/charlotte-seguridad/internal/model"

	"gorm.io/gorm"
)

type RestauranteRepository interface {
	Create(ctx context.Context, r *model.Restaurante) error
	// First returns the configured venue (lowest id), or ErrNotFound.
	First(ctx context.Context) (*model.Restaurante, error)
	FindByID(ctx context.Context, id uint) (*model.Restaurante, error)
	List(ctx context.Context) ([]model.Restaurante, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, r *model.Restaurante) error
	Delete(ctx context.Context, id uint) error
}

type restauranteRepo struct{ db *gorm.DB }

func NewRestauranteRepository(db *gorm.DB) RestauranteRepository {
	return &restauranteRepo{db: db}
}

func (r *restauranteRepo) Create(ctx context.Context, rest *model.Restaurante) error {
	return translate(r.db.WithContext(ctx).Create(rest).Error)
}

func (r *restauranteRepo) First(ctx context.Context) (*model.Restaurante, error) {
	var rest model.Restaurante
	if err := r.db.WithContext(ctx).Order("id").First(&rest).Error; err != nil {
		return nil, translate(err)
	}
	return &rest, nil
}

func (r *restauranteRepo) FindByID(ctx context.Context, id uint) (*model.Restaurante, error) {
	var rest model.Restaurante
	if err := r.db.WithContext(ctx).First(&rest, id).Error; err != nil {
		return nil, translate(err)
	}
	return &rest, nil
}

func (r *restauranteRepo) List(ctx context.Context) ([]model.Restaurante, error) {
	list := []model.Restaurante{}
	err := r.db.WithContext(ctx).Order("id").Find(&list).Error
	return list, translate(err)
}

func (r *restauranteRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Restaurante{}).Count(&n).Error
	return n, translate(err)
}

func (r *restauranteRepo) Update(ctx context.Context, rest *model.Restaurante) error {
	res := r.db.WithContext(ctx).Model(&model.Restaurante{ID: rest.ID}).Updates(map[string]interface{}{
		"latitud":  rest.Latitud,
		"longitud": rest.Longitud,
		"radio":    rest.Radio,
	})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *restauranteRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Restaurante{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
