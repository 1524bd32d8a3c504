package service

import (
	"context"
	"errors"

	"github.com/Alvarezzzzz/charlotte-seguridad/internal/apierror"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/dto"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/infra"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/model"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/repository"
)

const (
	msgRestauranteNoEncontrado  = "Restaurante no encontrado"
	msgRestauranteSinConfigurar = "Debe configurar las coordenadas del restaurante primero"
)

// ConfiguracionRestaurante provides the venue geofence to the session protocol.
type ConfiguracionRestaurante interface {
	// Configuracion returns repository.ErrNotFound when no venue exists.
	Configuracion(ctx context.Context) (*model.Restaurante, error)
}

// RestauranteService manages the single venue record.
type RestauranteService interface {
	ConfiguracionRestaurante
	Crear(ctx context.Context, req dto.CrearRestauranteRequest) (*dto.RestauranteResponse, error)
	ObtenerPorID(ctx context.Context, id uint) (*dto.RestauranteResponse, error)
	Listar(ctx context.Context) ([]dto.RestauranteResponse, error)
	ActualizarCoordenadas(ctx context.Context, req dto.ActualizarRestauranteRequest) error
	Actualizar(ctx context.Context, id uint, req dto.ActualizarRestauranteRequest) (*dto.RestauranteResponse, error)
	Eliminar(ctx context.Context, id uint) error
}

type restauranteService struct {
	repo  repository.RestauranteRepository
	cache *infra.RestauranteCache
}

// NewRestauranteService accepts a nil cache; every read then goes to the store.
func NewRestauranteService(repo repository.RestauranteRepository, cache *infra.RestauranteCache) RestauranteService {
	return &restauranteService{repo: repo, cache: cache}
}

func mapRestaurante(r model.Restaurante) dto.RestauranteResponse {
	return dto.RestauranteResponse{
		ID:       r.ID,
		Latitude: r.Latitud,
		Longitud: r.Longitud,
		Radius:   r.Radio,
	}
}

func aplicarCoordenadas(r *model.Restaurante, req dto.ActualizarRestauranteRequest) {
	if req.Latitude != nil {
		r.Latitud = *req.Latitude
	}
	if req.Longitud != nil {
		r.Longitud = *req.Longitud
	}
	if req.Radius != nil {
		r.Radio = *req.Radius
	}
}

func (s *restauranteService) Configuracion(ctx context.Context) (*model.Restaurante, error) {
	if r, ok := s.cache.Get(ctx); ok {
		return r, nil
	}
	r, err := s.repo.First(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, r)
	return r, nil
}

func (s *restauranteService) Crear(ctx context.Context, req dto.CrearRestauranteRequest) (*dto.RestauranteResponse, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, apierror.Conflict("Ya existe un restaurante configurado")
	}
	r := &model.Restaurante{
		Latitud:  *req.Latitude,
		Longitud: *req.Longitud,
		Radio:    *req.Radius,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	resp := mapRestaurante(*r)
	return &resp, nil
}

func (s *restauranteService) ObtenerPorID(ctx context.Context, id uint) (*dto.RestauranteResponse, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apierror.NotFound(msgRestauranteNoEncontrado)
		}
		return nil, err
	}
	resp := mapRestaurante(*r)
	return &resp, nil
}

func (s *restauranteService) Listar(ctx context.Context) ([]dto.RestauranteResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.RestauranteResponse, 0, len(list))
	for _, r := range list {
		result = append(result, mapRestaurante(r))
	}
	return result, nil
}

// ActualizarCoordenadas updates the configured venue without naming its id.
func (s *restauranteService) ActualizarCoordenadas(ctx context.Context, req dto.ActualizarRestauranteRequest) error {
	r, err := s.repo.First(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apierror.ConfigurationMissing(msgRestauranteSinConfigurar)
		}
		return err
	}
	aplicarCoordenadas(r, req)
	if err := s.repo.Update(ctx, r); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

func (s *restauranteService) Actualizar(ctx context.Context, id uint, req dto.ActualizarRestauranteRequest) (*dto.RestauranteResponse, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apierror.NotFound(msgRestauranteNoEncontrado)
		}
		return nil, err
	}
	aplicarCoordenadas(r, req)
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	resp := mapRestaurante(*r)
	return &resp, nil
}

func (s *restauranteService) Eliminar(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apierror.NotFound(msgRestauranteNoEncontrado)
		}
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}
