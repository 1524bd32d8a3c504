package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// Radius is in kilometers.
type CrearRestauranteRequest struct {
	Latitude *decimal.Decimal `json:"latitude" validate:"required,min=-90,max=90"`
	Longitud *decimal.Decimal `json:"longitud" validate:"required,min=-180,max=180"`
	Radius   *decimal.Decimal `json:"radius"   validate:"required,gt=0"`
}

type ActualizarRestauranteRequest struct {
	Latitude *decimal.Decimal `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitud *decimal.Decimal `json:"longitud" validate:"omitempty,min=-180,max=180"`
	Radius   *decimal.Decimal `json:"radius"   validate:"omitempty,gt=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type RestauranteResponse struct {
	ID       uint            `json:"id"`
	Latitude decimal.Decimal `json:"latitude"`
	Longitud decimal.Decimal `json:"longitud"`
	Radius   decimal.Decimal `json:"radius"`
}
