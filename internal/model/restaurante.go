package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Restaurante holds the venue geofence. Radio is in kilometers.
// Only one row is expected; creation of a second one is rejected by the service.
type Restaurante struct {
	ID        uint            `gorm:"primaryKey"`
	Latitud   decimal.Decimal `gorm:"type:numeric(10,7);not null"`
	Longitud  decimal.Decimal `gorm:"type:numeric(10,7);not null"`
	Radio     decimal.Decimal `gorm:"type:numeric(10,3);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Restaurante) TableName() string { return "restaurantes" }

// Coordenadas returns latitude, longitude and radius as float64 for the geofence math.
func (r *Restaurante) Coordenadas() (lat, lon, radio float64) {
	lat, _ = r.Latitud.Float64()
	lon, _ = r.Longitud.Float64()
	radio, _ = r.Radio.Float64()
	return lat, lon, radio
}
