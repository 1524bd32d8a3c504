package model

import (
	"strings"
	"time"
)

// Permiso grants Metodo on Recurso to every holder of RolID.
// (RolID, Recurso, Metodo) is unique.
type Permiso struct {
	ID        uint           `gorm:"primaryKey"`
	Nombre    string         `gorm:"not null"`
	Tipo      PermissionType `gorm:"type:varchar(20);not null"`
	Recurso   Resource       `gorm:"type:varchar(60);not null;uniqueIndex:idx_permiso_rol_recurso_metodo,priority:2"`
	Metodo    Method         `gorm:"type:varchar(20);not null;uniqueIndex:idx_permiso_rol_recurso_metodo,priority:3"`
	RolID     uint           `gorm:"not null;index;uniqueIndex:idx_permiso_rol_recurso_metodo,priority:1"`
	Rol       *Rol           `gorm:"foreignKey:RolID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Permiso) TableName() string { return "permisos" }

// MismaRegla compares the (resource, method) pair case-insensitively.
func (p Permiso) MismaRegla(o Permiso) bool {
	return strings.EqualFold(string(p.Recurso), string(o.Recurso)) &&
		strings.EqualFold(string(p.Metodo), string(o.Metodo))
}
