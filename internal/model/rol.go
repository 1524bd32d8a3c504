package model

import "time"

// Rol bundles permissions. Permisos are owned by the role and removed with it.
type Rol struct {
	ID          uint   `gorm:"primaryKey"`
	Nombre      string `gorm:"uniqueIndex;not null"`
	Descripcion *string
	Permisos    []Permiso `gorm:"foreignKey:RolID;constraint:OnDelete:CASCADE"`
	Usuarios    []Usuario `gorm:"many2many:usuario_roles;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Rol) TableName() string { return "roles" }
