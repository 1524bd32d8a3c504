package model

import "time"

// Usuario is a platform account. IsAdmin bypasses every permission check.
type Usuario struct {
	ID              uint   `gorm:"primaryKey"`
	Nombre          string `gorm:"not null"`
	Apellido        string `gorm:"not null"`
	Email           string `gorm:"uniqueIndex;not null"`
	DNI             string `gorm:"column:dni;uniqueIndex;not null"`
	PasswordHash    string `gorm:"not null"`
	Direccion       *string
	Telefono        *string
	DataType        DataType  `gorm:"type:varchar(20);not null"`
	FechaNacimiento time.Time `gorm:"type:date;not null"`
	IsAdmin         bool      `gorm:"not null"`
	IsActive        bool      `gorm:"not null"`
	Roles           []Rol     `gorm:"many2many:usuario_roles;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Usuario) TableName() string { return "usuarios" }

// RolIDs returns the ids of the roles currently loaded on the user.
func (u *Usuario) RolIDs() []uint {
	ids := make([]uint, len(u.Roles))
	for i, r := range u.Roles {
		ids[i] = r.ID
	}
	return ids
}

// TieneRol reports whether the role is assigned to the user.
func (u *Usuario) TieneRol(id uint) bool {
	for _, r := range u.Roles {
		if r.ID == id {
			return true
		}
	}
	return false
}
