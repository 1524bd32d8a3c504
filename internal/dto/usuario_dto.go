package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearUsuarioRequest struct {
	Name      string  `json:"name"      validate:"required,min=1,max=100"`
	LastName  string  `json:"lastName"  validate:"required,min=1,max=100"`
	Email     string  `json:"email"     validate:"required,email,max=150"`
	DNI       string  `json:"dni"       validate:"required,min=5,max=20"`
	Password  string  `json:"password"  validate:"required"`
	Address   *string `json:"address"   validate:"omitempty,max=255"`
	Phone     *string `json:"phone"     validate:"omitempty,max=30"`
	DataType  string  `json:"dataType"  validate:"omitempty,datatype"`
	BirthDate string  `json:"birthDate" validate:"required,datetime=2006-01-02"`
	Roles     []uint  `json:"roles"`
	IsActive  *bool   `json:"isActive"`
}

// ActualizarUsuarioRequest is a partial update: nil fields are left as they are.
// The same payload backs the self-service profile update, which rejects
// Password, IsActive, Roles and DataType.
type ActualizarUsuarioRequest struct {
	Name      *string `json:"name"      validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"lastName"  validate:"omitempty,min=1,max=100"`
	Email     *string `json:"email"     validate:"omitempty,email,max=150"`
	DNI       *string `json:"dni"       validate:"omitempty,min=5,max=20"`
	Password  *string `json:"password"`
	Address   *string `json:"address"   validate:"omitempty,max=255"`
	Phone     *string `json:"phone"     validate:"omitempty,max=30"`
	DataType  *string `json:"dataType"  validate:"omitempty,datatype"`
	BirthDate *string `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
	Roles     *[]uint `json:"roles"`
	IsActive  *bool   `json:"isActive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UsuarioResponse struct {
	ID        uint                 `json:"id"`
	Name      string               `json:"name"`
	LastName  string               `json:"lastName"`
	Email     string               `json:"email"`
	Address   *string              `json:"address"`
	Phone     *string              `json:"phone"`
	DataType  string               `json:"dataType"`
	BirthDate string               `json:"birthDate"`
	DNI       string               `json:"dni"`
	IsAdmin   bool                 `json:"isAdmin"`
	IsActive  bool                 `json:"isActive"`
	Roles     []RolUsuarioResponse `json:"roles"`
}

type RolUsuarioResponse struct {
	ID          uint              `json:"id"`
	Name        string            `json:"name"`
	Description *string           `json:"description"`
	Permissions []PermisoResponse `json:"permissions"`
}

type UsuarioMutacionResponse struct {
	Message string `json:"message"`
	UserID  uint   `json:"user_id"`
	Token   string `json:"token,omitempty"`
}
