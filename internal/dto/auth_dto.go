package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type VerificarUbicacionRequest struct {
	Latitude  *float64 `json:"latitude"  validate:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" validate:"required,min=-180,max=180"`
}

type VerificarTokenUbicacionRequest struct {
	LocationToken        string `json:"locationToken"`
	LocationRefreshToken string `json:"locationRefreshToken"`
}

// ClientSessionRequest is checked field by field in the service so each
// failure carries its own message.
type ClientSessionRequest struct {
	TableID      *int64  `json:"table_id"`
	CustomerName *string `json:"customer_name"`
	CustomerDNI  *string `json:"customer_dni"`
	Role         *string `json:"role"`
}

type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required"`
}

type AdminPasswordChangeRequest struct {
	UserID      uint   `json:"user_id"      validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}

type GetRolesRequest struct {
	Roles []uint `json:"roles"`
}

type HasPermissionRequest struct {
	Resource string `json:"resource" validate:"required,resource"`
	Method   string `json:"method"   validate:"required,method"`
}

type HasPermissionViewRequest struct {
	Resources []string `json:"resources" validate:"required,min=1,dive,resource"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type TokenResponse struct {
	Token string `json:"token"`
}

// UbicacionResponse answers both location endpoints. Tokens are only present
// when issued; coordinates only echo a verify-location request.
type UbicacionResponse struct {
	LocationToken        string   `json:"locationToken,omitempty"`
	LocationRefreshToken string   `json:"locationRefreshToken,omitempty"`
	IsInside             bool     `json:"is_inside"`
	Latitude             *float64 `json:"latitude,omitempty"`
	Longitude            *float64 `json:"longitude,omitempty"`
}

type PermisoSesionResponse struct {
	ID       uint   `json:"id"`
	Type     string `json:"type"`
	Resource string `json:"resource"`
	Method   string `json:"method"`
	RoleID   uint   `json:"roleId"`
}

type RolSesionResponse struct {
	ID          uint                    `json:"id"`
	Name        string                  `json:"name"`
	Permissions []PermisoSesionResponse `json:"permissions"`
}

type HasPermissionResponse struct {
	HasPermission bool `json:"hasPermission"`
}

type HasPermissionViewResponse struct {
	Permissions map[string]bool `json:"permissions"`
}

type MensajeResponse struct {
	Message string `json:"message"`
}
