package auth

import (
	"encoding/json"
	"math"

	"github.com/Alvarezzzzz/charlotte-seguridad/internal/model"
)

// Claims is a decoded token payload. Numbers come back as float64.
type Claims map[string]any

func (c Claims) String(key string) (string, bool) {
	s, ok := c[key].(string)
	return s, ok
}

func (c Claims) Bool(key string) (bool, bool) {
	b, ok := c[key].(bool)
	return b, ok
}

func (c Claims) Uint(key string) (uint, bool) {
	return toUint(c[key])
}

// Int64 reads an integral number claim such as table_id.
func (c Claims) Int64(key string) (int64, bool) {
	switch n := c[key].(type) {
	case float64:
		if n != math.Trunc(n) || n < math.MinInt64 || n >= math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case int64:
		return n, true
	case int:
		return int64(n), true
	}
	return 0, false
}

func (c Claims) UintSlice(key string) ([]uint, bool) {
	raw, ok := c[key].([]any)
	if !ok {
		if ids, ok := c[key].([]uint); ok {
			return ids, true
		}
		return nil, false
	}
	out := make([]uint, 0, len(raw))
	for _, v := range raw {
		id, ok := toUint(v)
		if !ok {
			return nil, false
		}
		out = append(out, id)
	}
	return out, true
}

func toUint(v any) (uint, bool) {
	switch n := v.(type) {
	case float64:
		if n < 0 || n != math.Trunc(n) {
			return 0, false
		}
		return uint(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil || i < 0 {
			return 0, false
		}
		return uint(i), true
	case int:
		if n < 0 {
			return 0, false
		}
		return uint(n), true
	case uint:
		return n, true
	}
	return 0, false
}

// Principal is the authenticated caller behind a session token.
type Principal struct {
	UserID   uint
	Email    string
	IsAdmin  bool
	IsActive bool
	Roles    []uint
}

// SessionClaims builds the full session payload for a user.
func SessionClaims(u *model.Usuario) Claims {
	return Claims{
		ClaimType:   TypeSession,
		"id":        u.ID,
		"name":      u.Nombre,
		"lastName":  u.Apellido,
		"email":     u.Email,
		"address":   u.Direccion,
		"phone":     u.Telefono,
		"dataType":  string(u.DataType),
		"birthDate": u.FechaNacimiento.Format("2006-01-02"),
		"dni":       u.DNI,
		"isAdmin":   u.IsAdmin,
		"isActive":  u.IsActive,
		"roles":     u.RolIDs(),
	}
}

// PrincipalFromClaims reads a principal from verified session claims.
func PrincipalFromClaims(c Claims) (*Principal, error) {
	if t, _ := c.String(ClaimType); t != TypeSession {
		return nil, ErrInvalidToken
	}
	id, ok := c.Uint("id")
	if !ok || id == 0 {
		return nil, ErrInvalidToken
	}
	p := &Principal{UserID: id}
	p.Email, _ = c.String("email")
	p.IsAdmin, _ = c.Bool("isAdmin")
	p.IsActive, _ = c.Bool("isActive")
	p.Roles, _ = c.UintSlice("roles")
	return p, nil
}

// LocationClaims is the payload of both location tokens.
func LocationClaims(typ string) Claims {
	return Claims{ClaimType: typ, "is_inside": true}
}

// ClientClaims is the guest table session payload.
func ClientClaims(tableID int64, customerName, customerDNI, role string) Claims {
	return Claims{
		ClaimType:       TypeClient,
		"table_id":      tableID,
		"customer_name": customerName,
		"customer_dni":  customerDNI,
		"role":          role,
	}
}
