package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/Alvarezzzzz/charlotte-seguridad/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_jwt_secret_32_chars_minimum!"

type fakeClock struct{ t time.Time }

func (f *fakeClock) Now() time.Time { return f.t }
func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestCodec() (*TokenCodec, *fakeClock) {
	clk := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	return NewTokenCodec(testSecret, 24*time.Hour).WithClock(clk.Now), clk
}

func TestTokenCodec_RoundTrip(t *testing.T) {
	codec, _ := newTestCodec()

	tok, err := codec.IssueWithTTL(Claims{"name": "Ana", "is_inside": true, "table_id": 7}, 10*time.Minute)
	require.NoError(t, err)

	claims, err := codec.Verify(tok)
	require.NoError(t, err)
	name, _ := claims.String("name")
	inside, _ := claims.Bool("is_inside")
	table, _ := claims.Uint("table_id")
	assert.Equal(t, "Ana", name)
	assert.True(t, inside)
	assert.Equal(t, uint(7), table)
}

func TestTokenCodec_ExpiresAfterTTL(t *testing.T) {
	codec, clk := newTestCodec()

	tok, err := codec.IssueWithTTL(Claims{"x": 1}, 10*time.Minute)
	require.NoError(t, err)

	clk.Advance(9 * time.Minute)
	_, err = codec.Verify(tok)
	require.NoError(t, err)

	clk.Advance(2 * time.Minute)
	_, err = codec.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenCodec_ZeroTTLIsExpired(t *testing.T) {
	codec, _ := newTestCodec()

	tok, err := codec.IssueWithTTL(Claims{"x": 1}, 0)
	require.NoError(t, err)

	_, err = codec.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenCodec_DefaultTTL(t *testing.T) {
	codec, clk := newTestCodec()

	tok, err := codec.Issue(Claims{"x": 1})
	require.NoError(t, err)

	clk.Advance(23 * time.Hour)
	_, err = codec.Verify(tok)
	require.NoError(t, err)

	clk.Advance(2 * time.Hour)
	_, err = codec.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenCodec_TamperedAndForeignTokensFailAlike(t *testing.T) {
	codec, _ := newTestCodec()
	other := NewTokenCodec("another-secret", time.Hour).WithClock(codec.now)

	tok, err := codec.Issue(Claims{"x": 1})
	require.NoError(t, err)
	foreign, err := other.Issue(Claims{"x": 1})
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	for _, bad := range []string{foreign, tampered, "not-a-token", ""} {
		_, err := codec.Verify(bad)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestTokenCodec_VerifyTypeRejectsOtherFlavor(t *testing.T) {
	codec, _ := newTestCodec()

	refresh, err := codec.Issue(LocationClaims(TypeLocationRefresh))
	require.NoError(t, err)

	_, err = codec.VerifyType(refresh, TypeLocation)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = codec.VerifyType(refresh, TypeLocationRefresh)
	assert.NoError(t, err)
}

func TestTokenCodec_DecodeSkipsVerification(t *testing.T) {
	codec, _ := newTestCodec()

	tok, err := codec.IssueWithTTL(Claims{"email": "a@b.com"}, 0)
	require.NoError(t, err)

	claims := codec.Decode(tok)
	require.NotNil(t, claims)
	email, _ := claims.String("email")
	assert.Equal(t, "a@b.com", email)

	assert.Nil(t, codec.Decode("garbage"))
}

func TestPrincipalFromClaims(t *testing.T) {
	codec, _ := newTestCodec()
	u := &model.Usuario{
		ID: 42, Nombre: "Ana", Apellido: "Pérez", Email: "ana@charlotte.com", DNI: "V123456",
		DataType: model.DataTypeEmpleado, FechaNacimiento: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive: true, Roles: []model.Rol{{ID: 3}, {ID: 9}},
	}

	tok, err := codec.Issue(SessionClaims(u))
	require.NoError(t, err)
	claims, err := codec.VerifyType(tok, TypeSession)
	require.NoError(t, err)

	p, err := PrincipalFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, uint(42), p.UserID)
	assert.Equal(t, "ana@charlotte.com", p.Email)
	assert.True(t, p.IsActive)
	assert.False(t, p.IsAdmin)
	assert.Equal(t, []uint{3, 9}, p.Roles)

	birth, _ := claims.String("birthDate")
	assert.Equal(t, "1990-01-01", birth)
}

func TestPrincipalFromClaims_RejectsGuestToken(t *testing.T) {
	codec, _ := newTestCodec()

	tok, err := codec.Issue(ClientClaims(4, "Luis", "V1234567", "GUEST"))
	require.NoError(t, err)
	claims, err := codec.Verify(tok)
	require.NoError(t, err)

	_, err = PrincipalFromClaims(claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestClientClaims_KeepsWideTableID(t *testing.T) {
	codec, _ := newTestCodec()
	const mesa int64 = 1 << 40

	tok, err := codec.Issue(ClientClaims(mesa, "Luis", "V1234567", "GUEST"))
	require.NoError(t, err)
	claims, err := codec.VerifyType(tok, TypeClient)
	require.NoError(t, err)

	table, ok := claims.Int64("table_id")
	require.True(t, ok)
	assert.Equal(t, mesa, table)

	_, ok = Claims{"table_id": 2.5}.Int64("table_id")
	assert.False(t, ok)
}
