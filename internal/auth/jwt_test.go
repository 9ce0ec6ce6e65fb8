package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateValidateRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour, "volunteerhub-test")

	token, err := m.Generate("user-123", RoleVolunteer)
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	require.Equal(t, "user-123", claims.Subject)
	require.Equal(t, RoleVolunteer, claims.Role)
	require.Equal(t, "volunteerhub-test", claims.Issuer)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute, "volunteerhub-test")

	token, err := m.Generate("user-123", RoleVolunteer)
	require.NoError(t, err)

	_, err = m.Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTManager("secret-a", time.Hour, "volunteerhub-test")
	verifier := NewJWTManager("secret-b", time.Hour, "volunteerhub-test")

	token, err := issuer.Generate("user-123", RoleOrganization)
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsEmptyToken(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour, "volunteerhub-test")

	_, err := m.Validate("")
	require.ErrorIs(t, err, ErrMissingToken)

	_, err = m.Validate("not-a-jwt")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerateRequiresSubjectAndRole(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour, "volunteerhub-test")

	_, err := m.Generate("", RoleVolunteer)
	require.Error(t, err)

	_, err = m.Generate("user-123", "")
	require.Error(t, err)
}

func TestTokenFromHeader(t *testing.T) {
	token, err := TokenFromHeader("Bearer abc.def.ghi")
	require.NoError(t, err)
	require.Equal(t, "abc.def.ghi", token)

	token, err = TokenFromHeader("bearer abc.def.ghi")
	require.NoError(t, err)
	require.Equal(t, "abc.def.ghi", token)

	_, err = TokenFromHeader("")
	require.ErrorIs(t, err, ErrMissingToken)

	_, err = TokenFromHeader("Basic abc")
	require.ErrorIs(t, err, ErrMissingToken)

	_, err = TokenFromHeader("Bearer")
	require.ErrorIs(t, err, ErrMissingToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-password", hash)

	require.True(t, CheckPassword(hash, "s3cret-password"))
	require.False(t, CheckPassword(hash, "wrong-password"))
}
