package jwt

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")

	token, exp, err := svc.GenerateAccessToken("E001", user.RoleApprover)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Positive(t, exp)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "E001", claims["employee_id"])
	assert.Equal(t, "approver", claims["role"])
	assert.Equal(t, "access", claims["type"])
}

func TestGenerateAccessToken_BadDuration(t *testing.T) {
	svc := NewJWTService("test-secret", "soon")

	_, _, err := svc.GenerateAccessToken("E001", user.RoleEmployee)
	assert.Error(t, err)
}

func TestDecode_WrongSecret(t *testing.T) {
	token, _, err := NewJWTService("secret-a", "1h").GenerateAccessToken("E001", user.RoleEmployee)
	require.NoError(t, err)

	_, err = NewJWTService("secret-b", "1h").JWTAuth().Decode(token)
	assert.Error(t, err)
}
