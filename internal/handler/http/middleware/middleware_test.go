package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(svc jwt.Service, perm user.Permission) http.Handler {
	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(svc.JWTAuth()))
	r.Use(AuthRequired)
	r.With(RequirePermission(perm)).Get("/", func(w http.ResponseWriter, r *http.Request) {
		actor, err := user.ActorFromContext(r.Context())
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(actor.EmployeeID))
	})
	return r
}

func call(t *testing.T, h http.Handler, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthRequired(t *testing.T) {
	svc := jwt.NewJWTService("middleware-secret", "1h")
	h := newRouter(svc, user.PermissionReportEditOwn)

	assert.Equal(t, http.StatusUnauthorized, call(t, h, "").Code)
	assert.Equal(t, http.StatusUnauthorized, call(t, h, "not-a-token").Code)

	token, _, err := svc.GenerateAccessToken("E001", user.RoleEmployee)
	require.NoError(t, err)
	rec := call(t, h, token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "E001", rec.Body.String())

	other, _, err := jwt.NewJWTService("other-secret", "1h").GenerateAccessToken("E001", user.RoleEmployee)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, call(t, h, other).Code)
}

func TestAuthRequired_RefreshTokenRejected(t *testing.T) {
	svc := jwt.NewJWTService("middleware-secret", "1h")
	h := newRouter(svc, user.PermissionReportEditOwn)

	_, token, err := svc.JWTAuth().Encode(map[string]interface{}{
		"employee_id": "E001",
		"role":        "employee",
		"type":        "refresh",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, call(t, h, token).Code)

	_, token, err = svc.JWTAuth().Encode(map[string]interface{}{
		"employee_id": "E001",
		"role":        "superuser",
		"type":        "access",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, call(t, h, token).Code)
}

func TestRequirePermission(t *testing.T) {
	svc := jwt.NewJWTService("middleware-secret", "1h")
	h := newRouter(svc, user.PermissionReportExport)

	employee, _, err := svc.GenerateAccessToken("E001", user.RoleEmployee)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, call(t, h, employee).Code)

	approver, _, err := svc.GenerateAccessToken("B001", user.RoleApprover)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, call(t, h, approver).Code)
}
