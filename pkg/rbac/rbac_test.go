package rbac

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantnet-dev/plantnet/pkg/middleware"
)

func resolver(roles map[string]string, err error) RoleResolver {
	return RoleResolverFunc(func(_ context.Context, email string) (string, error) {
		if err != nil {
			return "", err
		}
		return roles[email], nil
	})
}

func serve(t *testing.T, mw func(http.Handler) http.Handler, email string) *httptest.ResponseRecorder {
	t.Helper()

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if email != "" {
		r = r.WithContext(middleware.WithEmail(r.Context(), email))
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)
	return rec
}

func TestRequireAllowsMatchingRole(t *testing.T) {
	mw := Require(resolver(map[string]string{"s@x.com": "seller"}, nil), "seller")
	rec := serve(t, mw, "s@x.com")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAllowsAnyListedRole(t *testing.T) {
	mw := Require(resolver(map[string]string{"a@x.com": "admin"}, nil), "seller", "admin")
	rec := serve(t, mw, "a@x.com")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRejectsWrongRole(t *testing.T) {
	mw := Require(resolver(map[string]string{"c@x.com": "customer"}, nil), "seller")
	rec := serve(t, mw, "c@x.com")

	assert.Equal(t, http.StatusForbidden, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Forbidden access!", body["message"])
}

func TestRequireRejectsUnknownUser(t *testing.T) {
	mw := Require(resolver(map[string]string{}, nil), "seller")
	rec := serve(t, mw, "ghost@x.com")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireWithoutIdentityIs401(t *testing.T) {
	mw := Require(resolver(map[string]string{}, nil), "seller")
	rec := serve(t, mw, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unauthorized access", body["message"])
}

func TestRequireStoreErrorIs500(t *testing.T) {
	mw := Require(resolver(nil, errors.New("mongo down")), "seller")
	rec := serve(t, mw, "s@x.com")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
