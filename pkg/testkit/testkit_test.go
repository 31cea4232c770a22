package testkit

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&in)

		cookie := ""
		if ck, err := r.Cookie("session"); err == nil {
			cookie = ck.Value
		}

		http.SetCookie(w, &http.Cookie{Name: "echo", Value: "1"})
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"method": r.Method,
			"path":   r.URL.Path,
			"body":   in,
			"cookie": cookie,
			"header": r.Header.Get("X-Probe"),
		})
	})
}

func TestBuilderCarriesBodyHeadersAndCookies(t *testing.T) {
	rec := New(echoHandler()).
		Request(t, http.MethodPost, "/things").
		JSON(map[string]string{"name": "fern"}).
		Header("X-Probe", "yes").
		Cookie(&http.Cookie{Name: "session", Value: "abc"}).
		Do()

	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Method string            `json:"method"`
		Path   string            `json:"path"`
		Body   map[string]string `json:"body"`
		Cookie string            `json:"cookie"`
		Header string            `json:"header"`
	}
	DecodeJSON(t, rec, &got)

	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/things", got.Path)
	assert.Equal(t, "fern", got.Body["name"])
	assert.Equal(t, "abc", got.Cookie)
	assert.Equal(t, "yes", got.Header)
}

func TestCookieNamed(t *testing.T) {
	rec := New(echoHandler()).Request(t, http.MethodGet, "/").Do()

	require.NotNil(t, CookieNamed(rec, "echo"))
	assert.Equal(t, "1", CookieNamed(rec, "echo").Value)
	assert.Nil(t, CookieNamed(rec, "missing"))
}
