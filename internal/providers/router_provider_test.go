package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namedHandler(name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(name))
	})
}

func TestRouterProvider_GroupsMethodsByURL(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/api/entries", namedHandler("list"))
	rp.Post("/api/entries", namedHandler("submit"))
	rp.Delete("/api/entries", namedHandler("delete"))
	rp.Get("/api/totals", namedHandler("totals"))

	routes := rp.GetRoutes()
	require.Len(t, routes, 2)
	assert.Equal(t, "/api/entries", routes[0].Url)
	assert.Equal(t, "/api/totals", routes[1].Url)
}

func TestRouterProvider_DispatchesByMethod(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/api/entries", namedHandler("list"))
	rp.Post("/api/entries", namedHandler("submit"))
	rp.Delete("/api/entries", namedHandler("delete"))
	handler := rp.GetRoutes()[0].Handler

	for method, want := range map[string]string{
		http.MethodGet:    "list",
		http.MethodPost:   "submit",
		http.MethodDelete: "delete",
	} {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(method, "/api/entries", nil))
		assert.Equal(t, http.StatusOK, rr.Code, method)
		assert.Equal(t, want, rr.Body.String(), method)
	}
}

func TestRouterProvider_RejectsOtherMethods(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/api/theme", namedHandler("get"))
	rp.Post("/api/theme", namedHandler("set"))
	handler := rp.GetRoutes()[0].Handler

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/api/theme", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "GET, POST", rr.Header().Get("Allow"))
}

func TestRouterProvider_PostRouteRejectsGet(t *testing.T) {
	rp := NewRouterProvider()
	rp.Post("/api/parse-meal", namedHandler("parse"))

	rr := httptest.NewRecorder()
	rp.GetRoutes()[0].Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/parse-meal", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "POST", rr.Header().Get("Allow"))
}
