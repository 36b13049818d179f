package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/flulance/flulance-backend-go/internal/domain/identity"
	"github.com/flulance/flulance-backend-go/internal/handler/http/middleware"
	"github.com/flulance/flulance-backend-go/internal/handler/http/response"
)

// actor returns the caller resolved by middleware.AuthRequired, writing a
// 401 when there is none.
func actor(w http.ResponseWriter, r *http.Request) (identity.Identity, bool) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.HandleError(w, identity.ErrUnauthenticated)
		return identity.Identity{}, false
	}
	return id, true
}

// decodeJSON reads the request body into dst, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

// getIntQueryParam gets an int query parameter with a default value
func getIntQueryParam(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return intVal
}

// getBoolQueryParam gets a bool query parameter with a default value
func getBoolQueryParam(r *http.Request, key string, defaultVal bool) bool {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	return val == "true" || val == "1"
}
