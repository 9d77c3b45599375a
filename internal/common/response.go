package common

import (
	"encoding/json"
	"net/http"

	"github.com/nikolayk812/caja-isv/internal/wire"
)

// JSON writes v to the response writer as JSON.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONError renders the error body registers understand: {"error": message, "code": code}.
func JSONError(w http.ResponseWriter, status int, code, message string) {
	JSON(w, status, wire.Error{Error: message, Code: code})
}
