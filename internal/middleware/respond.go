package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/homelist/marketplace/internal/handler/dto"
)

// writeError writes a failure envelope from middleware that short-circuits
// the handler chain.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(dto.NewErrorResponse(message))
}
