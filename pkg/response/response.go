package response

import (
	"encoding/json"
	"net/http"
)

type errorBody struct {
	Error string `json:"error"`
}

// JSON writes v as a JSON response with the given status code
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// SuccessResponse writes data as a JSON response
func SuccessResponse(w http.ResponseWriter, code int, data any) {
	JSON(w, code, data)
}

// ErrorResponse writes a {"error": message} JSON response
func ErrorResponse(w http.ResponseWriter, code int, message string) {
	JSON(w, code, errorBody{Error: message})
}
