// Package response writes the API's JSON and plain-text response shapes.
package response

import (
	"encoding/json"
	"net/http"
)

// JSON encodes v as the response body with the given status.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// OK sends a 200 JSON response.
func OK(w http.ResponseWriter, v interface{}) {
	JSON(w, http.StatusOK, v)
}

// Created sends a 201 JSON response.
func Created(w http.ResponseWriter, v interface{}) {
	JSON(w, http.StatusCreated, v)
}

// Message sends a JSON body of the form {"message": msg}.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"message": msg})
}

// Text sends a plain-text body. Workflow conflicts (cancel after delivery,
// duplicate seller request) use this shape.
func Text(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(msg)) //nolint:errcheck
}

// ValidationError sends a 422 with a field-level error map.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	JSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
		"message": "Validation failed",
		"errors":  errs,
	})
}

// Unauthorized sends the 401 body used for missing or invalid tokens.
func Unauthorized(w http.ResponseWriter) {
	Message(w, http.StatusUnauthorized, "unauthorized access")
}

// Forbidden sends the 403 body used for role mismatches.
func Forbidden(w http.ResponseWriter) {
	Message(w, http.StatusForbidden, "Forbidden access!")
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter) {
	Message(w, http.StatusNotFound, "Not found")
}

// InternalError sends the generic 500 body. Store errors bubble here.
func InternalError(w http.ResponseWriter) {
	Message(w, http.StatusInternalServerError, "Internal Server Error")
}
