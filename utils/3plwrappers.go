package utils

import (
	"net/http"

	"reisegruppen/globals"

	"github.com/google/uuid"
)

func GetUUID() string {
	return uuid.New().String()
}

// RequestID returns the id assigned to r by the request-id middleware.
func RequestID(r *http.Request) string {
	id, _ := r.Context().Value(globals.RequestIDKey).(string)
	return id
}
