package utils

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

type M map[string]any

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}

// RespondWithMessage sends the {message} body used for auth and not-found errors.
func RespondWithMessage(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, M{"message": msg})
}

// RespondWithError sends a {success:false, message} body.
func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, M{"success": false, "message": msg})
}

// RespondServerError logs err and sends a 500. The underlying message is only
// exposed when development is true.
func RespondServerError(w http.ResponseWriter, r *http.Request, development bool, msg string, err error) {
	log.Error().Err(err).Str("request_id", RequestID(r)).Str("path", r.URL.Path).Msg(msg)
	detail := "Server Error"
	if development && err != nil {
		detail = err.Error()
	}
	RespondWithJSON(w, http.StatusInternalServerError, M{
		"success": false,
		"message": msg,
		"error":   detail,
	})
}

// DecodeJSON reads a JSON request body into dst.
func DecodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
