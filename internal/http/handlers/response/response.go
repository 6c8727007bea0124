package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation"
)

type errorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func RenderUnauthorized(rw http.ResponseWriter) {
	RenderError(rw, "invalid authentication token", http.StatusUnauthorized)
}

func RenderInternalError(rw http.ResponseWriter) {
	RenderError(rw, "internal error", http.StatusInternalServerError)
}

func RenderRateLimitExceeded(rw http.ResponseWriter) {
	RenderError(rw, "rate limit exceeded", http.StatusTooManyRequests)
}

func RenderInvalidRequestData(rw http.ResponseWriter) {
	RenderError(rw, "invalid request data", http.StatusBadRequest)
}

// RenderValidationError reports the first invalid field, in alphabetical
// order, as "Invalid <field>: <reason>".
func RenderValidationError(rw http.ResponseWriter, err error) {
	var fieldErrors validation.Errors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		RenderError(rw, "Invalid request data: "+err.Error(), http.StatusBadRequest)
		return
	}
	fields := make([]string, 0, len(fieldErrors))
	for field := range fieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	field := fields[0]
	RenderError(rw, fmt.Sprintf("Invalid %s: %s", field, fieldErrors[field].Error()), http.StatusBadRequest)
}

func RenderMessage(rw http.ResponseWriter, msg string, status int) {
	Render(rw, MessageResponse{Message: msg}, status)
}

func RenderError(rw http.ResponseWriter, msg string, status int) {
	Render(rw, errorResponse{Error: msg}, status)
}

func Render(rw http.ResponseWriter, res interface{}, status int) {
	rw.Header().Set("Content-Type", "application/json")

	content, err := json.Marshal(res)
	if err != nil {
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}

	rw.WriteHeader(status)
	rw.Write(content)
}
