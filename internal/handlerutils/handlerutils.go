package handlerutils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
)

// APIHandler is a handler that reports failure through its error return
// instead of writing error responses itself. The error middleware adapts it
// into a http.HandlerFunc.
type APIHandler func(w http.ResponseWriter, r *http.Request) error

// Envelope is the wire shape of every response, success or failure. Clients
// branch on Success, not on the transport status code. Length only appears
// on list responses that paginate.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
	Length  *int   `json:"length,omitempty"`
}

// NoDataMessage replaces the caller's message whenever the payload is absent
// or empty, and the envelope flips to unsuccessful.
const NoDataMessage = "No data available"

func ParseJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("missing request body")
	}

	return json.NewDecoder(r.Body).Decode(v)
}

// WriteSuccessJSON writes a successful envelope, normalizing absent or empty
// payloads into the canonical unsuccessful "No data available" response.
func WriteSuccessJSON(w http.ResponseWriter, statusCode int, message string, data any) error {
	return writeJSON(
		w,
		statusCode,
		normalize(message, data, nil),
	)
}

// WriteListJSON is WriteSuccessJSON for paginated listings; length is the
// total matched count, not the page size.
func WriteListJSON(w http.ResponseWriter, statusCode int, message string, data any, length int) error {
	return writeJSON(
		w,
		statusCode,
		normalize(message, data, &length),
	)
}

// WriteErrorJSON writes an unsuccessful envelope. The detail payload, when
// present, rides in data so the shape stays identical to success responses.
func WriteErrorJSON(w http.ResponseWriter, statusCode int, message string, errs any) error {
	if errs == nil {
		errs = struct{}{}
	}

	return writeJSON(
		w,
		statusCode,
		&Envelope{
			Success: false,
			Message: message,
			Data:    errs,
		},
	)
}

func normalize(message string, data any, length *int) *Envelope {
	env := &Envelope{
		Success: true,
		Message: message,
		Data:    data,
		Length:  length,
	}

	if data == nil {
		env.Success = false
		env.Message = NoDataMessage
		env.Data = struct{}{}
		return env
	}

	v := reflect.ValueOf(data)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			env.Success = false
			env.Message = NoDataMessage
			env.Data = struct{}{}
			return env
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		if v.Len() == 0 {
			env.Success = false
			env.Message = NoDataMessage
			env.Data = []any{}
		}
	}

	return env
}

func writeJSON(w http.ResponseWriter, statusCode int, env *Envelope) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return json.NewEncoder(w).Encode(env)
}
