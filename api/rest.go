package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"catalog-services/catlog"

	"github.com/ninja-software/terror/v2"
)

type ErrorMessage string

const (
	InternalErrorTryAgain ErrorMessage = "Internal Error - Please try again in a few minutes or Contact Support"
	InputError            ErrorMessage = "Input Error - Please try again"
)

func (errMsg ErrorMessage) String() string {
	return string(errMsg)
}

// FieldErrors maps a field name to its validation failure messages.
type FieldErrors map[string][]string

// Add appends a message to the field's error list
func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

// ValidationError is returned by a handler when request fields fail
// validation. Rendered as a 422 with the field-error map.
type ValidationError struct {
	Errors FieldErrors `json:"errors"`
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// ErrorObject is the JSON error envelope. Err carries the raw failure
// message on internal errors only.
type ErrorObject struct {
	Message string `json:"message"`
	Err     string `json:"error,omitempty"`
}

// WithError handles error responses.
func WithError(next func(w http.ResponseWriter, r *http.Request) (int, error)) http.HandlerFunc {
	fn := func(w http.ResponseWriter, r *http.Request) {
		code, err := next(w, r)
		if err == nil {
			return
		}

		var vErr *ValidationError
		if errors.As(err, &vErr) {
			writeJSON(w, http.StatusUnprocessableEntity, vErr)
			return
		}

		errObj := &ErrorObject{Message: err.Error()}
		var tErr *terror.TError
		if errors.As(err, &tErr) {
			if tErr.Message != "" {
				errObj.Message = tErr.Message
			}
			switch tErr.Level {
			case terror.ErrLevelWarn:
				catlog.L.Warn().Err(err).Str("path", r.URL.Path).Msg("rest error")
			default:
				catlog.L.Err(err).Str("path", r.URL.Path).Msg("rest error")
			}
		} else {
			catlog.L.Err(err).Str("path", r.URL.Path).Msg("rest error")
		}

		if code == http.StatusInternalServerError {
			errObj.Err = err.Error()
			if errObj.Message == errObj.Err {
				errObj.Message = InternalErrorTryAgain.String()
			}
		}

		writeJSON(w, code, errObj)
	}
	return fn
}

func writeJSON(w http.ResponseWriter, code int, body interface{}) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		terror.Echo(err)
		http.Error(w, `{"message":"JSON failed, please contact IT."}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, err = w.Write(jsonBody)
	if err != nil {
		terror.Echo(err)
	}
}
