package helpers

import (
	"encoding/json"
	"net/http"

	"github.com/microcosm-cc/bluemonday"
	"github.com/ninja-software/terror/v2"
	"github.com/volatiletech/null/v8"
)

// EncodeJSON will encode json to response writer and return status ok.
func EncodeJSON(w http.ResponseWriter, result interface{}) (int, error) {
	err := json.NewEncoder(w).Encode(result)
	if err != nil {
		return http.StatusInternalServerError, terror.Error(err, "")
	}
	return http.StatusOK, nil
}

// SanitiseNullString creates a null.String with sanitisation
func SanitiseNullString(s string, sp *bluemonday.Policy) null.String {
	return null.StringFrom(sp.Sanitize(s))
}

// StringPointer converts a string to a string pointer
func StringPointer(str string) *string {
	return &str
}
