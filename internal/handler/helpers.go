package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func parseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// formPtr returns the trimmed form value, or nil when the field is absent or
// blank. Patch updates treat nil as "keep the stored value".
func formPtr(r *http.Request, name string) *string {
	r.ParseForm()
	if !r.Form.Has(name) {
		return nil
	}
	v := strings.TrimSpace(r.FormValue(name))
	if v == "" {
		return nil
	}
	return &v
}

// formDate parses an optional YYYY-MM-DD form field.
func formDate(r *http.Request, name string) (*time.Time, error) {
	return formDateValue(r.FormValue(name))
}

func formDateValue(v string) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
