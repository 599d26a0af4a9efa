package handler

import (
	"net/http"
	"strconv"
)

// getQueryInt returns a positive integer query parameter, or defaultValue
// when it is missing or not a positive number.
func getQueryInt(r *http.Request, key string, defaultValue int) int {
	if valStr := r.URL.Query().Get(key); valStr != "" {
		if val, err := strconv.Atoi(valStr); err == nil && val > 0 {
			return val
		}
	}
	return defaultValue
}
