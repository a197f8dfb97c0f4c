package httpjson

import (
	"net/http"

	"github.com/goccy/go-json"
)

type ErrorBody struct {
	Error      string `json:"error"`
	StatusCode int    `json:"statusCode"`
}

func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, msg string) {
	if msg == "" {
		msg = http.StatusText(status)
	}
	Write(w, status, ErrorBody{Error: msg, StatusCode: status})
}
