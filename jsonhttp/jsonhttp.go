// Package jsonhttp writes JSON responses for the HTTP handlers.
package jsonhttp

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

// ErrorBody is the body of every non-2xx response.
type ErrorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// JSONWrite serializes v with the given status code.
func JSONWrite(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Error("jsonhttp: failed to encode response")
	}
}

func JSONError(w http.ResponseWriter, status int, title, detail string) {
	JSONWrite(w, status, ErrorBody{Error: title, Detail: detail})
}

func JSONNotFoundError(w http.ResponseWriter, title, detail string) {
	JSONError(w, http.StatusNotFound, title, detail)
}

func JSONBadRequestError(w http.ResponseWriter, title, detail string) {
	JSONError(w, http.StatusBadRequest, title, detail)
}

func JSONInternalError(w http.ResponseWriter, title, detail string) {
	JSONError(w, http.StatusInternalServerError, title, detail)
}
