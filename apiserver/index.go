package apiserver

import (
	"net/http"
	"time"

	"github.com/genisson-ifba/enem-backend-integrated/jsonhttp"
)

func index(w http.ResponseWriter, r *http.Request) {
	jsonhttp.JSONWrite(w, http.StatusOK, map[string]string{"message": "ENEM API is running!"})
}

func health(w http.ResponseWriter, r *http.Request) {
	jsonhttp.JSONWrite(w, http.StatusOK, map[string]string{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	})
}
