package apiserver

import (
	"context"
	"net/http"

	"github.com/genisson-ifba/enem-backend-integrated/jsonhttp"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// `Use` allows us to stack middleware to process the request
// Example taken from https://github.com/gorilla/mux/pull/36#issuecomment-25849172
func Use(handler http.HandlerFunc, mid ...func(http.Handler) http.HandlerFunc) http.HandlerFunc {
	for _, m := range mid {
		handler = m(handler)
	}
	return handler
}

func RecoverAndLog(handler http.Handler) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec != nil {
				jsonhttp.JSONInternalError(w, "An internal server error occurred", "Please try again in a few seconds")
				requestLog(r).Error("Panic occurred in HTTP handler: ", rec)
			}
		}()
		handler.ServeHTTP(w, r)
	})
}

const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestID tags every request with an id, reusing the caller's when given.
func RequestID(handler http.Handler) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		handler.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func requestLog(r *http.Request) *logrus.Entry {
	entry := Log.WithFields(logrus.Fields{"method": r.Method, "path": r.URL.Path})
	if id, ok := r.Context().Value(requestIDKey{}).(string); ok {
		entry = entry.WithField("requestId", id)
	}
	return entry
}

const contentSecurityPolicy = "default-src 'self'; style-src 'self' 'unsafe-inline'; script-src 'self'; img-src 'self' data: https:"

func SecurityHeaders(handler http.Handler) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Content-Security-Policy", contentSecurityPolicy)
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "SAMEORIGIN")
		h.Set("Referrer-Policy", "no-referrer")
		handler.ServeHTTP(w, r)
	})
}
