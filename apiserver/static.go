package apiserver

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/genisson-ifba/enem-backend-integrated/jsonhttp"
)

const staticPrefix = "/exams/"

// staticHandler serves exam media. Directory listings are not exposed.
func (a *API) staticHandler() http.Handler {
	files := http.StripPrefix(staticPrefix, http.FileServer(http.Dir(a.staticRoot)))
	cacheControl := fmt.Sprintf("public, max-age=%d", int(a.staticMaxAge.Seconds()))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			jsonhttp.JSONNotFoundError(w, "Not found", "")
			return
		}
		w.Header().Set("Cache-Control", cacheControl)
		files.ServeHTTP(w, r)
	})
}
