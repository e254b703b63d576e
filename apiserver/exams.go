package apiserver

import (
	"net/http"

	"github.com/genisson-ifba/enem-backend-integrated/jsonhttp"
)

func (a *API) listExams(w http.ResponseWriter, r *http.Request) {
	catalog, err := a.resolver.Store().LoadCatalog()
	if err != nil {
		requestLog(r).Error(err)
		jsonhttp.JSONInternalError(w, "Failed to load exams data", "")
		return
	}
	jsonhttp.JSONWrite(w, http.StatusOK, catalog)
}

// getExam returns the exam manifest with every listed question resolved.
func (a *API) getExam(w http.ResponseWriter, r *http.Request) {
	year, ok := parseYear(w, r)
	if !ok {
		return
	}
	manifest, err := a.resolver.Store().LoadManifest(year)
	if err != nil {
		requestLog(r).Info(err)
		jsonhttp.JSONNotFoundError(w, "Exam not found", "")
		return
	}
	qs := a.resolver.LoadQuestions(r.Context(), year, manifest.Indices())
	for _, q := range qs {
		if err := a.prepare(q, year); err != nil {
			requestLog(r).Warn("Failed to process question: ", err)
		}
	}
	exam := make(map[string]interface{}, len(manifest.Raw)+1)
	for k, v := range manifest.Raw {
		exam[k] = v
	}
	exam["questions"] = qs
	jsonhttp.JSONWrite(w, http.StatusOK, exam)
}
