package apiserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/genisson-ifba/enem-backend-integrated/jsonhttp"
	"github.com/genisson-ifba/enem-backend-integrated/questions"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

const (
	maxSimuladoBody      = 1 << 20
	maxSimuladoQuestions = 500
)

func parseYear(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := mux.Vars(r)["year"]
	year, err := strconv.Atoi(raw)
	if err != nil || year < 0 {
		jsonhttp.JSONBadRequestError(w, "Invalid year", fmt.Sprintf("%q is not a valid exam year", raw))
		return 0, false
	}
	return year, true
}

func (a *API) getQuestion(w http.ResponseWriter, r *http.Request) {
	year, ok := parseYear(w, r)
	if !ok {
		return
	}
	questionID := mux.Vars(r)["questionId"]
	q, err := a.resolver.Resolve(r.Context(), year, questionID, r.URL.Query().Get("language"))
	if questions.IsNotFound(err) {
		requestLog(r).Info(err)
		jsonhttp.JSONNotFoundError(w, "Question not found", "")
		return
	}
	if err != nil {
		requestLog(r).Error("Unexpected resolution error: ", err)
		jsonhttp.JSONInternalError(w, "Failed to load question", "")
		return
	}
	if err := a.prepare(q, year); err != nil {
		requestLog(r).Error("Failed to process question: ", err)
		jsonhttp.JSONInternalError(w, "Failed to process question", "")
		return
	}
	jsonhttp.JSONWrite(w, http.StatusOK, q)
}

type questionMetadata struct {
	Year       int                    `json:"year"`
	QuestionID string                 `json:"questionId"`
	Published  bool                   `json:"published"`
	Metadata   map[string]interface{} `json:"metadata"`
}

func (a *API) getQuestionMetadata(w http.ResponseWriter, r *http.Request) {
	year, ok := parseYear(w, r)
	if !ok {
		return
	}
	questionID := mux.Vars(r)["questionId"]
	if !a.resolver.HasOverride(r.Context(), year, questionID) {
		jsonhttp.JSONNotFoundError(w, "No published version", "")
		return
	}
	jsonhttp.JSONWrite(w, http.StatusOK, questionMetadata{
		Year:       year,
		QuestionID: questionID,
		Published:  true,
		Metadata:   a.resolver.GetMetadata(r.Context(), year, questionID),
	})
}

// examYear accepts the year as either 2020 or "2020".
type examYear int

func (y *examYear) UnmarshalJSON(b []byte) error {
	var idx questions.QuestionIndex
	if err := json.Unmarshal(b, &idx); err != nil {
		return err
	}
	n, err := strconv.Atoi(string(idx))
	if err != nil {
		return errors.Errorf("invalid year %s", string(b))
	}
	*y = examYear(n)
	return nil
}

type simuladoRequest struct {
	Year        examYear                  `json:"year"`
	QuestionIDs []questions.QuestionIndex `json:"questionIds"`
}

type simuladoResponse struct {
	Questions []questions.Question `json:"questions"`
}

func (a *API) simuladoQuestions(w http.ResponseWriter, r *http.Request) {
	req := simuladoRequest{}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSimuladoBody)).Decode(&req); err != nil {
		jsonhttp.JSONBadRequestError(w, "Invalid JSON", err.Error())
		return
	}
	if req.Year <= 0 {
		jsonhttp.JSONBadRequestError(w, "Invalid year", "year is required")
		return
	}
	if len(req.QuestionIDs) > maxSimuladoQuestions {
		jsonhttp.JSONBadRequestError(w, "Too many questions", fmt.Sprintf("at most %d questions per request", maxSimuladoQuestions))
		return
	}
	ids := make([]string, 0, len(req.QuestionIDs))
	for _, id := range req.QuestionIDs {
		ids = append(ids, string(id))
	}
	year := int(req.Year)
	qs := a.resolver.LoadQuestions(r.Context(), year, ids)
	for _, q := range qs {
		if err := a.prepare(q, year); err != nil {
			requestLog(r).Warn("Failed to process question: ", err)
		}
	}
	jsonhttp.JSONWrite(w, http.StatusOK, simuladoResponse{Questions: qs})
}
