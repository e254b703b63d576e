package apiserver

import (
	"github.com/gorilla/mux"
	"net/http"
)

func (a *API) Router() http.Handler {
	router := mux.NewRouter()
	router.StrictSlash(true)

	router.HandleFunc("/", index).Methods("GET")
	router.HandleFunc("/health", health).Methods("GET")

	apiRouter := router.PathPrefix("/api").Subrouter()
	apiRouter.HandleFunc("/exams", a.listExams).Methods("GET")
	apiRouter.HandleFunc("/exams/{year}", a.getExam).Methods("GET")
	apiRouter.HandleFunc("/exams/{year}/questions/{questionId}", a.getQuestion).Methods("GET")
	apiRouter.HandleFunc("/exams/{year}/questions/{questionId}/metadata", a.getQuestionMetadata).Methods("GET")
	apiRouter.HandleFunc("/simulados/questions", a.simuladoQuestions).Methods("POST")

	router.PathPrefix(staticPrefix).Handler(a.staticHandler())

	return Use(router.ServeHTTP, RecoverAndLog, RequestID, SecurityHeaders)
}
