package apiserver

import (
	"time"

	"github.com/genisson-ifba/enem-backend-integrated/postproc"
	"github.com/genisson-ifba/enem-backend-integrated/questions"
)

// API holds the collaborators of the HTTP handlers.
type API struct {
	resolver     *questions.Resolver
	rewriter     *postproc.Rewriter
	staticRoot   string
	staticMaxAge time.Duration
}

// NewAPI wires the handlers. staticRoot is the directory served under /exams/.
func NewAPI(resolver *questions.Resolver, rewriter *postproc.Rewriter, staticRoot string, staticMaxAge time.Duration) *API {
	return &API{
		resolver:     resolver,
		rewriter:     rewriter,
		staticRoot:   staticRoot,
		staticMaxAge: staticMaxAge,
	}
}

// prepare post-processes a resolved question for the wire.
func (a *API) prepare(q questions.Question, year int) error {
	if err := a.rewriter.Apply(q); err != nil {
		return err
	}
	postproc.StampYear(q, year)
	return nil
}
