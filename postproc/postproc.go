// Package postproc prepares resolved questions for clients: media URLs are
// moved off the upstream host and the context markdown is rendered to HTML.
package postproc

import (
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/genisson-ifba/enem-backend-integrated/mdutils"
	"github.com/genisson-ifba/enem-backend-integrated/questions"
	"github.com/pkg/errors"
)

const matchTimeout = 250 * time.Millisecond

type Rewriter struct {
	source      *regexp2.Regexp
	publicBase  string
	localPrefix string
}

// NewRewriter rewrites URLs starting with sourceHost. Context media goes to
// localPrefix (served by this process); files and alternatives go to publicBase.
func NewRewriter(sourceHost, publicBase, localPrefix string) (*Rewriter, error) {
	if sourceHost == "" {
		return nil, errors.New("media source host is empty")
	}
	// a bare host with nothing after it is not a media URL
	re, err := regexp2.Compile(regexp2.Escape(sourceHost)+`(?=[^\s)"'])`, regexp2.None)
	if err != nil {
		return nil, errors.Wrap(err, "compiling media host pattern")
	}
	re.MatchTimeout = matchTimeout
	return &Rewriter{source: re, publicBase: publicBase, localPrefix: localPrefix}, nil
}

// RewriteMediaURL replaces every occurrence of the source host in s with base.
func (rw *Rewriter) RewriteMediaURL(s, base string) string {
	out, err := rw.source.Replace(s, strings.Replace(base, "$", "$$", -1), -1, -1)
	if err != nil {
		return s
	}
	return out
}

// ProcessContext points embedded media at the local static path and renders
// the markdown to HTML.
func (rw *Rewriter) ProcessContext(context string) (string, error) {
	if context == "" {
		return context, nil
	}
	return mdutils.MakeHTML(rw.RewriteMediaURL(context, rw.localPrefix))
}

// Apply rewrites a resolved question in place.
func (rw *Rewriter) Apply(q questions.Question) error {
	if ctx, ok := q["context"].(string); ok && ctx != "" {
		html, err := rw.ProcessContext(ctx)
		if err != nil {
			return err
		}
		q["context"] = html
	}
	if files, ok := q["files"].([]interface{}); ok {
		for i, f := range files {
			if s, ok := f.(string); ok {
				files[i] = rw.RewriteMediaURL(s, rw.publicBase)
			}
		}
	}
	if alts, ok := q["alternatives"].([]interface{}); ok {
		for _, a := range alts {
			alt, ok := a.(map[string]interface{})
			if !ok {
				continue
			}
			if s, ok := alt["file"].(string); ok && s != "" {
				alt["file"] = rw.RewriteMediaURL(s, rw.publicBase)
			}
		}
	}
	return nil
}

// StampYear records the exam year on the question.
func StampYear(q questions.Question, year int) {
	q["year"] = year
}
