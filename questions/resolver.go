package questions

import (
	"context"

	"github.com/sirupsen/logrus"
)

// OverrideSource looks up the editorially published replacement of a
// question. ok is false when no override exists; a non-nil error means the
// source could not be consulted.
type OverrideSource interface {
	Published(ctx context.Context, year int, questionID string) (q Question, ok bool, err error)
}

type noOverrides struct{}

func (noOverrides) Published(context.Context, int, string) (Question, bool, error) {
	return nil, false, nil
}

const defaultConcurrency = 8

// Resolver picks exactly one source for a question. It holds no mutable
// state and is safe for concurrent use.
type Resolver struct {
	overrides   OverrideSource
	store       Store
	concurrency int
	tiers       []tier
}

// NewResolver builds a resolver. A nil overrides source disables the first
// tier; concurrency bounds the bulk loaders.
func NewResolver(overrides OverrideSource, store Store, concurrency int) *Resolver {
	if overrides == nil {
		overrides = noOverrides{}
	}
	if concurrency < 1 {
		concurrency = defaultConcurrency
	}
	r := &Resolver{
		overrides:   overrides,
		store:       store,
		concurrency: concurrency,
	}
	r.tiers = []tier{
		{name: "override", lookup: r.overrideTier},
		{name: "variant", lookup: r.variantTier},
		{name: "default", lookup: r.defaultTier},
	}
	return r
}

func (r *Resolver) Store() Store {
	return r.store
}

type lookupRequest struct {
	year       int
	questionID string
	lang       Language
	hasLang    bool
}

func (req lookupRequest) fields(tierName string) logrus.Fields {
	return logrus.Fields{
		"year":       req.year,
		"questionId": req.questionID,
		"language":   string(req.lang),
		"tier":       tierName,
	}
}

// tier is one candidate source. lookup never fails: every error is turned
// into "absent" at the tier boundary.
type tier struct {
	name   string
	lookup func(ctx context.Context, req lookupRequest) (Question, bool)
}

// Resolve returns the first question found among the published override,
// the language variant (only for recognized languages) and the default file.
// The only error it returns is *NotFoundError.
func (r *Resolver) Resolve(ctx context.Context, year int, questionID string, language string) (Question, error) {
	lang, hasLang := ParseLanguage(language)
	req := lookupRequest{year: year, questionID: questionID, lang: lang, hasLang: hasLang}
	for _, t := range r.tiers {
		if q, ok := t.lookup(ctx, req); ok {
			Log.WithFields(req.fields(t.name)).Debug("Resolved question")
			return q, nil
		}
	}
	return nil, &NotFoundError{Year: year, QuestionID: questionID, Language: string(lang)}
}

func (r *Resolver) overrideTier(ctx context.Context, req lookupRequest) (Question, bool) {
	q, ok, err := r.overrides.Published(ctx, req.year, req.questionID)
	return absentOnError(req.fields("override"), q, ok && q != nil, err)
}

func (r *Resolver) variantTier(_ context.Context, req lookupRequest) (Question, bool) {
	if !req.hasLang {
		return nil, false
	}
	return r.localTier(req.fields("variant"), req.year, VariantID(req.questionID, req.lang))
}

func (r *Resolver) defaultTier(_ context.Context, req lookupRequest) (Question, bool) {
	return r.localTier(req.fields("default"), req.year, req.questionID)
}

func (r *Resolver) localTier(fields logrus.Fields, year int, id string) (Question, bool) {
	if !r.store.Exists(year, id) {
		return nil, false
	}
	q, err := r.store.Load(year, id)
	return absentOnError(fields, q, err == nil && q != nil, err)
}

// absentOnError degrades a failed lookup to "absent".
func absentOnError(fields logrus.Fields, q Question, ok bool, err error) (Question, bool) {
	if err != nil {
		Log.WithFields(fields).WithError(err).Warn("Question source unavailable, falling through")
		return nil, false
	}
	if !ok {
		return nil, false
	}
	return q, true
}
