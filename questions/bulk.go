package questions

import (
	"context"

	"github.com/remeh/sizedwaitgroup"
	"github.com/sirupsen/logrus"
)

// LoadQuestions resolves every id without a language qualifier. Ids that
// fail to resolve are dropped; the rest keep their relative order.
func (r *Resolver) LoadQuestions(ctx context.Context, year int, ids []string) []Question {
	resolved := make([]Question, len(ids))
	swg := sizedwaitgroup.New(r.concurrency)
	for i, id := range ids {
		swg.Add()
		go func(i int, id string) {
			defer swg.Done()
			q, err := r.Resolve(ctx, year, id, "")
			if err != nil {
				Log.WithFields(logrus.Fields{"year": year, "questionId": id}).Warnf("Failed to load question: %s", err)
				return
			}
			resolved[i] = q
		}(i, id)
	}
	swg.Wait()

	out := make([]Question, 0, len(ids))
	for _, q := range resolved {
		if q != nil {
			out = append(out, q)
		}
	}
	return out
}

// LoadAllQuestionsForYear resolves every question listed in the year's
// manifest. It never fails: a missing or corrupt manifest yields an empty slice.
func (r *Resolver) LoadAllQuestionsForYear(ctx context.Context, year int) []Question {
	manifest, err := r.store.LoadManifest(year)
	if err != nil {
		Log.WithField("year", year).Errorf("Failed to load exam: %s", err)
		return []Question{}
	}
	return r.LoadQuestions(ctx, year, manifest.Indices())
}
