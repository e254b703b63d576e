package questions

import (
	"context"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(t *testing.T, overrides OverrideSource) (*Resolver, string) {
	root := t.TempDir()
	return NewResolver(overrides, NewLocalStore(root), 4), root
}

func TestResolveOverrideDominates(t *testing.T) {
	ov := &fakeOverrides{questions: map[string]Question{
		"2020/5": {"title": "X"},
	}}
	r, root := newTestResolver(t, ov)
	writeQuestion(t, root, 2020, "5", Question{"title": "Y"})
	writeQuestion(t, root, 2020, "5-ingles", Question{"title": "Z"})

	q, err := r.Resolve(context.Background(), 2020, "5", "")
	require.NoError(t, err)
	assert.Equal(t, Question{"title": "X"}, q)

	q, err = r.Resolve(context.Background(), 2020, "5", "ingles")
	require.NoError(t, err)
	assert.Equal(t, Question{"title": "X"}, q)
}

func TestResolveLanguageVariant(t *testing.T) {
	r, root := newTestResolver(t, &fakeOverrides{})
	writeQuestion(t, root, 2021, "3", Question{"title": "default"})
	writeQuestion(t, root, 2021, "3-ingles", Question{"title": "english"})
	writeQuestion(t, root, 2021, "3-espanhol", Question{"title": "spanish"})

	for lang, want := range map[string]string{"ingles": "english", "espanhol": "spanish"} {
		q, err := r.Resolve(context.Background(), 2021, "3", lang)
		require.NoError(t, err, lang)
		assert.Equal(t, want, q["title"], lang)
	}
}

func TestResolveMissingVariantFallsBackToDefault(t *testing.T) {
	r, root := newTestResolver(t, nil)
	writeQuestion(t, root, 2021, "7", Question{"title": "default"})

	q, err := r.Resolve(context.Background(), 2021, "7", "espanhol")
	require.NoError(t, err)
	assert.Equal(t, "default", q["title"])
}

func TestResolveCorruptVariantFallsBackToDefault(t *testing.T) {
	r, root := newTestResolver(t, nil)
	writeQuestion(t, root, 2021, "8", Question{"title": "default"})
	variant := filepath.Join(root, "exams", "2021", "questions", "8-ingles", "details.json")
	writeQuestion(t, root, 2021, "8-ingles", Question{})
	require.NoError(t, ioutil.WriteFile(variant, []byte("{not json"), 0644))

	q, err := r.Resolve(context.Background(), 2021, "8", "ingles")
	require.NoError(t, err)
	assert.Equal(t, "default", q["title"])
}

func TestResolveUnrecognizedLanguageIgnored(t *testing.T) {
	r, root := newTestResolver(t, nil)
	writeQuestion(t, root, 2022, "1", Question{"title": "default"})
	writeQuestion(t, root, 2022, "1-french", Question{"title": "french"})
	writeQuestion(t, root, 2022, "1-Ingles", Question{"title": "wrong case"})

	for _, lang := range []string{"", "french", "Ingles", "null"} {
		q, err := r.Resolve(context.Background(), 2022, "1", lang)
		require.NoError(t, err, lang)
		assert.Equal(t, "default", q["title"], lang)
	}
}

func TestResolveNotFound(t *testing.T) {
	r, _ := newTestResolver(t, &fakeOverrides{})

	_, err := r.Resolve(context.Background(), 2020, "99", "ingles")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "2020/99")

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, 2020, nf.Year)
	assert.Equal(t, "99", nf.QuestionID)
	assert.Equal(t, "ingles", nf.Language)
}

func TestResolveOverrideFailureIsNotFatal(t *testing.T) {
	ov := &fakeOverrides{err: errors.New("dial tcp: connection refused")}
	r, root := newTestResolver(t, ov)
	writeQuestion(t, root, 2020, "2", Question{"title": "default"})
	writeQuestion(t, root, 2020, "2-ingles", Question{"title": "english"})

	q, err := r.Resolve(context.Background(), 2020, "2", "")
	require.NoError(t, err)
	assert.Equal(t, "default", q["title"])

	q, err = r.Resolve(context.Background(), 2020, "2", "ingles")
	require.NoError(t, err)
	assert.Equal(t, "english", q["title"])

	_, err = r.Resolve(context.Background(), 2020, "3", "")
	assert.True(t, IsNotFound(err))
}

func TestResolveRejectsTraversal(t *testing.T) {
	r, root := newTestResolver(t, nil)
	writeManifest(t, root, 2020, "1")

	_, err := r.Resolve(context.Background(), 2020, "..", "")
	assert.True(t, IsNotFound(err))
	_, err = r.Resolve(context.Background(), 2020, "../2020", "")
	assert.True(t, IsNotFound(err))
}

func TestParseLanguage(t *testing.T) {
	lang, ok := ParseLanguage("ingles")
	assert.True(t, ok)
	assert.Equal(t, English, lang)

	_, ok = ParseLanguage("english")
	assert.False(t, ok)
	assert.Equal(t, "12-espanhol", VariantID("12", Spanish))
}

func TestMetadata(t *testing.T) {
	ov := &fakeOverrides{questions: map[string]Question{
		"2020/5": {"title": "X", AdminKey: map[string]interface{}{"editedBy": "ana"}},
		"2020/6": {"title": "no meta"},
	}}
	r, _ := newTestResolver(t, ov)
	ctx := context.Background()

	assert.True(t, r.HasOverride(ctx, 2020, "5"))
	assert.Equal(t, map[string]interface{}{"editedBy": "ana"}, r.GetMetadata(ctx, 2020, "5"))

	assert.True(t, r.HasOverride(ctx, 2020, "6"))
	assert.Nil(t, r.GetMetadata(ctx, 2020, "6"))

	assert.False(t, r.HasOverride(ctx, 2020, "7"))
	assert.Nil(t, r.GetMetadata(ctx, 2020, "7"))

	ov.err = errors.New("timeout")
	assert.False(t, r.HasOverride(ctx, 2020, "5"))
	assert.Nil(t, r.GetMetadata(ctx, 2020, "5"))
}

func writeRaw(t *testing.T, root string, year int, id, body string) {
	writeQuestion(t, root, year, id, Question{})
	path := filepath.Join(root, "exams", fmt.Sprint(year), "questions", id, "details.json")
	require.NoError(t, ioutil.WriteFile(path, []byte(body), 0644))
}

func TestResolveNullVariantFallsBackToDefault(t *testing.T) {
	r, root := newTestResolver(t, nil)
	writeQuestion(t, root, 2021, "8", Question{"title": "default"})
	writeRaw(t, root, 2021, "8-ingles", "null")

	q, err := r.Resolve(context.Background(), 2021, "8", "ingles")
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, "default", q["title"])
}

func TestResolveNullDefaultIsNotFound(t *testing.T) {
	r, root := newTestResolver(t, nil)
	writeRaw(t, root, 2021, "9", "null")

	q, err := r.Resolve(context.Background(), 2021, "9", "")
	assert.Nil(t, q)
	assert.True(t, IsNotFound(err))
}

func TestLocalStoreLoadNull(t *testing.T) {
	root := t.TempDir()
	writeRaw(t, root, 2021, "9", "null")

	_, err := NewLocalStore(root).Load(2021, "9")
	assert.True(t, errors.Is(err, ErrEmptyQuestion))
}

type nilStore struct{ Store }

func (nilStore) Exists(int, string) bool { return true }

func (nilStore) Load(int, string) (Question, error) { return nil, nil }

func TestResolveStoreReturningNilIsNotFound(t *testing.T) {
	r := NewResolver(nil, nilStore{}, 1)

	q, err := r.Resolve(context.Background(), 2021, "1", "espanhol")
	assert.Nil(t, q)
	assert.True(t, IsNotFound(err))
}
