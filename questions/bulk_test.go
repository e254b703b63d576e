package questions

import (
	"context"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAllQuestionsForYearDropsFailures(t *testing.T) {
	r, root := newTestResolver(t, &fakeOverrides{})
	writeManifest(t, root, 2020, "1", "2", "3")
	writeQuestion(t, root, 2020, "1", Question{"title": "Q1"})
	writeQuestion(t, root, 2020, "3", Question{"title": "Q3"})

	got := r.LoadAllQuestionsForYear(context.Background(), 2020)
	require.Len(t, got, 2)
	assert.Equal(t, "Q1", got[0]["title"])
	assert.Equal(t, "Q3", got[1]["title"])
}

func TestLoadAllQuestionsForYearUsesOverrides(t *testing.T) {
	ov := &fakeOverrides{questions: map[string]Question{"2020/2": {"title": "Q2 edited"}}}
	r, root := newTestResolver(t, ov)
	writeManifest(t, root, 2020, 1, 2)
	writeQuestion(t, root, 2020, "1", Question{"title": "Q1"})

	got := r.LoadAllQuestionsForYear(context.Background(), 2020)
	require.Len(t, got, 2)
	assert.Equal(t, "Q1", got[0]["title"])
	assert.Equal(t, "Q2 edited", got[1]["title"])
}

func TestLoadAllQuestionsForYearPreservesManifestOrder(t *testing.T) {
	r, root := newTestResolver(t, nil)
	indices := make([]interface{}, 0, 45)
	for i := 45; i >= 1; i-- {
		id := fmt.Sprint(i)
		indices = append(indices, id)
		if i%7 != 0 {
			writeQuestion(t, root, 2019, id, Question{"index": id})
		}
	}
	writeManifest(t, root, 2019, indices...)

	got := r.LoadAllQuestionsForYear(context.Background(), 2019)
	want := make([]string, 0, 45)
	for i := 45; i >= 1; i-- {
		if i%7 != 0 {
			want = append(want, fmt.Sprint(i))
		}
	}
	gotIDs := make([]string, 0, len(got))
	for _, q := range got {
		gotIDs = append(gotIDs, q["index"].(string))
	}
	assert.Equal(t, want, gotIDs)
}

func TestLoadAllQuestionsForYearMissingManifest(t *testing.T) {
	r, _ := newTestResolver(t, nil)

	got := r.LoadAllQuestionsForYear(context.Background(), 1999)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLoadAllQuestionsForYearCorruptManifest(t *testing.T) {
	r, root := newTestResolver(t, nil)
	writeManifest(t, root, 2018, "1")
	require.NoError(t, ioutil.WriteFile(filepath.Join(root, "exams", "2018", "details.json"), []byte("]"), 0644))

	assert.Empty(t, r.LoadAllQuestionsForYear(context.Background(), 2018))
}

func TestLoadQuestionsEmpty(t *testing.T) {
	r, _ := newTestResolver(t, nil)

	got := r.LoadQuestions(context.Background(), 2020, nil)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestManifestIndexAcceptsNumbers(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, 2023, 1, "2", 3)

	m, err := NewLocalStore(root).LoadManifest(2023)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, m.Indices())
	assert.Equal(t, "ENEM 2023", m.Raw["title"])
}
