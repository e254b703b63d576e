package questions

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeOverrides struct {
	mu        sync.Mutex
	questions map[string]Question
	err       error
	calls     int
}

func (f *fakeOverrides) Published(_ context.Context, year int, questionID string) (Question, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, false, f.err
	}
	q, ok := f.questions[fmt.Sprintf("%d/%s", year, questionID)]
	return q, ok, nil
}

func writeJSON(t *testing.T, path string, v interface{}) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, ioutil.WriteFile(path, raw, 0644))
}

func writeQuestion(t *testing.T, root string, year int, id string, q Question) {
	writeJSON(t, filepath.Join(root, "exams", strconv.Itoa(year), "questions", id, "details.json"), q)
}

func writeManifest(t *testing.T, root string, year int, indices ...interface{}) {
	entries := make([]map[string]interface{}, 0, len(indices))
	for _, idx := range indices {
		entries = append(entries, map[string]interface{}{"index": idx})
	}
	writeJSON(t, filepath.Join(root, "exams", strconv.Itoa(year), "details.json"), map[string]interface{}{
		"title":     fmt.Sprintf("ENEM %d", year),
		"year":      year,
		"questions": entries,
	})
}
