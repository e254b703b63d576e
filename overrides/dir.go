package overrides

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"

	"github.com/genisson-ifba/enem-backend-integrated/questions"
	"github.com/pkg/errors"
)

// DirSource reads published questions from {root}/{year}/{questionId}.json.
type DirSource struct {
	root string
}

func NewDirSource(root string) *DirSource {
	return &DirSource{root: root}
}

func (s *DirSource) Published(_ context.Context, year int, questionID string) (questions.Question, bool, error) {
	if questions.CheckQuestionID(questionID) != nil {
		return nil, false, nil
	}
	p := filepath.Join(s.root, strconv.Itoa(year), questionID+".json")
	raw, err := ioutil.ReadFile(p)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "reading published question %s", p)
	}
	q := questions.Question{}
	if err := json.Unmarshal(raw, &q); err != nil {
		return nil, false, errors.Wrapf(err, "parsing published question %s", p)
	}
	return q, true, nil
}
