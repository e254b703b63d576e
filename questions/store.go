package questions

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Store is the local, read-only exam tree.
type Store interface {
	Exists(year int, questionID string) bool
	Load(year int, questionID string) (Question, error)
	LoadManifest(year int) (*Manifest, error)
	LoadCatalog() (interface{}, error)
}

var (
	ErrInvalidQuestionID = errors.New("invalid question id")
	ErrEmptyQuestion     = errors.New("question document is null")
)

// LocalStore reads the public data tree:
//
//	{root}/exams.json
//	{root}/exams/{year}/details.json
//	{root}/exams/{year}/questions/{questionId}/details.json
type LocalStore struct {
	root string
}

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

func (s *LocalStore) examDir(year int) string {
	return filepath.Join(s.root, "exams", strconv.Itoa(year))
}

func (s *LocalStore) questionPath(year int, questionID string) (string, error) {
	if err := CheckQuestionID(questionID); err != nil {
		return "", err
	}
	return filepath.Join(s.examDir(year), "questions", questionID, "details.json"), nil
}

func (s *LocalStore) Exists(year int, questionID string) bool {
	p, err := s.questionPath(year, questionID)
	if err != nil {
		return false
	}
	fi, err := os.Stat(p)
	return err == nil && !fi.IsDir()
}

func (s *LocalStore) Load(year int, questionID string) (Question, error) {
	p, err := s.questionPath(year, questionID)
	if err != nil {
		return nil, err
	}
	q := Question{}
	if err := readJSONFile(p, &q); err != nil {
		return nil, err
	}
	// a "null" document decodes into a nil map
	if q == nil {
		return nil, errors.Wrapf(ErrEmptyQuestion, "%s", p)
	}
	return q, nil
}

func (s *LocalStore) LoadManifest(year int) (*Manifest, error) {
	p := filepath.Join(s.examDir(year), "details.json")
	raw, err := ioutil.ReadFile(p)
	if err != nil {
		return nil, errors.Wrapf(err, "reading manifest for %d", year)
	}
	m := &Manifest{}
	if err := json.Unmarshal(raw, m); err != nil {
		return nil, errors.Wrapf(err, "parsing manifest %s", p)
	}
	if err := json.Unmarshal(raw, &m.Raw); err != nil {
		return nil, errors.Wrapf(err, "parsing manifest %s", p)
	}
	return m, nil
}

func (s *LocalStore) LoadCatalog() (interface{}, error) {
	var catalog interface{}
	if err := readJSONFile(filepath.Join(s.root, "exams.json"), &catalog); err != nil {
		return nil, err
	}
	return catalog, nil
}

func readJSONFile(path string, out interface{}) error {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Wrapf(err, "parsing %s", path)
	}
	return nil
}

// CheckQuestionID keeps identifiers inside their year directory.
func CheckQuestionID(id string) error {
	if id == "" || id == "." || strings.Contains(id, "..") || strings.ContainsAny(id, `/\`) {
		return errors.Wrapf(ErrInvalidQuestionID, "%q", id)
	}
	return nil
}
