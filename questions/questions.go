// Package questions resolves exam questions from their fallback sources: a
// published override, a language variant and the default file, in that order.
package questions

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/genisson-ifba/enem-backend-integrated/config"
)

var Log = config.Cfg().GetLogger()

// Question is an opaque question document. Only the post-processing step
// looks inside it.
type Question map[string]interface{}

// AdminKey holds the editorial metadata carried by published overrides.
const AdminKey = "_admin"

type Language string

const (
	English Language = "ingles"
	Spanish Language = "espanhol"
)

// ParseLanguage maps a raw language tag onto the closed set of variants.
// Anything else, including the empty string, reports false.
func ParseLanguage(s string) (Language, bool) {
	switch Language(s) {
	case English, Spanish:
		return Language(s), true
	}
	return "", false
}

// VariantID is the identifier under which a localized question is stored.
func VariantID(questionID string, lang Language) string {
	return fmt.Sprintf("%s-%s", questionID, lang)
}

// QuestionIndex accepts both "12" and 12 in manifests.
type QuestionIndex string

func (qi *QuestionIndex) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*qi = QuestionIndex(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("question index must be a string or a number, got %s", string(b))
	}
	if i, err := n.Int64(); err == nil {
		*qi = QuestionIndex(strconv.FormatInt(i, 10))
		return nil
	}
	*qi = QuestionIndex(n.String())
	return nil
}

type ManifestEntry struct {
	Index QuestionIndex `json:"index"`
}

// Manifest is the per-year exam document. Raw keeps every field of the
// document so it can be echoed back to clients.
type Manifest struct {
	Questions []ManifestEntry        `json:"questions"`
	Raw       map[string]interface{} `json:"-"`
}

// Indices returns the question identifiers in manifest order.
func (m *Manifest) Indices() []string {
	ids := make([]string, 0, len(m.Questions))
	for _, q := range m.Questions {
		ids = append(ids, string(q.Index))
	}
	return ids
}
