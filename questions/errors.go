package questions

import (
	"fmt"

	"github.com/pkg/errors"
)

// NotFoundError is returned when no tier could produce the requested question.
type NotFoundError struct {
	Year       int
	QuestionID string
	Language   string
}

func (e *NotFoundError) Error() string {
	if e.Language != "" {
		return fmt.Sprintf("question not found: %d/%s (language %s)", e.Year, e.QuestionID, e.Language)
	}
	return fmt.Sprintf("question not found: %d/%s", e.Year, e.QuestionID)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
