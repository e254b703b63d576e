package datauri

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

const fileScheme = "file://"

// VerifyAndClean accepts either a file URI or a bare path and returns a file URI.
func VerifyAndClean(uri string) (clean string, err error) {
	if uri == "" {
		return "", errors.New("empty data URI")
	}
	if !strings.Contains(uri, "://") {
		uri = fmt.Sprintf("%s%s", fileScheme, uri)
	}
	return StrictVerifyAndClean(uri)
}

func StrictVerifyAndClean(uri string) (clean string, err error) {
	if !strings.HasPrefix(uri, fileScheme) {
		return "", errors.Errorf("invalid URI protocol in %q, only file:// is supported", uri)
	}
	p := strings.TrimPrefix(uri, fileScheme)
	if p == "" {
		return "", errors.New("file URI has no path")
	}
	if unescaped, err := url.PathUnescape(p); err == nil {
		p = unescaped
	}
	return fileScheme + filepath.Clean(p), nil
}

func GetAbsolutePathFromFileURI(uri string) (string, error) {
	clean, err := VerifyAndClean(uri)
	if err != nil {
		return "", err
	}
	return filepath.Abs(strings.TrimPrefix(clean, fileScheme))
}
