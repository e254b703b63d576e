package overrides

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/genisson-ifba/enem-backend-integrated/questions"
	"github.com/pkg/errors"
)

const maxPublishedBody = 4 << 20

// RemoteSource asks the admin service for the published version of a question.
type RemoteSource struct {
	baseURL string
	client  *http.Client
}

func NewRemoteSource(baseURL string, timeout time.Duration) *RemoteSource {
	client := &http.Client{}
	client.Timeout = timeout
	return &RemoteSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

type publishedResponse struct {
	Success  bool               `json:"success"`
	Question questions.Question `json:"question"`
}

func (s *RemoteSource) publishedURL(year int, questionID string) string {
	return fmt.Sprintf("%s/api/questions/%d/%s/published", s.baseURL, year, url.PathEscape(questionID))
}

// Published reports ok=false for a 404 or a response without success and
// question; any other failure is returned as an error.
func (s *RemoteSource) Published(ctx context.Context, year int, questionID string) (questions.Question, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.publishedURL(year, questionID), nil)
	if err != nil {
		return nil, false, errors.Wrap(err, "building published question request")
	}
	req.Header.Set("Accept", "application/json")
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, false, errors.Wrapf(err, "fetching published question %d/%s", year, questionID)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(ioutil.Discard, io.LimitReader(resp.Body, maxPublishedBody))
		return nil, false, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, false, errors.Errorf("admin service returned %d for %d/%s", resp.StatusCode, year, questionID)
	}

	body := publishedResponse{}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxPublishedBody)).Decode(&body); err != nil {
		return nil, false, errors.Wrapf(err, "decoding published question %d/%s", year, questionID)
	}
	if !body.Success || body.Question == nil {
		return nil, false, nil
	}
	return body.Question, true, nil
}
