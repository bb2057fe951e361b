package monday

import (
	"bytes"
	"context"
	"io"
	"net/http"
)

// authTransport setzt die monday.com Header und merkt sich Fehlerantworten.
type authTransport struct {
	token      string
	apiVersion string
	base       http.RoundTripper
}

// statusRecord captures a non-2xx response or a network failure of one
// GraphQL request.
type statusRecord struct {
	StatusCode int
	Body       string
	Err        error
}

type statusRecordKey struct{}

func withStatusRecord(ctx context.Context) (context.Context, *statusRecord) {
	rec := &statusRecord{}
	return context.WithValue(ctx, statusRecordKey{}, rec), rec
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	// monday erwartet den API Key ohne "Bearer " Präfix
	req.Header.Set("Authorization", t.token)
	if t.apiVersion != "" {
		req.Header.Set("API-Version", t.apiVersion)
	}

	rec, _ := req.Context().Value(statusRecordKey{}).(*statusRecord)

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		if rec != nil {
			rec.Err = err
		}
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if rec != nil {
			body, _ := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			resp.Body = io.NopCloser(bytes.NewReader(body))

			rec.StatusCode = resp.StatusCode
			rec.Body = string(body)
		}
	}

	return resp, nil
}
