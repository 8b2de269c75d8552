package features

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// RemoteExtractor posts raw content (an image, a recording, a scanned report) to an
// extraction service at {BaseURL}/extract/{modality} and decodes the feature object it
// returns. Failures are not retried.
type RemoteExtractor struct {
	Client   *http.Client
	BaseURL  string
	MaxBytes int64
}

func NewRemoteExtractor(client *http.Client, baseURL string, maxBytes int64) *RemoteExtractor {
	if client == nil {
		client = http.DefaultClient
	}
	return &RemoteExtractor{Client: client, BaseURL: strings.TrimRight(baseURL, "/"), MaxBytes: maxBytes}
}

func (e *RemoteExtractor) Extract(ctx context.Context, modality Modality, r io.Reader) (Record, error) {
	if e.MaxBytes > 0 {
		r = io.LimitReader(r, e.MaxBytes)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.BaseURL+"/extract/"+string(modality), r)
	if err != nil {
		return Record{}, fmt.Errorf("%w: build request: %v", ErrExtractionFailed, err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := e.Client.Do(req)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Record{}, fmt.Errorf("%w: read response: %v", ErrExtractionFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Record{}, fmt.Errorf("%w: extractor returned %d", ErrExtractionFailed, resp.StatusCode)
	}
	return Decode(modality, body)
}
