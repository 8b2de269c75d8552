package diagnosis

import (
	"errors"
	"fmt"

	"github.com/synaptica-ai/diagnostics/pkg/engine"
	"github.com/synaptica-ai/diagnostics/pkg/features"
)

var (
	errEmptyRequest   = errors.New("request carries neither features nor text")
	errAmbiguousInput = errors.New("request carries both features and text")
)

type ValidationError struct {
	reason error
}

func (e ValidationError) Error() string {
	return e.reason.Error()
}

func (e ValidationError) Unwrap() error {
	return e.reason
}

// IsValidationError covers both request errors and record validation errors.
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve) || features.IsValidationError(err)
}

// AnalyzeRequest is the JSON body of POST /api/v1/analyze and the data of a
// features.extracted event.
type AnalyzeRequest struct {
	RequestID string                 `json:"request_id,omitempty"`
	Modality  string                 `json:"modality"`
	Features  map[string]interface{} `json:"features,omitempty"`
	Text      string                 `json:"text,omitempty"`
}

// ToInput resolves the modality alias and decodes the feature map.
func (r AnalyzeRequest) ToInput() (engine.Input, error) {
	modality, err := features.ParseModality(r.Modality)
	if err != nil {
		return engine.Input{}, err
	}
	switch {
	case len(r.Features) > 0 && r.Text != "":
		return engine.Input{}, ValidationError{reason: errAmbiguousInput}
	case len(r.Features) > 0:
		rec, err := features.FromMap(modality, r.Features)
		if err != nil {
			return engine.Input{}, ValidationError{reason: fmt.Errorf("features: %w", err)}
		}
		return engine.Input{Modality: modality, Record: &rec}, nil
	case r.Text != "":
		return engine.Input{Modality: modality, Payload: []byte(r.Text)}, nil
	}
	return engine.Input{}, ValidationError{reason: errEmptyRequest}
}

// requestFromEvent reads an AnalyzeRequest out of an event's data map.
func requestFromEvent(data map[string]interface{}) AnalyzeRequest {
	var req AnalyzeRequest
	req.RequestID, _ = data["request_id"].(string)
	req.Modality, _ = data["modality"].(string)
	req.Text, _ = data["text"].(string)
	req.Features, _ = data["features"].(map[string]interface{})
	return req
}
