package features

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// Extractor turns raw modality content into a Record. Implementations that call out to
// vision, OCR or audio services honour ctx; the timeout belongs to the caller.
type Extractor interface {
	Extract(ctx context.Context, modality Modality, r io.Reader) (Record, error)
}

// DecodeExtractor accepts content whose features were extracted upstream: a JSON object
// with the modality's fields, or for lab and chat plain text.
type DecodeExtractor struct {
	MaxBytes int64
}

func NewDecodeExtractor(maxBytes int64) *DecodeExtractor {
	return &DecodeExtractor{MaxBytes: maxBytes}
}

func (e *DecodeExtractor) Extract(ctx context.Context, modality Modality, r io.Reader) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	if e != nil && e.MaxBytes > 0 {
		r = io.LimitReader(r, e.MaxBytes)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return Record{}, fmt.Errorf("%w: read input: %v", ErrExtractionFailed, err)
	}
	return Decode(modality, data)
}

// Decode builds a Record from a JSON payload or, for lab and chat, raw text.
func Decode(modality Modality, data []byte) (Record, error) {
	trimmed := bytes.TrimSpace(data)
	rec := Record{Modality: modality}

	if len(trimmed) == 0 || trimmed[0] != '{' {
		switch modality {
		case ModalityLab:
			rec.Lab = &LabFeatures{Text: string(data)}
			return rec, nil
		case ModalityChat:
			rec.Text = &TextFeatures{Message: string(data)}
			return rec, nil
		case ModalitySkin, ModalityRespiratory:
			return Record{}, fmt.Errorf("%w: %s input must be a JSON feature object", ErrExtractionFailed, modality)
		}
		return Record{}, ValidationError{reason: fmt.Errorf("modality '%s': %w", modality, ErrUnknownModality)}
	}

	var target interface{}
	switch modality {
	case ModalitySkin:
		rec.Image = &ImageFeatures{}
		target = rec.Image
	case ModalityRespiratory:
		rec.Audio = &AudioFeatures{}
		target = rec.Audio
	case ModalityLab:
		rec.Lab = &LabFeatures{}
		target = rec.Lab
	case ModalityChat:
		rec.Text = &TextFeatures{}
		target = rec.Text
	default:
		return Record{}, ValidationError{reason: fmt.Errorf("modality '%s': %w", modality, ErrUnknownModality)}
	}

	if err := json.Unmarshal(trimmed, target); err != nil {
		return Record{}, fmt.Errorf("%w: decode %s features: %v", ErrExtractionFailed, modality, err)
	}
	return rec, nil
}

// FromMap decodes an event payload map, the shape carried on the feature topic.
func FromMap(modality Modality, payload map[string]interface{}) (Record, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Record{}, fmt.Errorf("%w: encode payload: %v", ErrExtractionFailed, err)
	}
	return Decode(modality, data)
}
