package features

import "errors"

var (
	ErrExtractionFailed = errors.New("feature extraction failed")
	ErrUnknownModality  = errors.New("unknown modality")

	errMissingPayload = errors.New("missing feature payload")
	errNonFinite      = errors.New("non-finite feature value")
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

func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
