package llm

import (
	"errors"
	"strings"

	"google.golang.org/genai"
)

// ErrRateLimited marks 429/503-class upstream failures. Callers that can
// degrade (trend search) check for it with errors.Is and substitute fallback
// data instead of surfacing the error.
var ErrRateLimited = errors.New("upstream rate limited")

// classify wraps upstream errors into the taxonomy sentinels where one
// applies, and passes everything else through unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == 429 || apiErr.Code == 503 {
			return errors.Join(ErrRateLimited, err)
		}
		return err
	}

	// Some transports surface the status only in the message.
	msg := err.Error()
	if strings.Contains(msg, "429") || strings.Contains(msg, "503") ||
		strings.Contains(strings.ToUpper(msg), "RESOURCE_EXHAUSTED") {
		return errors.Join(ErrRateLimited, err)
	}

	return err
}
