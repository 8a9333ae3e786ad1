package contracts

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrMissingConfig    = errors.New("required config.yml not found")
	ErrNothingToArchive = errors.New("no matching files to archive")
)

// RejectedUploadError describes a non-200 reply from the config endpoint.
// Message holds the "str" field of a JSON object body; Body holds the raw
// reply when it could not be read as a JSON object.
type RejectedUploadError struct {
	StatusCode int
	Message    string
	Body       string
}

func (this *RejectedUploadError) Error() string {
	if this.Message != "" {
		return fmt.Sprintf("upload rejected with status %d: %s", this.StatusCode, this.Message)
	}
	if this.Body != "" {
		return fmt.Sprintf("upload rejected with status %d: %s", this.StatusCode, this.Body)
	}
	return fmt.Sprintf("upload rejected with status %d (%s)", this.StatusCode, http.StatusText(this.StatusCode))
}

// Details returns the lines reported to the user for this rejection.
func (this *RejectedUploadError) Details() []string {
	lines := []string{fmt.Sprintf("Error status code: %d", this.StatusCode)}
	if this.Message != "" {
		lines = append(lines, this.Message)
	} else if this.Body != "" {
		lines = append(lines, this.Body)
	}
	return lines
}
