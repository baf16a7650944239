package paths

import (
	"strings"

	"github.com/dotsync/dotsync/pkg/errors"
)

// MaxPathLength is the common filesystem limit on path length.
const MaxPathLength = 4096

// ValidateSpec checks a source or destination specifier from a mapping file.
// It rejects empty specifiers, null bytes and excessive length.
func ValidateSpec(spec string) error {
	if spec == "" {
		return errors.New(errors.ErrInvalidInput, "path cannot be empty")
	}

	if strings.Contains(spec, "\x00") {
		return errors.New(errors.ErrInvalidInput, "path contains null bytes")
	}

	if len(spec) > MaxPathLength {
		return errors.New(errors.ErrInvalidInput, "path exceeds maximum length")
	}

	return nil
}
