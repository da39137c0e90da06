package chunker

import (
	"errors"
	"fmt"
)

// ConfigurationError reports chunking parameters that cannot produce a valid
// segmentation. It is returned before any chunk is produced.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid chunking config: %s %s", e.Field, e.Reason)
}

// IsConfigurationError checks whether an error is a ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}
