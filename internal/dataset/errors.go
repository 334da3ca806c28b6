package dataset

import (
	"errors"
	"fmt"
)

// ConfigError reports a dataset whose metadata or tables violate the schema:
// a Restricted ordering scope with no grouping columns, or multiple rows for
// a property or ID that must be unique. These are fatal; the dataset needs
// fixing, not retrying.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return "dataset configuration: " + e.Message
}

// IsConfigError reports whether err is a ConfigError.
// Uses errors.As to handle wrapped errors.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

func configErrorf(format string, args ...any) *ConfigError {
	return &ConfigError{Message: fmt.Sprintf(format, args...)}
}
