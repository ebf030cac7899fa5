package topology

import "fmt"

// ConfigurationError reports a malformed or incomplete endpoint list or
// rank. It is fatal for the process that hits it.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("topology: %s: %v", e.Reason, e.Err)
	}
	return "topology: " + e.Reason
}

func (e *ConfigurationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func configErrorf(format string, args ...any) error {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}
