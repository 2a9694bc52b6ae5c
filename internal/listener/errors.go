package listener

import "fmt"

// ConfigurationError reports a configured folder path that does not resolve
// to a directory. Fatal to that scan call only.
type ConfigurationError struct {
	Path string
	Err  error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("listener folder %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("listener folder %s is not a directory", e.Path)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// LoadError reports a per-file loading, evaluation or field-extraction
// failure. Logged and skipped, never fatal to the process.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// AuthError reports a rejected credential or unavailable transport during
// login. Carries the underlying cause so callers can branch on kind.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// DispatchError reports a command callback failure. Logged and swallowed;
// message processing ends silently for that message.
type DispatchError struct {
	Command string
	Err     error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("command %s: %v", e.Command, e.Err)
}

func (e *DispatchError) Unwrap() error { return e.Err }
