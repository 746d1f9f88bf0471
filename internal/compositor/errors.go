package compositor

import (
	"errors"
	"fmt"
)

var errEmptyPattern = errors.New("pattern image has no pixels")

// InvalidFillError reports a fill specification that could not be
// interpreted (e.g. a malformed hex color). The canvas is left untouched.
type InvalidFillError struct {
	Spec   string
	Reason string
}

func (e *InvalidFillError) Error() string {
	return fmt.Sprintf("invalid fill %q: %s", e.Spec, e.Reason)
}

// PatternLoadError reports a wallpaper asset that failed to load or decode.
// The canvas is left untouched.
type PatternLoadError struct {
	Source string
	Err    error
}

func (e *PatternLoadError) Error() string {
	return fmt.Sprintf("pattern %q failed to load: %v", e.Source, e.Err)
}

func (e *PatternLoadError) Unwrap() error {
	return e.Err
}
