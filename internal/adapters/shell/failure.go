package shell

import (
	"errors"

	"go.trai.ch/zerr"
)

// ExitCode returns the exit status attached to a failed command anywhere in err's chain.
func ExitCode(err error) (int, bool) {
	v, ok := metadata(err, "exit_code")
	if !ok {
		return 0, false
	}
	code, ok := v.(int)
	return code, ok
}

// Stderr returns the standard error tail attached to a failed command, if any.
func Stderr(err error) string {
	v, _ := metadata(err, "stderr")
	s, _ := v.(string)
	return s
}

func metadata(err error, key string) (any, bool) {
	for err != nil {
		var zErr *zerr.Error
		if !errors.As(err, &zErr) {
			return nil, false
		}
		if v, ok := zErr.Metadata()[key]; ok {
			return v, true
		}
		err = zErr.Unwrap()
	}
	return nil, false
}
