package audio

import "fmt"

// IOError reports a failed read, decode or write of an audio asset.
// Op identifies the operation (decode, encode, probe, write transcript)
// and Path the offending file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
