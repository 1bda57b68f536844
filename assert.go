package bemtest

import (
	"fmt"
	"strings"
)

// Assertion phase. Each method appends a deferred check against the sandbox; the
// first unmet expectation short-circuits the remaining chain.

// ProducesFile defers an existence check and names the path for a following
// WithContent call.
func (s *Session) ProducesFile(path string) *Session {
	s.guard()
	s.lastNamed = path
	s.enqueue("exists "+path, func() error {
		if err := s.materialize(nil); err != nil {
			return err
		}
		if !s.fs.Exists(path) {
			return &AssertionError{Path: path, Expected: "file to exist", Actual: "absent"}
		}
		return nil
	})
	return s
}

// WithContent defers a content-equality check against the most recently named file.
// Multiple arguments are joined with newlines; no trailing newline is added beyond
// what is given. The comparison is exact, against the file's raw content.
func (s *Session) WithContent(lines ...string) *Session {
	s.guard()
	path := s.lastNamed
	expected := strings.Join(lines, "\n")
	s.enqueue("content "+path, func() error {
		if err := s.materialize(nil); err != nil {
			return err
		}
		content, err := s.fs.Read(path)
		if err != nil {
			return err
		}
		if string(content) != expected {
			return &AssertionError{Path: path, Expected: fmt.Sprintf("%q", expected), Actual: fmt.Sprintf("%q", string(content))}
		}
		return nil
	})
	return s
}

// WritesToFile defers a check that the file was modified strictly after the most
// recent action started.
func (s *Session) WritesToFile(path string) *Session {
	s.guard()
	s.enqueue("writes "+path, func() error {
		if err := s.materialize(nil); err != nil {
			return err
		}
		mtime, err := s.fs.LastModified(path)
		if err != nil {
			return err
		}
		if !mtime.After(s.startTime) {
			return &AssertionError{
				Path:     path,
				Expected: fmt.Sprintf("modified after %s", s.startTime.Format("15:04:05.000000")),
				Actual:   fmt.Sprintf("modified at %s", mtime.Format("15:04:05.000000")),
			}
		}
		return nil
	})
	return s
}

// NotWritesToFile defers the negative form: the file's timestamp must be at or
// before the most recent action's start. The comparison is non-strict so identical
// timestamps never report a phantom write.
func (s *Session) NotWritesToFile(path string) *Session {
	s.guard()
	s.enqueue("not-writes "+path, func() error {
		if err := s.materialize(nil); err != nil {
			return err
		}
		mtime, err := s.fs.LastModified(path)
		if err != nil {
			return err
		}
		if mtime.After(s.startTime) {
			return &AssertionError{
				Path:     path,
				Expected: fmt.Sprintf("not modified after %s", s.startTime.Format("15:04:05.000000")),
				Actual:   fmt.Sprintf("modified at %s", mtime.Format("15:04:05.000000")),
			}
		}
		return nil
	})
	return s
}
