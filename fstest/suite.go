// Package fstest provides a conformance test suite for validating that a
// core.FS backend supports fstream sessions: every access mode behaves like
// its os.OpenFile flags, eager operations round-trip content, and lazy
// sequences release their handles.
//
// Example usage:
//
//	func TestMyProvider(t *testing.T) {
//	    fstest.TestSuite(t, func(t *testing.T) (core.FS, string) {
//	        return myprovider.New(), "/"
//	    })
//	}
package fstest

import (
	"path/filepath"
	"testing"

	"github.com/input-output-hk/catalyst-forge-libs/fstream"
	"github.com/input-output-hk/catalyst-forge-libs/fstream/core"
)

// NewFSFunc returns a fresh, empty filesystem and the directory on it that
// tests may create files in.
type NewFSFunc func(t *testing.T) (core.FS, string)

// TestSuite runs all conformance tests against a filesystem.
// Tests will create and modify files, so each invocation should start clean.
func TestSuite(t *testing.T, newFS NewFSFunc) {
	TestSuiteWithSkip(t, newFS, nil)
}

// TestSuiteWithSkip runs conformance tests with optional test skipping.
// The skipTests parameter is a slice of test names to skip (e.g., "Modes").
// This is useful for providers with known behavioral differences from the standard contract.
func TestSuiteWithSkip(t *testing.T, newFS NewFSFunc, skipTests []string) {
	// Helper to check if a test should be skipped
	shouldSkip := func(testName string) bool {
		for _, skip := range skipTests {
			if skip == testName {
				return true
			}
		}
		return false
	}

	suites := []struct {
		name string
		run  func(t *testing.T, fsys *TrackingFS, root string)
	}{
		{"Bind", TestBind},
		{"Modes", TestModes},
		{"Eager", TestEager},
		{"Sequences", TestSequences},
		{"Sessions", TestSessions},
	}

	for _, s := range suites {
		t.Run(s.name, func(t *testing.T) {
			if shouldSkip(s.name) {
				t.Skip("Skipped by provider configuration")
				return
			}
			fsys, root := newFS(t)
			tracked := Track(fsys)
			s.run(t, tracked, root)
			if n := tracked.OpenHandles(); n != 0 {
				t.Errorf("%s: %d handle(s) left open", s.name, n)
			}
		})
	}
}

// newStream binds name under root, creating it, and fails the test on error.
func newStream(t *testing.T, fsys core.FS, root, name string) *fstream.Stream {
	t.Helper()
	s, err := fstream.New(filepath.Join(root, name), true, fstream.WithFS(fsys))
	if err != nil {
		t.Fatalf("New(%q): got error %v, want nil", name, err)
	}
	return s
}

// mustWrite replaces the content of s and fails the test on error.
func mustWrite(t *testing.T, s *fstream.Stream, content string) {
	t.Helper()
	if err := s.WriteString(content); err != nil {
		t.Fatalf("WriteString(%q): got error %v, want nil", content, err)
	}
}

// mustRead returns the content of s and fails the test on error.
func mustRead(t *testing.T, s *fstream.Stream) string {
	t.Helper()
	data, err := s.Read()
	if err != nil {
		t.Fatalf("Read(): got error %v, want nil", err)
	}
	return string(data)
}
