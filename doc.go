// Package fstream manages file handles one operation at a time.
//
// A Binding ties a path to a creation policy and is validated once, when it
// is made. A Stream over a binding opens a Session (one handle, one Mode) for
// every operation and closes it before the operation returns:
//
//	s, err := fstream.New("notes.txt", true)
//	if err != nil {
//		return err
//	}
//	if err := s.WriteString("a\nb\n"); err != nil {
//		return err
//	}
//	data, err := s.Read()
//
// Lines, StrippedLines and Chars return a Sequence that keeps its session
// open while it is consumed and closes it at end-of-file, on Close, or when a
// range over Sequence.All stops early.
//
// Failures are *errors.Error values classified as NotFound, IOFailure or
// InvalidOperation; match them with errors.Is against the sentinels in the
// errors subpackage.
//
// The filesystem is pluggable through WithFS: the billy subpackage provides
// native, chrooted and in-memory filesystems, and the minio subpackage maps
// files to objects in an S3-compatible bucket.
package fstream
