// internal/importer/errors.go
package importer

import "errors"

var (
	// ErrCopyFailed indicates writing an entry to the output tree failed.
	ErrCopyFailed = errors.New("failed to copy file")

	// ErrDestinationExists indicates the destination file already exists.
	ErrDestinationExists = errors.New("destination file already exists")

	// ErrPathTraversal indicates a path traversal attack was detected.
	ErrPathTraversal = errors.New("path traversal detected")

	// ErrOutputUnwritable indicates the output root cannot be created or written.
	ErrOutputUnwritable = errors.New("output directory not writable")

	// ErrEntryUnreadable indicates an archive entry could not be opened.
	ErrEntryUnreadable = errors.New("archive entry unreadable")

	// ErrInvalidCollisionPolicy indicates an unknown collision policy name.
	ErrInvalidCollisionPolicy = errors.New("invalid collision policy")
)
