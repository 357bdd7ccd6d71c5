package data

import (
	"fmt"
	"io/fs"
)

// NotFoundError is returned when the dataset root or a category directory is missing.
// It aborts the run.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("not found: %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("not found: %s", e.Path)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, fs.ErrNotExist) match a NotFoundError even when the
// path exists but is not a directory.
func (e *NotFoundError) Is(target error) bool { return target == fs.ErrNotExist }

// ImageReadError records a single file that could not be opened, decoded or written.
type ImageReadError struct {
	Path string
	Err  error
}

func (e *ImageReadError) Error() string {
	return fmt.Sprintf("read image %s: %v", e.Path, e.Err)
}

func (e *ImageReadError) Unwrap() error { return e.Err }

// UnsupportedChannelError is raised when an image has neither 1 nor at least 3 channels.
type UnsupportedChannelError struct {
	Path     string
	Channels int
}

func (e *UnsupportedChannelError) Error() string {
	return fmt.Sprintf("unsupported channel count %d in %s", e.Channels, e.Path)
}

// EmptyCategoryError means a category had no usable image to sample from.
type EmptyCategoryError struct {
	Category string
}

func (e *EmptyCategoryError) Error() string {
	return fmt.Sprintf("category %q has no usable images", e.Category)
}

// OutputRootError rejects an output root that would write into the dataset itself.
type OutputRootError struct {
	Path   string
	Reason string
}

func (e *OutputRootError) Error() string {
	return fmt.Sprintf("output root %s: %s", e.Path, e.Reason)
}
