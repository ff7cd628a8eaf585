// Package vault models documents in the host's storage tree and the storage
// primitives the publish pipeline consumes.
//
// Paths are relative to the vault root and always use "/" between segments,
// whatever the platform. All path manipulation goes through Segments and
// JoinSegments rather than string concatenation.
package vault

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/docpublish/internal/common"
)

// Separator is the segment separator of vault paths.
const Separator = "/"

// FileReference points at one document in the vault.
type FileReference struct {
	Path string
	Name string
}

// NewFileReference normalises p and returns a reference to it. Empty and
// "." segments are dropped; ".." is rejected so references never leave the
// vault.
func NewFileReference(p string) (*FileReference, error) {
	segs := Segments(p)
	if len(segs) == 0 {
		return nil, fmt.Errorf("%w: empty path", common.ErrNotFound)
	}
	for _, s := range segs {
		if s == ".." {
			return nil, fmt.Errorf("%w: path %q leaves the vault", common.ErrNotFound, p)
		}
	}
	return &FileReference{Path: JoinSegments(segs), Name: segs[len(segs)-1]}, nil
}

// Segments splits p on Separator, skipping empty and "." segments.
func Segments(p string) []string {
	parts := strings.Split(p, Separator)
	segs := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" || part == "." {
			continue
		}
		segs = append(segs, part)
	}
	return segs
}

// JoinSegments is the inverse of Segments.
func JoinSegments(segs []string) string {
	return strings.Join(segs, Separator)
}

// Segments returns the path segments of f, base name included.
func (f *FileReference) Segments() []string {
	return Segments(f.Path)
}

// ParentSegments returns the directory segments above the base name.
func (f *FileReference) ParentSegments() []string {
	segs := f.Segments()
	if len(segs) == 0 {
		return segs
	}
	return segs[:len(segs)-1]
}

// IsPublished reports whether any segment of the path is the published
// directory.
func (f *FileReference) IsPublished() bool {
	for _, s := range f.Segments() {
		if s == common.PublishedDirName {
			return true
		}
	}
	return false
}

// WithPath returns a copy of f pointing at p.
func (f *FileReference) WithPath(p string) *FileReference {
	segs := Segments(p)
	name := f.Name
	if len(segs) > 0 {
		name = segs[len(segs)-1]
	}
	return &FileReference{Path: JoinSegments(segs), Name: name}
}

func (f *FileReference) String() string {
	return f.Path
}
