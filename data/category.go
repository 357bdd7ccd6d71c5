package data

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultExtensions are the image suffixes accepted when none are configured.
var DefaultExtensions = []string{".jpg", ".jpeg", ".png"}

// Category is one class label and the directory holding its images.
type Category struct {
	Name string
	Dir  string
}

// ExtFilter matches file names by suffix, case-insensitively.
type ExtFilter map[string]struct{}

// NewExtFilter normalises suffixes to lower case with a leading dot.
// "JPG", ".jpg" and "jpg" all end up as ".jpg".
func NewExtFilter(exts []string) ExtFilter {
	f := make(ExtFilter, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		f[e] = struct{}{}
	}
	return f
}

func (f ExtFilter) Match(name string) bool {
	_, ok := f[strings.ToLower(filepath.Ext(name))]
	return ok
}

// Enumerate lists the immediate subdirectories of root as categories, sorted by name.
// Hidden directories and any directory in skip (compared by absolute path) are left out,
// so an output tree nested inside the dataset is never picked up as a class.
func Enumerate(root string, skip ...string) ([]Category, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, &NotFoundError{Path: root, Err: err}
	}
	if !info.IsDir() {
		return nil, &NotFoundError{Path: root, Err: fmt.Errorf("not a directory")}
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read dataset root %s: %w", root, err)
	}

	skipped := make(map[string]bool, len(skip))
	for _, s := range skip {
		if abs, err := filepath.Abs(s); err == nil {
			skipped[abs] = true
		}
	}

	var cats []Category
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		dir := filepath.Join(root, e.Name())
		if abs, err := filepath.Abs(dir); err == nil && skipped[abs] {
			continue
		}
		cats = append(cats, Category{Name: e.Name(), Dir: dir})
	}

	sort.Slice(cats, func(i, j int) bool { return cats[i].Name < cats[j].Name })
	return cats, nil
}

// ListImages returns the paths of the files in the category directory accepted by the
// filter, sorted by name. Subdirectories are not descended into.
func ListImages(cat Category, filter ExtFilter) ([]string, error) {
	entries, err := os.ReadDir(cat.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: cat.Dir, Err: err}
		}
		return nil, fmt.Errorf("list category %s: %w", cat.Name, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !filter.Match(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(cat.Dir, e.Name()))
	}
	// os.ReadDir already sorts by file name
	return paths, nil
}
