package search

import (
	"slices"
	"strings"
)

// Options is the immutable query a Job runs with.
type Options struct {
	Query      string
	ShowHidden bool
	Globs      []string
}

// ParseGlobs splits the semicolon separated glob field into trimmed,
// non-empty patterns. An empty result means no filter.
func ParseGlobs(text string) []string {
	var globs []string
	for _, part := range strings.Split(text, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		globs = append(globs, part)
	}
	return globs
}

// IsEmpty reports whether there is nothing to search for.
func (o Options) IsEmpty() bool {
	return o.Query == ""
}

// Equal reports whether o and other would produce the same search.
func (o Options) Equal(other Options) bool {
	return o.Query == other.Query &&
		o.ShowHidden == other.ShowHidden &&
		slices.Equal(o.Globs, other.Globs)
}

// Clone returns a copy that shares no memory with o.
func (o Options) Clone() Options {
	o.Globs = slices.Clone(o.Globs)
	return o
}

// BuildArgs returns the search arguments for opts, excluding the executable.
func BuildArgs(opts Options) []string {
	args := []string{"--column", "--color=always"}
	if opts.ShowHidden {
		args = append(args, "--hidden")
	} else {
		args = append(args, "--no-hidden")
	}
	for _, glob := range opts.Globs {
		args = append(args, "--glob", glob)
	}
	return append(args, opts.Query)
}
