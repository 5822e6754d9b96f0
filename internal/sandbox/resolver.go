package sandbox

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// Location is a verified absolute path inside the base directory. Locations
// are only produced by Resolver.Resolve, so holding one proves the path
// passed the containment check. A Location is a per-request value; its target
// may not exist yet.
type Location struct {
	abs string
	rel string
}

// Abs returns the absolute on-disk path.
func (l Location) Abs() string { return l.abs }

// Rel returns the path relative to the base directory, using forward-slash
// separators and no leading slash. The base directory itself is "".
func (l Location) Rel() string { return l.rel }

// Name returns the final path component.
func (l Location) Name() string { return filepath.Base(l.abs) }

// child returns the location of a direct child entry. The parent is already
// verified, so joining a single ReadDir name cannot escape.
func (l Location) child(name string) Location {
	return Location{
		abs: filepath.Join(l.abs, name),
		rel: path.Join(l.rel, name),
	}
}

// Resolver maps untrusted path strings to locations inside a single base
// directory. The base is fixed at construction and never changes.
type Resolver struct {
	root string
}

// NewResolver creates a resolver for the given base directory. The base is
// canonicalized (symlinks resolved) so the containment check compares
// against the real on-disk location. A missing base is tolerated here; the
// health probe reports it.
func NewResolver(root string) (*Resolver, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	canon, err := filepath.EvalSymlinks(abs)
	if err != nil {
		canon = filepath.Clean(abs)
	}
	return &Resolver{root: canon}, nil
}

// Root returns the canonicalized base directory.
func (r *Resolver) Root() string { return r.root }

// Resolve maps a raw client-supplied path to a verified Location.
//
// The input may be relative, percent-encoded, empty, contain ".." segments,
// or reference symlinks. Resolution: decode once, strip one leading
// separator, join onto the base, canonicalize, then verify the result is the
// base or a descendant of it. The descendant check walks path components via
// filepath.Rel rather than comparing string prefixes, so a sibling like
// /data-evil never passes for a base of /data.
//
// Targets that do not exist yet resolve successfully (required for write and
// create-directory requests); see canonicalize for how symlinks in existing
// ancestors are still honored.
func (r *Resolver) Resolve(raw string) (Location, error) {
	decoded := raw
	// Decode exactly once. Undecodable input (stray %) is used as-is, the
	// same leniency as urllib's unquote.
	if d, err := url.PathUnescape(raw); err == nil {
		decoded = d
	}

	// Inputs are relative to the base; a leading separator must not select
	// the OS root.
	trimmed := strings.TrimPrefix(decoded, "/")

	// Join cleans "." segments, repeated and trailing separators.
	joined := filepath.Join(r.root, filepath.FromSlash(trimmed))
	candidate := r.canonicalize(joined)

	rel, err := filepath.Rel(r.root, candidate)
	if err != nil || escapes(rel) {
		return Location{}, invalidPath(raw)
	}
	if rel == "." {
		rel = ""
	}
	return Location{abs: candidate, rel: filepath.ToSlash(rel)}, nil
}

// canonicalize resolves symlinks in p as far as its existing ancestors
// allow, then appends the non-existent remainder syntactically. Resolution
// must not fail merely because the target does not exist yet, but a symlink
// in any existing ancestor still has to be followed before the containment
// check, or it could smuggle the result outside the base.
func (r *Resolver) canonicalize(p string) string {
	if resolved, err := filepath.EvalSymlinks(p); err == nil {
		return resolved
	}
	var rest []string
	dir := p
	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		rest = append([]string{filepath.Base(dir)}, rest...)
		dir = parent
		if resolved, err := filepath.EvalSymlinks(dir); err == nil {
			return filepath.Join(append([]string{resolved}, rest...)...)
		}
	}
	return filepath.Clean(p)
}

// escapes reports whether a relative path climbs out of the base.
func escapes(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
