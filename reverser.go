package oahttp

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// Reverser keeps track of named route patterns and allows building URLs from them.
type Reverser struct {
	pats map[string]string
}

// NewReverser inits the reverser.
func NewReverser() *Reverser {
	return &Reverser{pats: make(map[string]string)}
}

// Reverse reverses the named pattern into a url, substituting the pattern's parameters with vals
// in order of appearance.
func (r *Reverser) Reverse(name string, vals ...string) (string, error) {
	pat, ok := r.pats[name]
	if !ok {
		return "", errors.Newf("no pattern named: %q, got: %v", name, lo.Keys(r.pats))
	}

	segs := splitPath(pat)
	next := 0
	for i, seg := range segs {
		if !isParamSegment(seg) {
			continue
		}

		if next >= len(vals) {
			return "", errors.Newf("pattern %q needs more than %d value(s)", pat, len(vals))
		}

		segs[i] = vals[next]
		next++
	}

	if next != len(vals) {
		return "", errors.Newf("pattern %q takes %d value(s), got %d", pat, next, len(vals))
	}

	return strings.Join(segs, "/"), nil
}

// Named is a convenience method that panics if naming the pattern fails.
func (r *Reverser) Named(name, pattern string) string {
	pattern, err := r.NamedPattern(name, pattern)
	if err != nil {
		panic("oahttp: " + err.Error())
	}

	return pattern
}

// NamedPattern records the path part of 'pattern' under 'name' while returning the pattern
// unchanged. The pattern may carry a method prefix ("GET /users/:id").
func (r *Reverser) NamedPattern(name, pattern string) (string, error) {
	if _, exists := r.pats[name]; exists {
		return pattern, errors.Newf("pattern with name %q already exists", name)
	}

	_, path := splitMethodPattern(pattern)
	r.pats[name] = path

	return pattern, nil
}

func isParamSegment(seg string) bool {
	return strings.HasPrefix(seg, ":") || seg == "*" || seg == "**"
}
