package oahttp

import "strings"

// Route patterns use the express-style syntax: named segments start with a colon (":id"), a lone
// "*" matches a single unnamed segment and a lone "**" matches the remainder of the path. The
// same pattern is translated twice: to the OpenAPI parameter syntax for the document, and to the
// standard library's pattern syntax for live route matching.

// ToOpenAPIPath converts an express-style path to its OpenAPI equivalent: ":name" becomes
// "{name}", "*" becomes "{param}" and "**" becomes "{path}". All other segments pass through
// unchanged, so a path that already uses the OpenAPI syntax is returned as-is. A path without a
// leading slash is prefixed with one. The conversion is total: there is no failure mode.
func ToOpenAPIPath(path string) string {
	segs := splitPath(path)
	for i, seg := range segs {
		switch {
		case strings.HasPrefix(seg, ":"):
			segs[i] = "{" + seg[1:] + "}"
		case seg == "*":
			segs[i] = "{param}"
		case seg == "**":
			segs[i] = "{path}"
		}
	}

	return strings.Join(segs, "/")
}

// toStdPath converts an express-style path to the net/http pattern syntax used for live route
// matching. The parameter names line up with [ToOpenAPIPath] so r.PathValue resolves the same
// names the document declares.
func toStdPath(path string) string {
	segs := splitPath(path)
	for i, seg := range segs {
		switch {
		case strings.HasPrefix(seg, ":"):
			segs[i] = "{" + seg[1:] + "}"
		case seg == "*":
			segs[i] = "{param}"
		case seg == "**":
			segs[i] = "{path...}"
		}
	}

	return strings.Join(segs, "/")
}

// pathParamNames returns the parameter names declared in a path, in order of appearance. It
// understands both the express-style and the already-converted OpenAPI syntax.
func pathParamNames(path string) []string {
	var names []string
	for _, seg := range splitPath(path) {
		switch {
		case strings.HasPrefix(seg, ":"):
			names = append(names, seg[1:])
		case seg == "*":
			names = append(names, "param")
		case seg == "**":
			names = append(names, "path")
		case strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}"):
			names = append(names, strings.TrimSuffix(strings.Trim(seg, "{}"), "..."))
		}
	}

	return names
}

func splitPath(path string) []string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return strings.Split(path, "/")
}

// splitMethodPattern splits a route pattern like "GET /users/:id" into its method prefix
// (including the trailing space) and path part. A pattern without a method yields an empty
// method.
func splitMethodPattern(pattern string) (method, path string) {
	if idx := strings.Index(pattern, " "); idx >= 0 {
		return pattern[:idx+1], pattern[idx+1:]
	}

	return "", pattern
}
