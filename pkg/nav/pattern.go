package nav

import "strings"

// Params holds the named parameter values extracted from a matched path.
type Params map[string]string

// segmentKind classifies one segment of a compiled pattern.
type segmentKind uint8

const (
	segLiteral  segmentKind = iota // exact text match
	segParam                       // one non-empty path segment, bound to a name
	segWildcard                    // remainder of the path, final segment only
)

// segment is one typed element of a compiled pattern.
type segment struct {
	kind segmentKind
	// value is the literal text for segLiteral and the parameter name for
	// segParam. Unused for segWildcard.
	value string
}

// Matcher is the compiled form of a route pattern. It is built once at
// registration time and never recomputed.
type Matcher struct {
	pattern  string
	segments []segment
	wildcard bool
}

// Compile parses a declarative path pattern into a Matcher.
//
// A pattern is decomposed by "/" separators. Each segment is a literal,
// a named parameter (":name", matching exactly one non-empty segment), or
// a trailing wildcard ("*", matching one or more further segments and not
// itself a capture). Duplicate parameter names are rejected with
// ErrDuplicateParam rather than letting a later occurrence silently win.
//
// No trailing-slash normalization is performed: "/a" and "/a/" are
// distinct patterns.
func Compile(pattern string) (*Matcher, error) {
	if !strings.HasPrefix(pattern, "/") {
		return nil, &PatternError{Pattern: pattern, Err: ErrPatternSyntax}
	}

	raw := strings.Split(pattern, "/")
	m := &Matcher{pattern: pattern}
	seen := make(map[string]struct{})

	for i, seg := range raw {
		switch {
		case seg == "*":
			if i != len(raw)-1 {
				return nil, &PatternError{Pattern: pattern, Err: ErrPatternSyntax}
			}
			m.wildcard = true

		case strings.HasPrefix(seg, ":"):
			name := seg[1:]
			if name == "" {
				return nil, &PatternError{Pattern: pattern, Err: ErrPatternSyntax}
			}
			if _, dup := seen[name]; dup {
				return nil, &PatternError{Pattern: pattern, Err: ErrDuplicateParam}
			}
			seen[name] = struct{}{}
			m.segments = append(m.segments, segment{kind: segParam, value: name})

		default:
			m.segments = append(m.segments, segment{kind: segLiteral, value: seg})
		}
	}

	return m, nil
}

// MustCompile is like Compile but panics on error. Intended for
// package-level route tables built from constant patterns.
func MustCompile(pattern string) *Matcher {
	m, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return m
}

// Pattern returns the pattern string the matcher was compiled from.
func (m *Matcher) Pattern() string {
	return m.pattern
}

// Match tests a concrete path (no query string) against the pattern.
// On success it returns the captured parameter values keyed by their
// declared names; on failure it returns (nil, false).
//
// A named parameter matches exactly one non-empty segment. The wildcard
// consumes the remainder of the path and requires at least one further
// segment: "/files/*" matches "/files/a/b/c" and "/files/" (empty
// remainder segment) but not "/files".
func (m *Matcher) Match(path string) (Params, bool) {
	// A query string means the caller forgot to strip the location;
	// never let a param or wildcard capture it.
	if strings.ContainsRune(path, '?') {
		return nil, false
	}
	segs := strings.Split(path, "/")

	if m.wildcard {
		// The fixed prefix plus at least one remainder segment.
		if len(segs) < len(m.segments)+1 {
			return nil, false
		}
	} else if len(segs) != len(m.segments) {
		return nil, false
	}

	var params Params
	for i, want := range m.segments {
		got := segs[i]
		switch want.kind {
		case segLiteral:
			if got != want.value {
				return nil, false
			}
		case segParam:
			if got == "" {
				return nil, false
			}
			if params == nil {
				params = make(Params)
			}
			params[want.value] = got
		}
	}

	if params == nil {
		params = make(Params)
	}
	return params, true
}

// splitLocation separates a location into its path and query portions.
// The query string never participates in matching.
func splitLocation(location string) (pathname, query string) {
	pathname, query, _ = strings.Cut(location, "?")
	return pathname, query
}
