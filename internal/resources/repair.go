package resources

import (
	"context"
	"log/slog"
	"path"
	"regexp"
	"strings"
)

// uploadBatchPrefix marks the opaque suffix historic filenames carried.
// Everything before it is the human-chosen part of the name.
const uploadBatchPrefix = "UQ25"

// hrefPattern matches double-quoted PDF hrefs in rendered HTML.
var hrefPattern = regexp.MustCompile(`href="([^"]*\.pdf)"`)

// Repairer resolves references to PDFs that were renamed in the store.
type Repairer struct {
	store  Store
	logger *slog.Logger
}

// NewRepairer creates a repairer over store.
func NewRepairer(store Store, logger *slog.Logger) *Repairer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repairer{store: store, logger: logger}
}

// Resolve returns a key that exists in the store for the given
// reference: the key itself when present, otherwise the closest
// replacement in the same directory. ok is false when nothing matches.
func (r *Repairer) Resolve(ctx context.Context, key string) (string, bool, error) {
	key = strings.TrimPrefix(key, "/")
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return "", false, err
	}
	if exists {
		return key, true, nil
	}

	dir := path.Dir(key)
	siblings, err := r.store.List(ctx, dir)
	if err != nil {
		return "", false, err
	}

	base := baseName(path.Base(key))
	if base == "" {
		// Nothing human-readable left of the name; fall back to any PDF
		// in the directory carrying the subject code.
		if subj := subjectOf(key); subj != "" {
			needle := strings.ToUpper(subj)
			for _, info := range siblings {
				name := path.Base(info.Key)
				if strings.HasSuffix(name, ".pdf") && strings.Contains(strings.ToUpper(name), needle) {
					return info.Key, true, nil
				}
			}
		}
		return "", false, nil
	}

	// Prefer a sibling containing the whole base name, then one
	// containing its first segment.
	if match, ok := findContaining(siblings, base); ok {
		return match, true, nil
	}
	if first, _, cut := strings.Cut(base, "_"); cut || first != "" {
		if match, ok := findContaining(siblings, first); ok {
			return match, true, nil
		}
	}
	return "", false, nil
}

// RepairHTML rewrites dead PDF hrefs in content. It returns the
// rewritten content and the number of links updated.
func (r *Repairer) RepairHTML(ctx context.Context, content string) (string, int, error) {
	matches := hrefPattern.FindAllStringSubmatch(content, -1)
	updates := 0
	for _, m := range matches {
		orig := m[1]
		key := strings.TrimPrefix(orig, "/")

		exists, err := r.store.Exists(ctx, key)
		if err != nil {
			return content, updates, err
		}
		if exists {
			continue
		}

		replacement, ok, err := r.Resolve(ctx, key)
		if err != nil {
			return content, updates, err
		}
		if !ok {
			r.logger.Warn("no replacement for dead link", "key", key)
			continue
		}
		r.logger.Info("repairing link", "old", key, "new", replacement)
		content = strings.ReplaceAll(content, `href="`+orig+`"`, `href="/`+replacement+`"`)
		updates++
	}
	return content, updates, nil
}

// baseName strips the opaque upload suffix from a historic filename:
// the underscore-separated parts before the batch marker.
func baseName(filename string) string {
	parts := strings.Split(filename, "_")
	var kept []string
	for _, part := range parts {
		if strings.HasPrefix(part, uploadBatchPrefix) {
			break
		}
		kept = append(kept, part)
	}
	if len(kept) == len(parts) {
		// No marker present; the whole name minus extension is the base.
		return strings.TrimSuffix(filename, path.Ext(filename))
	}
	return strings.Join(kept, "_")
}

// subjectOf guesses the subject code embedded in a key.
func subjectOf(key string) string {
	lower := strings.ToLower(key)
	for _, subj := range []string{"mfca", "ciep", "cfp", "pce", "wd", "mp"} {
		if strings.Contains(lower, subj) {
			return subj
		}
	}
	return ""
}

func findContaining(infos []Info, needle string) (string, bool) {
	if needle == "" {
		return "", false
	}
	for _, info := range infos {
		name := path.Base(info.Key)
		if strings.HasSuffix(name, ".pdf") && strings.Contains(name, needle) {
			return info.Key, true
		}
	}
	return "", false
}
