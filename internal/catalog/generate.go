package catalog

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Generator renders every subject data file into an HTML fragment under
// TemplatesDir. Outputs are rewritten only when their content changes,
// keeping file mtimes stable for downstream build tools.
type Generator struct {
	DataDir      string
	TemplatesDir string
	Logger       *slog.Logger
}

// Stats summarizes one generator run.
type Stats struct {
	Written   int
	Updated   int
	Unchanged int
	Skipped   int
}

// Run renders all subjects. Invalid data files are skipped with a
// warning; the run fails only on I/O errors.
func (g *Generator) Run() (Stats, error) {
	logger := g.Logger
	if logger == nil {
		logger = slog.Default()
	}

	entries, err := os.ReadDir(g.DataDir)
	if err != nil {
		return Stats{}, fmt.Errorf("catalog: read data dir: %w", err)
	}
	if err := os.MkdirAll(g.TemplatesDir, 0o755); err != nil {
		return Stats{}, fmt.Errorf("catalog: create templates dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var stats Stats
	for _, name := range names {
		code := strings.TrimSuffix(name, ".json")
		subj, err := LoadSubject(filepath.Join(g.DataDir, name))
		if err != nil {
			logger.Warn("skipping invalid subject data", "file", name, "error", err)
			stats.Skipped++
			continue
		}

		content := "<!-- generated from " + filepath.Join(g.DataDir, name) + " -->\n" +
			RenderSubject(code, subj)
		outPath := filepath.Join(g.TemplatesDir, code+".html")

		switch changed, existed, err := writeIfChanged(outPath, []byte(content)); {
		case err != nil:
			return stats, err
		case !changed:
			logger.Debug("template unchanged", "path", outPath)
			stats.Unchanged++
		case existed:
			logger.Info("template updated", "path", outPath)
			stats.Updated++
		default:
			logger.Info("template written", "path", outPath)
			stats.Written++
		}
	}
	return stats, nil
}

// writeIfChanged writes content to path atomically, leaving an existing
// identical file untouched.
func writeIfChanged(path string, content []byte) (changed, existed bool, err error) {
	old, err := os.ReadFile(path)
	switch {
	case err == nil:
		existed = true
		if bytes.Equal(old, content) {
			return false, true, nil
		}
	case !os.IsNotExist(err):
		return false, false, fmt.Errorf("catalog: read %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return false, existed, fmt.Errorf("catalog: temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return false, existed, fmt.Errorf("catalog: write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return false, existed, fmt.Errorf("catalog: close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return false, existed, fmt.Errorf("catalog: replace %s: %w", path, err)
	}
	return true, existed, nil
}
