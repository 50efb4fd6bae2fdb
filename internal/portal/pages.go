package portal

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var pageShell = template.Must(template.New("shell").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <script src="/assets/runtime.js" defer></script>
</head>
<body>
  <header><h1><a href="/">Lectern</a></h1></header>
  <main>
{{range .Fragments}}{{.}}{{end}}
  </main>
</body>
</html>
`))

var viewerPage = template.Must(template.New("viewer").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <style>html, body, iframe { margin: 0; height: 100%; width: 100%; border: 0; }</style>
</head>
<body>
  <iframe src="{{.File}}" title="{{.Title}}"></iframe>
</body>
</html>
`))

type shellData struct {
	Title     string
	Fragments []template.HTML
}

type viewerData struct {
	Title string
	File  string
}

// subjectFragments reads the generated subject fragments, sorted by
// subject code.
func subjectFragments(templatesDir string) ([]template.HTML, error) {
	entries, err := os.ReadDir(templatesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("portal: read templates dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".html") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	fragments := make([]template.HTML, 0, len(names))
	for _, name := range names {
		content, err := os.ReadFile(filepath.Join(templatesDir, name))
		if err != nil {
			return nil, fmt.Errorf("portal: read fragment %s: %w", name, err)
		}
		// Generated by this binary's catalog generator; trusted.
		fragments = append(fragments, template.HTML(content))
	}
	return fragments, nil
}

func renderShell(w io.Writer, title string, fragments []template.HTML) error {
	return pageShell.Execute(w, shellData{Title: title, Fragments: fragments})
}

func renderViewer(w io.Writer, file, title string) error {
	if title == "" {
		title = "Document"
	}
	return viewerPage.Execute(w, viewerData{Title: title, File: file})
}
