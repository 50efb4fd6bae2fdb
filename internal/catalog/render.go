package catalog

import (
	"net/url"
	"sort"
	"strings"
)

// externalIcon is the inline SVG marking the link to a subject's
// standalone page.
const externalIcon = `<svg width="1em" height="1em" viewBox="0 0 24 30" fill="currentColor" ` +
	`style="vertical-align:middle; margin-left: -0.25em">` +
	`<path class="cls-1" d="m21,12v6c0,1.6543-1.3457,3-3,3H6c-1.6543,0-3-1.3457-3-3V6c0-1.6543,1.3457-3,3-3h6c.55273,0,1,.44775,1,1s-.44727,1-1,1h-6c-.55176,0-1,.44873-1,1v12c0,.55127.44824,1,1,1h12c.55176,0,1-.44873,1-1v-6c0-.55225.44727-1,1-1s1,.44775,1,1Zm-1-9h-4c-.55273,0-1,.44775-1,1s.44727,1,1,1h1.58594l-9.29297,9.29297c-.39062.39062-.39062,1.02344,0,1.41406.19531.19531.45117.29297.70703.29297s.51172-.09766.70703-.29297l9.29297-9.29297v1.58594c0,.55225.44727,1,1,1s1-.44775,1-1v-4c0-.55225-.44727-1-1-1Z"/>` +
	`</svg>`

// esc escapes the characters that break HTML text and double-quoted
// attributes.
func esc(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	return strings.ReplaceAll(s, ">", "&gt;")
}

// queryEscape percent-encodes s with no characters held safe, the
// encoding the viewer expects for its file parameter.
func queryEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// ViewerHref builds the pdf-viewer link for a resource. The viewer takes
// the resource URL in its file parameter and an optional title.
func ViewerHref(resourceURL, title string) string {
	href := "/pdf-viewer/?file=" + queryEscape(resourceURL)
	if title != "" {
		href += "&title=" + queryEscape(title)
	}
	return href
}

// SortFiles orders files by their leading number, breaking ties by
// filename. The sort is stable so equal entries keep data-file order.
func SortFiles(files []File) {
	sort.SliceStable(files, func(i, j int) bool {
		ni, nj := LeadingNumber(files[i].Filename), LeadingNumber(files[j].Filename)
		if ni != nj {
			return ni < nj
		}
		return files[i].Filename < files[j].Filename
	})
}

// RenderSubject renders one subject's collapsible resource tree. The
// fragment is embedded into the portal's index page and the subject's
// own page.
func RenderSubject(code string, subj *Subject) string {
	var b strings.Builder
	line := func(s string) {
		b.WriteString(s)
		b.WriteByte('\n')
	}

	line("<details>")
	line("  <summary>")
	line("    " + esc(DisplayName(code)))
	line(`    <sup><a href="/sem-1/` + esc(code) + `/" style="border-bottom: none;">` + externalIcon + `</a></sup>`)
	line("  </summary>")
	line("  <ul>")

	for _, unit := range subj.Units {
		line("    <li>")
		line("      <details>")
		line("        <summary>Unit-" + esc(string(unit.ID)) + "</summary>")
		line("        <ul>")
		line("          <li>")
		for _, group := range unit.Groups {
			line("            <details>")
			line("              <summary>" + esc(group.Type) + "</summary>")
			line("              <ul>")
			files := make([]File, len(group.Files))
			copy(files, group.Files)
			SortFiles(files)
			for i := range files {
				label := files[i].LinkLabel()
				href := ViewerHref(files[i].URL, label)
				line(`                <li><a href="` + esc(href) + `">` + esc(label) + `</a></li>`)
			}
			line("              </ul>")
			line("            </details>")
		}
		line("          </li>")
		line("        </ul>")
		line("      </details>")
		line("    </li>")
	}

	line("  </ul>")
	line("</details>")
	return b.String()
}
