// Package catalog models the course-resource data files and renders
// them into the HTML fragments the portal embeds per subject.
//
// Each subject is one JSON file: units contain groups (notes, question
// papers, lab material), groups contain files pointing at stored PDFs.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Subject is the decoded form of one data/<code>.json file.
type Subject struct {
	Units []Unit `json:"units"`
}

// Unit is one teaching unit of a subject.
type Unit struct {
	ID     UnitID  `json:"unit"`
	Groups []Group `json:"groups"`
}

// Group is a typed collection of files within a unit.
type Group struct {
	Type  string `json:"type"`
	Files []File `json:"files"`
}

// File is one resource entry. Several historical fields carry the link
// text; LinkLabel resolves them in precedence order.
type File struct {
	Filename  string `json:"filename"`
	LinkText  string `json:"linkText,omitempty"`
	LinkTitle string `json:"linkTitle,omitempty"`
	Title     string `json:"title,omitempty"`
	URL       string `json:"url,omitempty"`
}

// LinkLabel returns the display text for the file's link.
func (f *File) LinkLabel() string {
	switch {
	case f.LinkText != "":
		return f.LinkText
	case f.LinkTitle != "":
		return f.LinkTitle
	case f.Title != "":
		return f.Title
	default:
		return f.Filename
	}
}

// UnitID tolerates both string and numeric unit identifiers, both of
// which occur in the data files.
type UnitID string

// UnmarshalJSON implements json.Unmarshaler.
func (u *UnitID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*u = UnitID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*u = UnitID(n.String())
		return nil
	}
	return fmt.Errorf("catalog: unit id %s is neither string nor number", data)
}

// ParseSubject decodes a subject data file.
func ParseSubject(data []byte) (*Subject, error) {
	var s Subject
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("catalog: parse subject: %w", err)
	}
	return &s, nil
}

// LoadSubject reads and decodes one data file.
func LoadSubject(path string) (*Subject, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read subject: %w", err)
	}
	return ParseSubject(data)
}

// displayNames maps subject codes to their full names. Unknown codes
// fall back to a title-cased form of the code.
var displayNames = map[string]string{
	"wd":   "Web Design",
	"pce":  "Professional Communication and Ethics",
	"cfp":  "Computational Foundation with Python",
	"mfca": "Mathematical Foundation for Computer Applications",
	"ciep": "Constitutional Law, Intellectual Property, Ethics",
	"mp":   "Macro Programming",
}

// DisplayName returns the human-readable name for a subject code.
func DisplayName(code string) string {
	if name, ok := displayNames[code]; ok {
		return name
	}
	words := strings.Split(strings.ReplaceAll(code, "-", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// SubjectCodes returns the known subject codes.
func SubjectCodes() []string {
	codes := make([]string, 0, len(displayNames))
	for code := range displayNames {
		codes = append(codes, code)
	}
	return codes
}

// unsortable pushes files without any digit in their name after every
// numbered file.
const unsortable = 1_000_000_000

// LeadingNumber extracts the ordering number from a filename: a leading
// number wins, otherwise the first number anywhere, otherwise the file
// sorts last.
func LeadingNumber(filename string) int {
	if filename == "" {
		return unsortable
	}

	i := 0
	for i < len(filename) && (filename[i] == ' ' || filename[i] == '\t') {
		i++
	}
	start := i
	for i < len(filename) && filename[i] >= '0' && filename[i] <= '9' {
		i++
	}
	if i > start {
		digits := strings.TrimLeft(filename[start:i], "0")
		if digits == "" {
			return 0
		}
		n, err := strconv.Atoi(digits)
		if err != nil {
			return unsortable
		}
		return n
	}

	// No leading number; fall back to the first digit run anywhere.
	for j := start; j < len(filename); j++ {
		if filename[j] >= '0' && filename[j] <= '9' {
			k := j
			for k < len(filename) && filename[k] >= '0' && filename[k] <= '9' {
				k++
			}
			if n, err := strconv.Atoi(filename[j:k]); err == nil {
				return n
			}
			return unsortable
		}
	}
	return unsortable
}
