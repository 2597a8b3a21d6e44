// Package filemeta extracts course, semester and Pre/Post tokens from
// survey export filenames. The tokens feed output naming and logging
// only; they never alter table contents.
package filemeta

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Metadata holds the tokens recognized in an export filename. Any field
// may be empty when the filename does not carry it.
type Metadata struct {
	CourseName string // 4-digit course code, e.g. "1501"
	Semester   string // normalized short form, e.g. "sp2024", "fa2024", "su2025"
	PrePost    string // "Pre" or "Post"
}

// DefaultOutputName is used when no course code can be derived.
const DefaultOutputName = "cleaned_master_data.csv"

var (
	courseRe   = regexp.MustCompile(`\b(\d{4})\b`)
	semesterRe = regexp.MustCompile(`(?i)\b(sp|fa|su|spring|fall|summer)\s*(\d{4})\b`)
	prePostRe  = regexp.MustCompile(`(?i)\b(pre|post)\b`)
)

// Extract parses the tokens out of an export filename such as
// "EMCS+Group+-+1501+-+Section+3+-+sp2024+-+Post_June+13,+2025_06.14.csv".
// Qualtrics joins words with '+', '-' and '_', so those are treated as
// separators.
func Extract(filename string) Metadata {
	base := filepath.Base(filename)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	normalized := strings.NewReplacer("+", " ", "-", " ", "_", " ").Replace(base)

	var m Metadata

	if match := courseRe.FindStringSubmatch(normalized); match != nil {
		m.CourseName = match[1]
	}

	if match := semesterRe.FindStringSubmatch(normalized); match != nil {
		term := strings.ToLower(match[1])
		year := match[2]
		switch {
		case strings.HasPrefix(term, "sp"):
			m.Semester = "sp" + year
		case strings.HasPrefix(term, "fa"):
			m.Semester = "fa" + year
		case strings.HasPrefix(term, "su"):
			m.Semester = "su" + year
		}
	}

	if match := prePostRe.FindStringSubmatch(normalized); match != nil {
		switch strings.ToLower(match[1]) {
		case "pre":
			m.PrePost = "Pre"
		case "post":
			m.PrePost = "Post"
		}
	}

	return m
}

// OutputName derives the download filename for a cleaned export. A course
// code gives "<course>_cleaned.csv"; otherwise the fixed master name is
// used.
func OutputName(m Metadata) string {
	if m.CourseName == "" {
		return DefaultOutputName
	}
	return fmt.Sprintf("%s_cleaned.csv", m.CourseName)
}
