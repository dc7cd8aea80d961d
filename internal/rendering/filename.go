package rendering

import (
	"regexp"
	"strings"
	"time"
)

// Extension is the file extension of rendered documents.
const Extension = ".docx"

const timestampLayout = "20060102_150405"

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// SanitizeName lowercases name and collapses every run of other characters
// into a single underscore, trimming underscores at either end.
func SanitizeName(name string) string {
	s := nonAlphanumeric.ReplaceAllString(strings.ToLower(name), "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return "unnamed"
	}
	return s
}

// Filename returns resume_<sanitized name>_<YYYYMMDD_HHMMSS>.docx for the
// given name and generation time.
func Filename(fullName string, at time.Time) string {
	return "resume_" + SanitizeName(fullName) + "_" + at.Format(timestampLayout) + Extension
}

// EnsureExtension appends .docx to name unless it already ends with it.
func EnsureExtension(name string) string {
	if strings.HasSuffix(strings.ToLower(name), Extension) {
		return name
	}
	return name + Extension
}
