// Package prompts holds the text generation prompt templates. Templates live
// in embedded JSON files keyed by name and use {{.Field}} placeholders.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

// ResumeFile holds the summary and bullet prompts.
const ResumeFile = "resume.json"

// Keys in ResumeFile.
const (
	KeySummary     = "summary"
	KeySTARBullets = "star-bullets"
)

var placeholderRe = regexp.MustCompile(`\{\{\.(\w+)\}\}`)

var (
	filesMu sync.Mutex
	files   = map[string]map[string]string{}
)

// Get returns the raw template stored under key in filename.
func Get(filename, key string) (string, error) {
	prompts, err := load(filename)
	if err != nil {
		return "", err
	}
	prompt, ok := prompts[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// Render fills the template under key with data. Every placeholder must have
// a value; extra values are ignored.
func Render(filename, key string, data map[string]string) (string, error) {
	tmpl, err := Get(filename, key)
	if err != nil {
		return "", err
	}
	var missing []string
	for _, name := range Placeholders(tmpl) {
		if _, ok := data[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("prompt %s/%s is missing values for %v", filename, key, missing)
	}
	return Format(tmpl, data), nil
}

// Format substitutes {{.Key}} placeholders from data. Placeholders without a
// value are left in place.
func Format(template string, data map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(template, func(m string) string {
		if v, ok := data[placeholderRe.FindStringSubmatch(m)[1]]; ok {
			return v
		}
		return m
	})
}

// Placeholders lists the distinct placeholder names in template, sorted.
func Placeholders(template string) []string {
	seen := map[string]bool{}
	var names []string
	for _, m := range placeholderRe.FindAllStringSubmatch(template, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	sort.Strings(names)
	return names
}

// Keys returns the prompt names in filename, sorted.
func Keys(filename string) ([]string, error) {
	prompts, err := load(filename)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(prompts))
	for k := range prompts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// load parses an embedded file once; files never change after build.
func load(filename string) (map[string]string, error) {
	filesMu.Lock()
	defer filesMu.Unlock()

	if prompts, ok := files[filename]; ok {
		return prompts, nil
	}
	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	var prompts map[string]string
	if err := json.Unmarshal(data, &prompts); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}
	files[filename] = prompts
	return prompts, nil
}
