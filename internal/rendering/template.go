package rendering

import (
	"sort"
	"strings"

	"github.com/jonathan/resume-builder/internal/docx"
)

// DefaultTemplate is used when no template name is given.
const DefaultTemplate = "classic"

// Template holds the fonts, sizes and page geometry of one layout.
// All sizes are in points.
type Template struct {
	Name        string
	Font        string
	NameSize    float64
	HeadingSize float64
	TitleSize   float64
	BodySize    float64
	Page        docx.PageSetup
	// LeftColumn is the share of the usable width given to the content column
	// of two-column tables.
	LeftColumn float64
}

var templates = map[string]Template{
	"classic": {
		Name:        "classic",
		Font:        "Calibri Light",
		NameSize:    16,
		HeadingSize: 11,
		TitleSize:   11,
		BodySize:    10,
		Page:        docx.LetterPage(0.5, 0.5, 0.7, 0.7),
		LeftColumn:  0.75,
	},
	"compact": {
		Name:        "compact",
		Font:        "Calibri Light",
		NameSize:    14,
		HeadingSize: 10.5,
		TitleSize:   10.5,
		BodySize:    9.5,
		Page:        docx.LetterPage(0.4, 0.4, 0.5, 0.5),
		LeftColumn:  0.78,
	},
}

// LookupTemplate returns the named template. The empty name and "default"
// select DefaultTemplate; matching ignores case.
func LookupTemplate(name string) (Template, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || key == "default" {
		key = DefaultTemplate
	}
	t, ok := templates[key]
	if !ok {
		return Template{}, &TemplateError{Name: name, Available: Templates()}
	}
	return t, nil
}

// Templates lists the available template names in sorted order.
func Templates() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// columns splits the usable page width into content and date columns.
func (t Template) columns() []docx.Twips {
	usable := t.Page.UsableWidth()
	left := docx.Twips(float64(usable)*t.LeftColumn + 0.5)
	return []docx.Twips{left, usable - left}
}
