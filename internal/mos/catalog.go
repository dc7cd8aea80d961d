package mos

import (
	"sort"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// DefaultSearchLimit is used when Search is called with a non-positive limit.
	DefaultSearchLimit = 10
	// MinQueryLength is the shortest query Search will run.
	MinQueryLength = 2
)

// Catalog is an immutable index over MOS entries. It is built once and is
// safe for concurrent readers.
type Catalog struct {
	entries []*types.MOSEntry
	byCode  map[string]*types.MOSEntry
	byKey   map[string]*types.MOSEntry
}

// New indexes entries in the order given. When several rows share a code the
// last one wins for Get; every row stays searchable and reachable by key.
func New(entries []types.MOSEntry) *Catalog {
	c := &Catalog{
		entries: make([]*types.MOSEntry, 0, len(entries)),
		byCode:  make(map[string]*types.MOSEntry, len(entries)),
		byKey:   make(map[string]*types.MOSEntry, len(entries)),
	}
	for i := range entries {
		e := entries[i]
		e.Code = strings.ToUpper(strings.TrimSpace(e.Code))
		if e.Code == "" {
			continue
		}
		entry := &e
		c.entries = append(c.entries, entry)
		c.byCode[e.Code] = entry
		if e.LookupKey != "" {
			c.byKey[e.LookupKey] = entry
		}
	}
	return c
}

// Empty returns a catalog with no entries.
func Empty() *Catalog {
	return New(nil)
}

// Len returns the number of indexed rows.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Get looks up an entry by code, ignoring case.
func (c *Catalog) Get(code string) (*types.MOSEntry, bool) {
	e, ok := c.byCode[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return nil, false
	}
	return clone(e), true
}

// Require is Get for callers that need a match.
func (c *Catalog) Require(code string) (*types.MOSEntry, error) {
	e, ok := c.Get(code)
	if !ok {
		return nil, &NotFoundError{Code: code}
	}
	return e, nil
}

// GetByKey looks up an entry by its composite "branch|code" key.
func (c *Catalog) GetByKey(key string) (*types.MOSEntry, bool) {
	e, ok := c.byKey[strings.TrimSpace(key)]
	if !ok {
		return nil, false
	}
	return clone(e), true
}

// SkillsFor returns the civilian skills for a code, or nil when unknown.
func (c *Catalog) SkillsFor(code string) []string {
	e, ok := c.Get(code)
	if !ok {
		return nil
	}
	return e.CivilianSkills
}

// Codes returns every distinct code in ascending order.
func (c *Catalog) Codes() []string {
	codes := make([]string, 0, len(c.byCode))
	for code := range c.byCode {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// ByBranch returns the entries of one branch, matched case-insensitively, in load order.
func (c *Catalog) ByBranch(branch string) []types.MOSEntry {
	var out []types.MOSEntry
	for _, e := range c.entries {
		if strings.EqualFold(string(e.Branch), branch) {
			out = append(out, *clone(e))
		}
	}
	return out
}

// Search returns up to limit entries whose code, titles, civilian fields,
// skills or keywords contain query, case-insensitively. Queries shorter than
// MinQueryLength return nothing. Exact code matches rank first, then entries
// whose military title contains the query, then ascending code.
func (c *Catalog) Search(query string, limit int) []types.MOSEntry {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < MinQueryLength {
		return nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	q := strings.ToLower(query)
	upper := strings.ToUpper(query)

	var matches []*types.MOSEntry
	for _, e := range c.entries {
		if matchesQuery(e, q) {
			matches = append(matches, e)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if ra, rb := rank(a.Code == upper), rank(b.Code == upper); ra != rb {
			return ra < rb
		}
		ta := strings.Contains(strings.ToLower(a.Title), q)
		tb := strings.Contains(strings.ToLower(b.Title), q)
		if ra, rb := rank(ta), rank(tb); ra != rb {
			return ra < rb
		}
		return a.Code < b.Code
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]types.MOSEntry, 0, len(matches))
	for _, e := range matches {
		out = append(out, *clone(e))
	}
	return out
}

func rank(hit bool) int {
	if hit {
		return 0
	}
	return 1
}

func matchesQuery(e *types.MOSEntry, q string) bool {
	fields := []string{e.Code, e.Title, e.CivilianEquivalent, e.SOCTitle, e.ONETOccupation}
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	for _, list := range [][]string{e.CivilianSkills, e.Keywords} {
		for _, s := range list {
			if strings.Contains(strings.ToLower(s), q) {
				return true
			}
		}
	}
	return false
}

// clone copies an entry so callers cannot mutate the index.
func clone(e *types.MOSEntry) *types.MOSEntry {
	c := *e
	c.CivilianSkills = append([]string(nil), e.CivilianSkills...)
	c.Keywords = append([]string(nil), e.Keywords...)
	if e.YearsOfService != nil {
		y := *e.YearsOfService
		c.YearsOfService = &y
	}
	return &c
}

// Match finds the catalog row for a profile's MOS. The dataset key wins, then
// a row with the same code and branch, then any row with the code.
func (c *Catalog) Match(m types.MOSEntry) (*types.MOSEntry, bool) {
	if m.LookupKey != "" {
		if e, ok := c.GetByKey(m.LookupKey); ok {
			return e, true
		}
	}
	code := strings.ToUpper(strings.TrimSpace(m.Code))
	if m.Branch != "" {
		for _, e := range c.entries {
			if e.Code == code && strings.EqualFold(string(e.Branch), string(m.Branch)) {
				return clone(e), true
			}
		}
	}
	return c.Get(code)
}

// Complete fills the empty descriptive fields of m from its catalog row and
// reports whether a row was found. Values already on m are kept.
func (c *Catalog) Complete(m *types.MOSEntry) bool {
	if m == nil || m.Code == "" {
		return false
	}
	e, ok := c.Match(*m)
	if !ok {
		return false
	}

	fill := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
		}
	}
	fill(&m.Title, e.Title)
	fill(&m.BranchCode, e.BranchCode)
	fill(&m.PersonnelCategory, e.PersonnelCategory)
	fill(&m.CivilianEquivalent, e.CivilianEquivalent)
	fill(&m.SOCCode, e.SOCCode)
	fill(&m.SOCCodeTitle, e.SOCCodeTitle)
	fill(&m.SOCTitle, e.SOCTitle)
	fill(&m.ONETCode, e.ONETCode)
	fill(&m.ONETOccupation, e.ONETOccupation)
	fill(&m.LookupKey, e.LookupKey)
	if len(m.CivilianSkills) == 0 {
		m.CivilianSkills = e.CivilianSkills
	}
	if len(m.Keywords) == 0 {
		m.Keywords = e.Keywords
	}
	return true
}
