package mos

import (
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// Canonical column names.
const (
	colBranchCode        = "branch_code"
	colPersonnelCategory = "personnel_category"
	colCode              = "code"
	colTitleMilitary     = "title_military"
	colSOCCode           = "soc_code"
	colSOCCodeTitle      = "soc_code_title"
	colSOCTitle          = "soc_title"
	colONETCode          = "onet_code"
	colONETOccupation    = "onet_occupation"
	colLookupKey         = "csv_lookup_key"
)

// columnAliases maps each canonical column to the header spellings seen in
// published datasets. Matching is case-insensitive after trimming.
var columnAliases = map[string][]string{
	colBranchCode:        {"branch_code", "Branch Code"},
	colPersonnelCategory: {"personnel_category", "Personnel Category"},
	colCode:              {"code", "Code", "MOS_CODE"},
	colTitleMilitary:     {"title_military", "Title Military", "title"},
	colSOCCode:           {"soc_code", "SOC Code"},
	colSOCCodeTitle:      {"soc_code_title", "SOC Code Title"},
	colSOCTitle:          {"soc_title", "SOC Title"},
	colONETCode:          {"onet_code", "O*NET Code", "ONET Code"},
	colONETOccupation:    {"onet_occupation", "O*NET Occupation", "ONET Occupation"},
	colLookupKey:         {"csv_lookup_key", "CSV Lookup Key"},
}

// branchCodes maps dataset branch tokens to service branches. V rows are Navy.
var branchCodes = map[string]types.Branch{
	"A":           types.BranchArmy,
	"ARMY":        types.BranchArmy,
	"N":           types.BranchNavy,
	"NAVY":        types.BranchNavy,
	"V":           types.BranchNavy,
	"AF":          types.BranchAirForce,
	"AIR FORCE":   types.BranchAirForce,
	"M":           types.BranchMarines,
	"MARINES":     types.BranchMarines,
	"CG":          types.BranchCoastGuard,
	"COAST GUARD": types.BranchCoastGuard,
	"SF":          types.BranchSpaceForce,
	"SPACE FORCE": types.BranchSpaceForce,
}

// columnIndex maps canonical column names to positions in a header row.
type columnIndex map[string]int

// indexHeader resolves header cells to canonical columns. Unknown columns are ignored.
func indexHeader(header []string) columnIndex {
	lookup := make(map[string]string)
	for canonical, aliases := range columnAliases {
		for _, a := range aliases {
			lookup[strings.ToLower(a)] = canonical
		}
	}

	idx := make(columnIndex)
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if canonical, ok := lookup[h]; ok {
			if _, seen := idx[canonical]; !seen {
				idx[canonical] = i
			}
		}
	}
	return idx
}

// get returns the trimmed cell for a canonical column, or "" when absent.
func (c columnIndex) get(row []string, column string) string {
	i, ok := c[column]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// deriveBranch resolves the branch from the lookup key prefix, then the branch
// code. Unrecognised tokens are kept verbatim.
func deriveBranch(lookupKey, branchCode string) types.Branch {
	if prefix, _, ok := strings.Cut(lookupKey, "|"); ok && strings.TrimSpace(prefix) != "" {
		return mapBranchToken(strings.TrimSpace(prefix))
	}
	if branchCode != "" {
		return mapBranchToken(branchCode)
	}
	return types.BranchUnknown
}

func mapBranchToken(token string) types.Branch {
	if b, ok := branchCodes[strings.ToUpper(token)]; ok {
		return b
	}
	return types.Branch(token)
}

// entryFromRow converts one data row. ok is false for rows without a code.
func entryFromRow(cols columnIndex, row []string) (types.MOSEntry, bool) {
	code := strings.ToUpper(cols.get(row, colCode))
	if code == "" {
		return types.MOSEntry{}, false
	}

	lookupKey := cols.get(row, colLookupKey)
	branchCode := cols.get(row, colBranchCode)
	title := cols.get(row, colTitleMilitary)
	socTitle := cols.get(row, colSOCTitle)
	onetOccupation := cols.get(row, colONETOccupation)

	civilian := socTitle
	if civilian == "" {
		civilian = onetOccupation
	}

	return types.MOSEntry{
		Code:               code,
		Branch:             deriveBranch(lookupKey, branchCode),
		BranchCode:         branchCode,
		PersonnelCategory:  cols.get(row, colPersonnelCategory),
		Title:              title,
		CivilianSkills:     splitSkills(civilian),
		CivilianEquivalent: civilian,
		SOCCode:            cols.get(row, colSOCCode),
		SOCCodeTitle:       cols.get(row, colSOCCodeTitle),
		SOCTitle:           socTitle,
		ONETCode:           cols.get(row, colONETCode),
		ONETOccupation:     onetOccupation,
		LookupKey:          lookupKey,
		Keywords:           titleKeywords(title),
	}, true
}

func splitSkills(title string) []string {
	var skills []string
	for _, s := range strings.Split(title, ",") {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

// titleKeywords keeps the words of a military title longer than three characters.
func titleKeywords(title string) []string {
	var words []string
	for _, w := range strings.Fields(title) {
		if len([]rune(w)) > 3 {
			words = append(words, w)
		}
	}
	return words
}
