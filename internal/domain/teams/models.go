package teams

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Team is an SHL club keyed by its feed team code.
type Team struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	City      string `json:"city"`
}

var registry = []Team{
	{Code: "BIF", Name: "Brynäs IF", ShortName: "Brynäs", City: "Gävle"},
	{Code: "DIF", Name: "Djurgården Hockey", ShortName: "Djurgården", City: "Stockholm"},
	{Code: "FBK", Name: "Färjestad BK", ShortName: "Färjestad", City: "Karlstad"},
	{Code: "FHC", Name: "Frölunda HC", ShortName: "Frölunda", City: "Göteborg"},
	{Code: "HV71", Name: "HV71", ShortName: "HV71", City: "Jönköping"},
	{Code: "LHC", Name: "Linköping HC", ShortName: "Linköping", City: "Linköping"},
	{Code: "LHF", Name: "Luleå Hockey", ShortName: "Luleå", City: "Luleå"},
	{Code: "LIF", Name: "Leksands IF", ShortName: "Leksand", City: "Leksand"},
	{Code: "MIF", Name: "Malmö Redhawks", ShortName: "Malmö", City: "Malmö"},
	{Code: "OHK", Name: "Örebro Hockey", ShortName: "Örebro", City: "Örebro"},
	{Code: "RBK", Name: "Rögle BK", ShortName: "Rögle", City: "Ängelholm"},
	{Code: "SAIK", Name: "Skellefteå AIK", ShortName: "Skellefteå", City: "Skellefteå"},
	{Code: "TIK", Name: "Timrå IK", ShortName: "Timrå", City: "Timrå"},
	{Code: "VLH", Name: "Växjö Lakers", ShortName: "Växjö", City: "Växjö"},
}

// All returns every known team.
func All() []Team {
	out := make([]Team, len(registry))
	copy(out, registry)
	return out
}

// ByCode looks a team up by its code (case-insensitive).
func ByCode(code string) (Team, bool) {
	for _, t := range registry {
		if strings.EqualFold(t.Code, code) {
			return t, true
		}
	}
	return Team{}, false
}

// ShortName returns the display name for code, or the code itself when unknown.
func ShortName(code string) string {
	if t, ok := ByCode(code); ok {
		return t.ShortName
	}
	return code
}

// Resolve maps free text ("lulea", "Frölunda HC", "fbk") onto a team.
// Exact code matches win; otherwise the closest fuzzy match across names and cities is used.
func Resolve(query string) (Team, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Team{}, false
	}
	if t, ok := ByCode(query); ok {
		return t, true
	}

	targets := make([]string, 0, len(registry)*3)
	owners := make([]int, 0, len(registry)*3)
	for i, t := range registry {
		for _, candidate := range []string{t.Name, t.ShortName, t.City} {
			targets = append(targets, candidate)
			owners = append(owners, i)
		}
	}

	ranks := fuzzy.RankFindNormalizedFold(query, targets)
	if len(ranks) == 0 {
		return Team{}, false
	}
	sort.Sort(ranks)
	return registry[owners[ranks[0].OriginalIndex]], true
}
