package trackmap

import (
	"fmt"
	"regexp"

	"github.com/AIAA2205L02ProjectAmadeus/key-cut/model"
	"github.com/pkg/errors"
)

const UnknownRole = "unknown"

// Rule assigns Role to track names matching Pattern, case-insensitively.
type Rule struct {
	Pattern string `json:"pattern" yaml:"pattern"`
	Role    string `json:"role" yaml:"role"`
}

var DefaultRules = []Rule{
	{Pattern: `piano|grand`, Role: "piano"},
	{Pattern: `guitar`, Role: "guitar"},
	{Pattern: `bass`, Role: "bass"},
	{Pattern: `drum|perc`, Role: "drums"},
	{Pattern: `violin|cello|strings`, Role: "strings"},
	{Pattern: `flute|sax|clarinet`, Role: "winds"},
}

type compiledRule struct {
	re   *regexp.Regexp
	role string
}

// Mapper evaluates its rules in order; the first match wins.
type Mapper struct {
	rules []compiledRule
}

// New compiles rules, falling back to DefaultRules when none are given.
func New(rules []Rule) (*Mapper, error) {
	if len(rules) == 0 {
		rules = DefaultRules
	}
	m := &Mapper{}
	for i, r := range rules {
		re, err := regexp.Compile("(?i)" + r.Pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "Invalid mapping rule %d (%q)", i, r.Pattern)
		}
		m.rules = append(m.rules, compiledRule{re: re, role: r.Role})
	}
	return m, nil
}

func (m *Mapper) Role(name string) string {
	for _, r := range m.rules {
		if r.re.MatchString(name) {
			return r.role
		}
	}
	return UnknownRole
}

func (m *Mapper) MapNames(names []string) map[string]string {
	res := make(map[string]string, len(names))
	for _, name := range names {
		res[name] = m.Role(name)
	}
	return res
}

// MapNames maps every name with rules, or DefaultRules when rules is empty.
func MapNames(names []string, rules []Rule) (map[string]string, error) {
	m, err := New(rules)
	if err != nil {
		return nil, err
	}
	return m.MapNames(names), nil
}

// ProgramRole guesses a role from a General MIDI program number.
func ProgramRole(program int) string {
	switch {
	case program >= 0 && program <= 7:
		return "piano"
	case program >= 24 && program <= 31:
		return "guitar"
	case program >= 32 && program <= 39:
		return "bass"
	case program >= 40 && program <= 47:
		return "strings"
	case program >= 112 && program <= 119:
		return "drums"
	default:
		return UnknownRole
	}
}

// MapPrograms maps each track index to the role of the program carried by the
// first of its notes.
func MapPrograms(notes []model.NoteEvent) map[int]string {
	res := make(map[int]string)
	for _, n := range notes {
		if _, ok := res[n.Track]; ok {
			continue
		}
		res[n.Track] = ProgramRole(n.Program)
	}
	return res
}

// trackNames returns the earliest non-empty name of every track index from 0
// up to the highest one used, with track_<i> for unnamed tracks.
func trackNames(notes []model.NoteEvent) []string {
	seen := make(map[int]string)
	maxTrack := -1
	for _, n := range notes {
		if n.Track > maxTrack {
			maxTrack = n.Track
		}
		if _, ok := seen[n.Track]; !ok && n.TrackName != "" {
			seen[n.Track] = n.TrackName
		}
	}
	res := make([]string, 0, maxTrack+1)
	for i := 0; i <= maxTrack; i++ {
		name, ok := seen[i]
		if !ok {
			name = fmt.Sprintf("track_%d", i)
		}
		res = append(res, name)
	}
	return res
}

// AutoMap maps the track names found in notes to roles, keyed by name.
func (m *Mapper) AutoMap(notes []model.NoteEvent) map[string]string {
	return m.MapNames(trackNames(notes))
}

// TrackRoles keys roles by track index. Tracks whose name matches no rule fall
// back to their program.
func (m *Mapper) TrackRoles(notes []model.NoteEvent) map[int]string {
	byProgram := MapPrograms(notes)
	res := make(map[int]string)
	for i, name := range trackNames(notes) {
		role := m.Role(name)
		if role == UnknownRole {
			if p, ok := byProgram[i]; ok {
				role = p
			}
		}
		res[i] = role
	}
	return res
}
