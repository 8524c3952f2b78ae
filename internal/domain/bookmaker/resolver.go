package bookmaker

import "strings"

// Alias maps any name containing one of the substrings to ID.
type Alias struct {
	Contains []string `yaml:"contains" json:"contains"`
	ID       string   `yaml:"id" json:"id"`
}

type rule struct {
	match func(name string) bool
	id    string
}

// Resolver maps free-text bookmaker names to stable identifiers.
// Resolve is total: every input yields exactly one identifier.
type Resolver struct {
	exact     map[string]string
	rules     []rule
	unknownID string
	table     []Entry
}

func NewResolver(table []Entry, aliases []Alias, unknownID string) *Resolver {
	if strings.TrimSpace(unknownID) == "" {
		unknownID = UnknownID
	}

	exact := make(map[string]string, len(table))
	kept := make([]Entry, 0, len(table))
	for _, entry := range table {
		key := normalizeName(entry.Name)
		if key == "" || strings.TrimSpace(entry.ID) == "" {
			continue
		}
		if _, dup := exact[key]; dup {
			continue
		}
		exact[key] = entry.ID
		kept = append(kept, entry)
	}

	rules := make([]rule, 0, len(aliases))
	for _, alias := range aliases {
		needles := make([]string, 0, len(alias.Contains))
		for _, needle := range alias.Contains {
			if n := normalizeName(needle); n != "" {
				needles = append(needles, n)
			}
		}
		if len(needles) == 0 || strings.TrimSpace(alias.ID) == "" {
			continue
		}
		rules = append(rules, rule{match: containsAny(needles), id: alias.ID})
	}

	return &Resolver{
		exact:     exact,
		rules:     rules,
		unknownID: unknownID,
		table:     kept,
	}
}

// NewDefaultResolver uses the built-in table and alias rules.
func NewDefaultResolver() *Resolver {
	return NewResolver(DefaultTable(), DefaultAliases(), UnknownID)
}

func (r *Resolver) Resolve(name string) string {
	key := normalizeName(name)
	if key == "" {
		return r.unknownID
	}
	if id, ok := r.exact[key]; ok {
		return id
	}
	for _, rl := range r.rules {
		if rl.match(key) {
			return rl.id
		}
	}
	return r.unknownID
}

func (r *Resolver) UnknownID() string {
	return r.unknownID
}

// Known returns a copy of the exact-match table.
func (r *Resolver) Known() []Entry {
	return append([]Entry(nil), r.table...)
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func containsAny(needles []string) func(string) bool {
	return func(name string) bool {
		for _, needle := range needles {
			if strings.Contains(name, needle) {
				return true
			}
		}
		return false
	}
}
