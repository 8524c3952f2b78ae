package bookmaker

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// File is the YAML layout accepted by LoadFile.
//
//	unknown_id: 17a7de9a-...
//	bookmakers:
//	  - name: DraftKings
//	    id: fe6bc0f8-...
//	aliases:
//	  - contains: [draftkings, dk]
//	    id: fe6bc0f8-...
type File struct {
	UnknownID  string  `yaml:"unknown_id"`
	Bookmakers []Entry `yaml:"bookmakers"`
	Aliases    []Alias `yaml:"aliases"`
}

// LoadFile builds a resolver from a YAML table. Sections left empty fall back
// to the built-in defaults.
func LoadFile(path string) (*Resolver, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bookmaker table %s: %w", path, err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Resolver, error) {
	var file File
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode bookmaker table: %w", err)
	}

	table := file.Bookmakers
	if len(table) == 0 {
		table = DefaultTable()
	}
	aliases := file.Aliases
	if len(aliases) == 0 {
		aliases = DefaultAliases()
	}
	unknownID := strings.TrimSpace(file.UnknownID)
	if unknownID == "" {
		unknownID = UnknownID
	}

	if err := validateID("unknown_id", unknownID); err != nil {
		return nil, err
	}
	for i, entry := range table {
		if strings.TrimSpace(entry.Name) == "" {
			return nil, fmt.Errorf("bookmakers[%d]: name is required", i)
		}
		if err := validateID(fmt.Sprintf("bookmakers[%d] (%s)", i, entry.Name), entry.ID); err != nil {
			return nil, err
		}
	}
	for i, alias := range aliases {
		if len(alias.Contains) == 0 {
			return nil, fmt.Errorf("aliases[%d]: contains is required", i)
		}
		if err := validateID(fmt.Sprintf("aliases[%d]", i), alias.ID); err != nil {
			return nil, err
		}
	}

	return NewResolver(table, aliases, unknownID), nil
}

func validateID(field, value string) error {
	if _, err := uuid.Parse(strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("%s: invalid identifier %q: %w", field, value, err)
	}
	return nil
}
