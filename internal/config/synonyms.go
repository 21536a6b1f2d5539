package config

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"github.com/goccy/go-yaml"

	"payrecon/domain/core"
	"payrecon/domain/recon"
	"payrecon/internal/normalize"
)

//go:embed synonyms.yaml
var defaultSynonymsYAML []byte

// DefaultSynonyms returns the built-in synonym table
func DefaultSynonyms() recon.SynonymMap {
	m, err := ParseSynonyms(defaultSynonymsYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded synonyms.yaml is invalid: %v", err))
	}
	return m
}

// LoadSynonyms reads a synonym table from path, or returns the built-in
// table when path is empty.
func LoadSynonyms(path string) (recon.SynonymMap, error) {
	if path == "" {
		return DefaultSynonyms(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read synonyms file %s: %w", path, err)
	}
	m, err := ParseSynonyms(data)
	if err != nil {
		return nil, fmt.Errorf("synonyms file %s: %w", path, err)
	}
	return m, nil
}

// ParseSynonyms decodes a YAML synonym table, normalizes every variant and
// checks that both sources declare every role with at least one variant.
func ParseSynonyms(data []byte) (recon.SynonymMap, error) {
	var raw map[string]map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidSynonyms, err)
	}

	out := make(recon.SynonymMap, len(raw))
	for sourceName, roles := range raw {
		source := recon.SourceKind(sourceName)
		if source != recon.SourceInvoice && source != recon.SourcePayroll {
			return nil, core.NewSynonymError(sourceName, "unknown source")
		}

		synonyms := make(recon.RoleSynonyms, len(roles))
		for roleName, variants := range roles {
			role := recon.Role(roleName)
			if !role.IsValid() {
				return nil, core.NewSynonymError(sourceName, fmt.Sprintf("unknown role %q", roleName))
			}
			normalized := dedupe(normalize.NormalizeAll(variants))
			if len(normalized) == 0 {
				return nil, core.NewSynonymError(sourceName, fmt.Sprintf("role %q has no variants", roleName))
			}
			synonyms[role] = normalized
		}
		out[source] = synonyms
	}

	for _, source := range []recon.SourceKind{recon.SourceInvoice, recon.SourcePayroll} {
		synonyms, ok := out[source]
		if !ok {
			return nil, core.NewSynonymError(string(source), "source missing")
		}
		var missing []string
		for _, role := range recon.Roles {
			if _, ok := synonyms[role]; !ok {
				missing = append(missing, string(role))
			}
		}
		if len(missing) > 0 {
			sort.Strings(missing)
			return nil, core.NewSynonymError(string(source), fmt.Sprintf("roles missing: %v", missing))
		}
	}
	return out, nil
}

// MarshalSynonyms renders a synonym table as YAML with roles in canonical order
func MarshalSynonyms(m recon.SynonymMap) ([]byte, error) {
	ordered := yaml.MapSlice{}
	for _, source := range []recon.SourceKind{recon.SourceInvoice, recon.SourcePayroll} {
		roles := yaml.MapSlice{}
		for _, role := range recon.Roles {
			if variants, ok := m[source][role]; ok {
				roles = append(roles, yaml.MapItem{Key: string(role), Value: variants})
			}
		}
		ordered = append(ordered, yaml.MapItem{Key: string(source), Value: roles})
	}
	return yaml.MarshalWithOptions(ordered, yaml.Indent(2), yaml.IndentSequence(true))
}

// dedupe drops empty and repeated variants, keeping first occurrences
func dedupe(variants []string) []string {
	seen := make(map[string]bool, len(variants))
	out := make([]string, 0, len(variants))
	for _, v := range variants {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
