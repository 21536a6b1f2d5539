package schema

import (
	"sort"

	"payrecon/domain/recon"
	"payrecon/internal/normalize"
)

// Resolve maps every role of synonyms onto a column of normalizedLabels.
// Variants are tried in list order; the first variant matched by any column
// wins, and among columns carrying that variant the leftmost is chosen.
// Roles left without a column are returned in canonical order.
func Resolve(normalizedLabels []string, synonyms recon.RoleSynonyms) (recon.Resolution, []recon.Role) {
	resolution := make(recon.Resolution, len(synonyms))
	var missing []recon.Role

	for _, role := range orderedRoles(synonyms) {
		col, ok := resolveRole(normalizedLabels, synonyms[role])
		if !ok {
			missing = append(missing, role)
			continue
		}
		resolution[role] = col
	}
	return resolution, missing
}

func resolveRole(labels []string, variants []string) (recon.Column, bool) {
	for _, v := range variants {
		v = normalize.Normalize(v)
		if v == "" {
			continue
		}
		for i, label := range labels {
			if label == v {
				return recon.Column{Index: i, Label: label}, true
			}
		}
	}
	return recon.Column{}, false
}

// orderedRoles returns the roles of synonyms, known roles first in
// canonical order and anything else sorted after them.
func orderedRoles(synonyms recon.RoleSynonyms) []recon.Role {
	roles := make([]recon.Role, 0, len(synonyms))
	for _, r := range recon.Roles {
		if _, ok := synonyms[r]; ok {
			roles = append(roles, r)
		}
	}
	var extra []recon.Role
	for r := range synonyms {
		if !r.IsValid() {
			extra = append(extra, r)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(roles, extra...)
}

// RoleNames converts roles to plain strings for reporting
func RoleNames(roles []recon.Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}
