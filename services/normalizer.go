package services

import (
	"maps"
	"strings"

	"co2-report/models"
	"co2-report/utils"
)

// Normalizer rewrites country names onto the canonical vocabulary shared by
// all three sources.
type Normalizer struct {
	aliases map[string]string
	logger  *utils.Logger
}

// NewNormalizer creates a Normalizer over a copy of aliases
// (raw spelling → canonical name).
func NewNormalizer(aliases map[string]string, logger *utils.Logger) *Normalizer {
	return &Normalizer{aliases: maps.Clone(aliases), logger: logger}
}

// Rename replaces name with its alias when the alias table has an exact
// match, and returns it unchanged otherwise.
func (n *Normalizer) Rename(name string) string {
	if v, ok := n.aliases[name]; ok {
		return v
	}
	return name
}

// Canonical returns the join key for name: its alias, uppercased. An
// uppercased name that is itself an alias key is resolved once more, so
// Canonical(Canonical(x)) == Canonical(x) for tables whose values are not keys.
func (n *Normalizer) Canonical(name string) string {
	c := strings.ToUpper(n.Rename(name))
	if v, ok := n.aliases[c]; ok {
		c = strings.ToUpper(v)
	}
	return c
}

// NormalizeLong returns a copy of t with canonical country names.
func (n *Normalizer) NormalizeLong(t models.LongTable) models.LongTable {
	out := t.Clone()
	renamed := 0
	for i := range out.Rows {
		renamed += n.rewrite(&out.Rows[i].Country)
	}
	n.logger.Debug("[normalizer] %d of %d long rows renamed", renamed, len(out.Rows))
	return out
}

// NormalizeWide returns a copy of t with canonical country names.
func (n *Normalizer) NormalizeWide(t models.WideTable) models.WideTable {
	out := t.Clone()
	renamed := 0
	for i := range out.Rows {
		renamed += n.rewrite(&out.Rows[i].Country)
	}
	n.logger.Debug("[normalizer] %d of %d wide rows renamed", renamed, len(out.Rows))
	return out
}

func (n *Normalizer) rewrite(name *string) int {
	_, aliased := n.aliases[*name]
	*name = n.Canonical(*name)
	if aliased {
		return 1
	}
	return 0
}
