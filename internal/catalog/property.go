package catalog

import (
	"slices"

	"github.com/couchcryptid/cryopcm-lab/internal/domain"
	"github.com/couchcryptid/cryopcm-lab/internal/tabular"
)

// Positions of the property-definition columns.
const (
	posPcmID = iota
	posName
	posPropertyType
	posA
	posB
	posC
	posTmin
	posTmax
)

type propertyKey struct {
	pcmID        string
	propertyType string
}

// PropertyCatalog is an ordered, immutable set of property definitions.
type PropertyCatalog struct {
	defs  []domain.PropertyDefinition
	byKey map[propertyKey]int
}

// InvalidDefinition is a definition the evaluator cannot sample.
type InvalidDefinition struct {
	Index      int
	Definition domain.PropertyDefinition
	Err        error
}

// NewPropertyCatalog indexes defs. The first definition for a
// (pcmID, propertyType) pair is authoritative.
func NewPropertyCatalog(defs []domain.PropertyDefinition) *PropertyCatalog {
	c := &PropertyCatalog{
		defs:  slices.Clone(defs),
		byKey: make(map[propertyKey]int, len(defs)),
	}
	for i, d := range c.defs {
		k := propertyKey{d.PcmID, d.PropertyType}
		if _, ok := c.byKey[k]; !ok {
			c.byKey[k] = i
		}
	}
	return c
}

// ParseProperties parses the positional property table.
func ParseProperties(text string) *PropertyCatalog {
	rows := tabular.ParsePositional(text)
	defs := make([]domain.PropertyDefinition, 0, len(rows))
	for _, cells := range rows {
		defs = append(defs, domain.PropertyDefinition{
			PcmID:        tabular.Cell(cells, posPcmID),
			Name:         tabular.Cell(cells, posName),
			PropertyType: tabular.Cell(cells, posPropertyType),
			A:            domain.ParseMeasure(tabular.Cell(cells, posA)),
			B:            domain.ParseMeasure(tabular.Cell(cells, posB)),
			C:            domain.ParseMeasure(tabular.Cell(cells, posC)),
			Tmin:         domain.ParseMeasure(tabular.Cell(cells, posTmin)),
			Tmax:         domain.ParseMeasure(tabular.Cell(cells, posTmax)),
		})
	}
	return NewPropertyCatalog(defs)
}

// All returns a copy of the definitions in source order.
func (c *PropertyCatalog) All() []domain.PropertyDefinition {
	if c == nil {
		return []domain.PropertyDefinition{}
	}
	return append(make([]domain.PropertyDefinition, 0, len(c.defs)), c.defs...)
}

// Len returns the number of definitions.
func (c *PropertyCatalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.defs)
}

// Lookup returns the authoritative definition for the pair.
func (c *PropertyCatalog) Lookup(pcmID, propertyType string) (domain.PropertyDefinition, bool) {
	if c == nil {
		return domain.PropertyDefinition{}, false
	}
	i, ok := c.byKey[propertyKey{pcmID, propertyType}]
	if !ok {
		return domain.PropertyDefinition{}, false
	}
	return c.defs[i], true
}

// Keys returns the distinct PCM ids and property types in first-seen order.
func (c *PropertyCatalog) Keys() (pcmIDs, propertyTypes []string) {
	if c == nil {
		return nil, nil
	}
	return domain.DistinctKeys(c.defs)
}

// Invalid lists definitions that fail validation, in source order.
func (c *PropertyCatalog) Invalid() []InvalidDefinition {
	if c == nil {
		return nil
	}
	var out []InvalidDefinition
	for i, d := range c.defs {
		if err := d.Validate(); err != nil {
			out = append(out, InvalidDefinition{Index: i, Definition: d, Err: err})
		}
	}
	return out
}

// Shadowed lists definitions hidden by an earlier one with the same
// (pcmID, propertyType).
func (c *PropertyCatalog) Shadowed() []domain.PropertyDefinition {
	if c == nil {
		return nil
	}
	var out []domain.PropertyDefinition
	for i, d := range c.defs {
		if c.byKey[propertyKey{d.PcmID, d.PropertyType}] != i {
			out = append(out, d)
		}
	}
	return out
}
