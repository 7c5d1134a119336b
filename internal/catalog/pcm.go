// Package catalog holds the loaded PCM and property-definition tables.
// Catalogs are read-only; a reload builds a new catalog and swaps it in.
package catalog

import (
	"slices"

	"github.com/couchcryptid/cryopcm-lab/internal/domain"
	"github.com/couchcryptid/cryopcm-lab/internal/tabular"
)

// Column names of the PCM table.
const (
	ColID            = "id"
	ColName          = "name"
	ColTmin          = "tmin"
	ColTmax          = "tmax"
	ColLatentHeat    = "latentHeat"
	ColMeltingPointK = "meltingPointK"
	ColBoilingPointK = "boilingPointK"
	ColFlashPointK   = "flashPointK"
	ColCost          = "cost"
	ColSafetyRating  = "safetyRating"
)

// PcmSchema lists the numeric PCM columns; everything else is text.
var PcmSchema = tabular.Schema{
	ColTmin:          tabular.Numeric,
	ColTmax:          tabular.Numeric,
	ColLatentHeat:    tabular.Numeric,
	ColMeltingPointK: tabular.Numeric,
	ColBoilingPointK: tabular.Numeric,
	ColFlashPointK:   tabular.Numeric,
	ColCost:          tabular.Numeric,
}

// PcmCatalog is an ordered, immutable set of PCM records.
type PcmCatalog struct {
	records []domain.PcmRecord
	byID    map[string]int
}

// NewPcmCatalog indexes records. With duplicate ids the last record wins
// lookups; All still returns every record.
func NewPcmCatalog(records []domain.PcmRecord) *PcmCatalog {
	c := &PcmCatalog{
		records: slices.Clone(records),
		byID:    make(map[string]int, len(records)),
	}
	for i, r := range c.records {
		c.byID[r.ID] = i
	}
	return c
}

// ParsePcms parses the header-driven PCM table.
func ParsePcms(text string) *PcmCatalog {
	rows := tabular.Parse(text, PcmSchema)
	records := make([]domain.PcmRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, domain.PcmRecord{
			ID:            row.Text(ColID),
			Name:          row.Text(ColName),
			Tmin:          row.Measure(ColTmin),
			Tmax:          row.Measure(ColTmax),
			LatentHeat:    row.Measure(ColLatentHeat),
			MeltingPointK: row.Measure(ColMeltingPointK),
			BoilingPointK: row.Measure(ColBoilingPointK),
			FlashPointK:   row.Measure(ColFlashPointK),
			Cost:          row.Measure(ColCost),
			SafetyRating:  row.Text(ColSafetyRating),
		})
	}
	return NewPcmCatalog(records)
}

// All returns a copy of the records in source order.
func (c *PcmCatalog) All() []domain.PcmRecord {
	if c == nil {
		return []domain.PcmRecord{}
	}
	return append(make([]domain.PcmRecord, 0, len(c.records)), c.records...)
}

// Len returns the number of records, duplicates included.
func (c *PcmCatalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.records)
}

// Lookup finds a record by id.
func (c *PcmCatalog) Lookup(id string) (domain.PcmRecord, bool) {
	if c == nil {
		return domain.PcmRecord{}, false
	}
	i, ok := c.byID[id]
	if !ok {
		return domain.PcmRecord{}, false
	}
	return c.records[i], true
}

// DuplicateIDs returns ids that occur more than once, in first-seen order.
func (c *PcmCatalog) DuplicateIDs() []string {
	if c == nil {
		return nil
	}
	counts := make(map[string]int, len(c.records))
	var dups []string
	for _, r := range c.records {
		counts[r.ID]++
		if counts[r.ID] == 2 {
			dups = append(dups, r.ID)
		}
	}
	return dups
}
