package domain

// PcmRecord is one cataloged phase-change material.
type PcmRecord struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Tmin          Measure `json:"tmin"`
	Tmax          Measure `json:"tmax"`
	LatentHeat    Measure `json:"latentHeat"`    // kJ/kg
	MeltingPointK Measure `json:"meltingPointK"` // K
	BoilingPointK Measure `json:"boilingPointK"` // K
	FlashPointK   Measure `json:"flashPointK"`   // K
	Cost          Measure `json:"cost"`          // relative units
	SafetyRating  string  `json:"safetyRating"`
}

// Label is the "<id> — <name>" form used in result lists.
func (p PcmRecord) Label() string {
	return p.ID + " — " + p.Name
}
