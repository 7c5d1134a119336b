package domain

// Window is an inclusive temperature range in kelvin. The zero value is the
// absent window.
type Window struct {
	Min Measure `json:"tmin"`
	Max Measure `json:"tmax"`
}

// NewWindow returns a window over [lo, hi].
func NewWindow(lo, hi float64) Window {
	return Window{Min: Known(lo), Max: Known(hi)}
}

// ParseWindow builds a window from form input. Either bound may be empty or
// garbage; the result is then simply inactive.
func ParseWindow(minText, maxText string) Window {
	return Window{Min: ParseMeasure(minText), Max: ParseMeasure(maxText)}
}

// Active reports whether the window constrains anything: both bounds finite
// and Min <= Max. An inactive window means "no filter entered".
func (w Window) Active() bool {
	if !w.Min.IsFinite() || !w.Max.IsFinite() {
		return false
	}
	lo, _ := w.Min.Float()
	hi, _ := w.Max.Float()
	return lo <= hi
}

// Admits reports whether p melts inside the window and boils strictly above
// its upper bound. Missing or infinite temperatures never pass.
func (w Window) Admits(p PcmRecord) bool {
	if !w.Active() {
		return true
	}
	lo, _ := w.Min.Float()
	hi, _ := w.Max.Float()

	if !p.MeltingPointK.IsFinite() || !p.BoilingPointK.IsFinite() {
		return false
	}
	melting, _ := p.MeltingPointK.Float()
	boiling, _ := p.BoilingPointK.Float()
	if melting < lo || melting > hi {
		return false
	}
	return boiling > hi
}

// FilterResult is the outcome of one filter run.
type FilterResult struct {
	Matches []PcmRecord `json:"matches"`
	Applied bool        `json:"applied"`
	Status  Status      `json:"status"`
}

// Filter returns the records admitted by window in catalog order. The
// returned slice never aliases records.
func Filter(records []PcmRecord, window Window) FilterResult {
	applied := window.Active()
	matches := make([]PcmRecord, 0, len(records))
	for _, p := range records {
		if window.Admits(p) {
			matches = append(matches, p)
		}
	}

	status := Status{Kind: StatusMatches, Count: len(matches)}
	if len(matches) == 0 {
		status = Status{Kind: StatusNoMatches}
	}
	return FilterResult{Matches: matches, Applied: applied, Status: status}
}
