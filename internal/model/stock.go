package model

// StockRef identifies one tracked stock from the roster.
type StockRef struct {
	Code   string // provider symbol, e.g. "7203.T"
	Name   string
	Sector string
}

// Observation is the resolved price state for one symbol. Price and
// ChangePct are only meaningful when Valid is true; a symbol with fewer
// than two usable closes in the fetch window stays invalid and renders
// as N/A.
type Observation struct {
	Code      string
	Price     float64
	ChangePct float64
	Valid     bool
}
