package model

import "time"

// Close is one daily closing price for a symbol.
type Close struct {
	Time  time.Time
	Price float64
}
