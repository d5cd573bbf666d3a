package heatmap

import "MarketHeatmap/internal/model"

// Bucket is one classification range. Min is the inclusive lower bound of
// the range; a nil Min matches any value and terminates the walk. The JSON
// tags define the shape the table is serialized with into the generated
// page, where the embedded script walks the identical list.
type Bucket struct {
	Min        *float64 `json:"min"`
	Background string   `json:"bg"`
	Text       string   `json:"fg"`
	Label      string   `json:"label"`
}

// AbsentBucket is used when a symbol has no usable data.
var AbsentBucket = Bucket{Background: "#9E9E9E", Text: "#FFFFFF", Label: "データなし"}

// buckets is the single threshold table, highest range first. Both the
// server-side render and the in-browser re-render classify against this
// one table, so the two can never disagree.
var buckets = []Bucket{
	{Min: lower(3), Background: "#00873E", Text: "#FFFFFF", Label: "+3%以上"},
	{Min: lower(1), Background: "#4CAF50", Text: "#FFFFFF", Label: "+1~+3%"},
	{Min: lower(0), Background: "#C8E6C9", Text: "#333333", Label: "0~+1%"},
	{Min: lower(-1), Background: "#FFCDD2", Text: "#333333", Label: "-1~0%"},
	{Min: lower(-3), Background: "#F44336", Text: "#FFFFFF", Label: "-3~-1%"},
	{Min: nil, Background: "#B71C1C", Text: "#FFFFFF", Label: "-3%以下"},
}

func lower(v float64) *float64 { return &v }

// Buckets returns the threshold table, highest range first.
func Buckets() []Bucket { return buckets }

// Classify maps a change percentage to its color bucket. Ties go to the
// higher bucket (>= semantics).
func Classify(changePct float64) Bucket {
	for _, b := range buckets {
		if b.Min == nil || changePct >= *b.Min {
			return b
		}
	}
	return buckets[len(buckets)-1]
}

// ClassifyObservation maps an observation to its bucket, covering the
// absent case.
func ClassifyObservation(o model.Observation) Bucket {
	if !o.Valid {
		return AbsentBucket
	}
	return Classify(o.ChangePct)
}
