package junction

// ReportMetadata describes the lab order a result set belongs to.
type ReportMetadata struct {
	Patient      string `json:"patient"`
	Age          int    `json:"age"`
	DateReported string `json:"date_reported"`
}

// BiomarkerResult is a single analyte result within a lab report.
// Value is left untyped because Vital reports both numeric and qualitative
// results (e.g. "positive").
type BiomarkerResult struct {
	Name            string `json:"name"`
	Value           any    `json:"value"`
	Unit            string `json:"unit"`
	MinRangeValue   any    `json:"min_range_value"`
	MaxRangeValue   any    `json:"max_range_value"`
	IsAboveMaxRange bool   `json:"is_above_max_range"`
	IsBelowMinRange bool   `json:"is_below_min_range"`
}

// LabResultsReport is the full result set for one lab order.
type LabResultsReport struct {
	Metadata ReportMetadata    `json:"metadata"`
	Results  []BiomarkerResult `json:"results"`
}
