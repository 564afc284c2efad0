package model

// Diagnostic codes for recoverable conditions surfaced in the document.
const (
	DiagAnomalousEvent   = "anomalous_event"
	DiagLowConfidenceKey = "low_confidence_key"
	DiagEmptyMeasure     = "empty_measure"
	DiagUncommonMeter    = "uncommon_meter"
	DiagMetadataLookup   = "metadata_lookup"
)

// Diagnostic is a recoverable anomaly recorded during analysis. Fatal
// conditions are returned as errors instead, never as diagnostics.
type Diagnostic struct {
	Code    string
	Message string
}

// SourceMetadata is optional catalog information about the source file.
type SourceMetadata struct {
	Artist  string
	Title   string
	Release string
	Year    uint
}

// SidecarDocument is the sole persisted artifact of an analysis run.
// Meter is set when the signature is constant across the piece; otherwise
// Meters carries one entry per measure and Meter is nil.
type SidecarDocument struct {
	SourceFilename string
	Key            KeyResult
	Meter          *Meter
	Meters         []Meter
	Measures       []MeasureHarmony
	Metadata       *SourceMetadata
	Diagnostics    []Diagnostic
}
