package constants

import "os"

// PercussionChannel is the zero-based MIDI channel reserved for drums
// (channel 10 in 1-based numbering). Notes on it carry no harmonic
// content and are excluded before analysis.
const PercussionChannel = 9

// DefaultMicrosPerQuarter is the SMF fallback tempo (120 BPM) used when a
// file carries no tempo meta event.
const DefaultMicrosPerQuarter = 500000

// Meter assumed before the first explicit time-signature event.
const (
	DefaultMeterNumerator   = 4
	DefaultMeterDenominator = 4
)

// LowKeyConfidence is the profile-correlation score below which the key
// estimate is surfaced as a low-confidence warning.
const LowKeyConfidence = 0.5

// SidecarExtension is the extension of the generated annotation file,
// placed alongside the source with the same base name.
const SidecarExtension = ".yml"

func GetServeAddr() string {
	addr := os.Getenv("SERVE_ADDR")
	if addr != "" {
		return addr
	}
	return ":8080"
}

func GetMetadataEndpoint() string {
	endpoint := os.Getenv("METADATA_DB_ENDPOINT")
	if endpoint != "" {
		return endpoint
	}
	return "http://localhost:8000"
}

func GetMetadataTable() string {
	table := os.Getenv("METADATA_DB_TABLE")
	if table != "" {
		return table
	}
	return "romannotate-metadata"
}
