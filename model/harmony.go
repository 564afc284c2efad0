package model

// NoHarmony is emitted for a segment with no active pitched notes.
const NoHarmony = "N.C."

// HalfSplitSeparator joins the two numerals of a split measure.
const HalfSplitSeparator = "|"

// Quality of the triad a numeral stands for.
type Quality uint8

const (
	QualityNone Quality = iota
	QualityMajor
	QualityMinor
	QualityDiminished
	QualityAugmented
)

// Half says which part of the measure a label covers.
type Half uint8

const (
	WholeMeasure Half = iota
	FirstHalf
	SecondHalf
)

// HarmonyLabel is one Roman-numeral annotation. Numeral is fully rendered:
// case carries major/minor quality, a trailing marker carries
// diminished (°) or augmented (+).
type HarmonyLabel struct {
	Numeral   string
	Quality   Quality
	AppliesTo Half
}

// MeasureHarmony holds the one or two labels of a measure. Two labels mean
// the harmony changed at the half-bar.
type MeasureHarmony struct {
	Index  int
	Labels []HarmonyLabel
}

// Token renders the measure as a single sidecar entry, joining split
// halves with the separator.
func (mh MeasureHarmony) Token() string {
	switch len(mh.Labels) {
	case 0:
		return NoHarmony
	case 1:
		return mh.Labels[0].Numeral
	default:
		return mh.Labels[0].Numeral + HalfSplitSeparator + mh.Labels[1].Numeral
	}
}
