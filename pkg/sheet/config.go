package sheet

// Tolerances holds the tuning knobs for the spatial heuristics. The defaults
// are calibrated for the printed sheet template at standard scan resolution;
// a different DPI needs different values, so nothing in the pipeline reads
// these as literals.
type Tolerances struct {
	// RowYTolerance is the max vertical distance (px) between a text
	// object's center and a row's center for the object to join the row.
	RowYTolerance float64 `mapstructure:"row_y_tolerance" yaml:"row_y_tolerance"`

	// ColumnGroupTolerance is the max horizontal distance (px) between an
	// X observation and a column group's running mean for the observation
	// to join the group.
	ColumnGroupTolerance float64 `mapstructure:"column_group_tolerance" yaml:"column_group_tolerance"`

	// MarkXTolerance is the max horizontal distance (px) between a text
	// object's center and a column's center for the object to count as
	// mark evidence in that column.
	MarkXTolerance float64 `mapstructure:"mark_x_tolerance" yaml:"mark_x_tolerance"`

	// MinColumnObservations is the minimum number of observations, across
	// sample rows, a column group needs to be kept. Groups below this are
	// treated as stray marks, not template columns.
	MinColumnObservations int `mapstructure:"min_column_observations" yaml:"min_column_observations"`

	// SampleRows caps how many leading rows feed column inference. Column
	// positions are a property of the printed template, so a handful of
	// rows is enough.
	SampleRows int `mapstructure:"sample_rows" yaml:"sample_rows"`

	// LowConfidenceThreshold is the confidence below which a short text
	// fragment is read as a filled bubble. A solid fill tends to OCR as
	// low-confidence garbage rather than a clean glyph.
	LowConfidenceThreshold float64 `mapstructure:"low_confidence_threshold" yaml:"low_confidence_threshold"`

	// MaxMarkTextLen is the max fragment length for the low-confidence
	// signal to apply.
	MaxMarkTextLen int `mapstructure:"max_mark_text_len" yaml:"max_mark_text_len"`
}

// DefaultTolerances returns the values the sheet template was tuned with.
func DefaultTolerances() Tolerances {
	return Tolerances{
		RowYTolerance:          15,
		ColumnGroupTolerance:   20,
		MarkXTolerance:         25,
		MinColumnObservations:  2,
		SampleRows:             5,
		LowConfidenceThreshold: 0.5,
		MaxMarkTextLen:         2,
	}
}

// DefaultStatusOptions are the markable statuses printed on the sheet, in
// column order. Statuses are independent of score and of each other.
var DefaultStatusOptions = []string{"Missing", "Absent", "Exempt"}

// DefaultGradingScale matches the printed template's score columns.
var DefaultGradingScale = []string{"10", "8.5", "7.5", "6.5", "5"}

// ScaleConfig is the per-assignment grading configuration: the ordered score
// labels (up to 5) and whether the status columns are printed on the sheet.
type ScaleConfig struct {
	Scale           []string `mapstructure:"scale" yaml:"scale"`
	StatusesEnabled bool     `mapstructure:"statuses_enabled" yaml:"statuses_enabled"`

	// FirstScaleColumn is the index of the first score column in the
	// inferred column list. The printed template puts a row number and the
	// student name before the score cells, so the default is 2.
	FirstScaleColumn int `mapstructure:"first_scale_column" yaml:"first_scale_column"`
}

// DefaultScaleConfig returns the template's stock configuration.
func DefaultScaleConfig() ScaleConfig {
	return ScaleConfig{
		Scale:            DefaultGradingScale,
		StatusesEnabled:  true,
		FirstScaleColumn: 2,
	}
}

// StatusColumnOffset returns the column index of the first status column,
// which sits immediately after the score columns.
func (c ScaleConfig) StatusColumnOffset() int {
	return c.FirstScaleColumn + len(c.Scale)
}
