package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 100

	// LayoutExtraWideWidth is the threshold for extra-wide layouts.
	LayoutExtraWideWidth = 160
)

// Log display limits.
const (
	// LogLineLimit is the number of trailing log lines shown in the log view.
	LogLineLimit = 2000
)

// Timing constants.
const (
	// DefaultUIInterval is the default UI refresh interval. Notices expire on
	// this granularity.
	DefaultUIInterval = 500 * time.Millisecond
)
