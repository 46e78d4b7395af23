package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconFetching = "⬇"
	IconCached   = "●"
	IconDone     = "✓"
	IconError    = "❌"
	IconPending  = "⏳"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
)

// Layout sizing
const (
	StatusLabelWidth float32 = 110
	SizeLabelWidth   float32 = 130

	RowMinWidth  float32 = 360
	RowMinHeight float32 = 64

	TableCellWidth float32 = 96
	SplitOffset            = 0.4
)

// Main window
const (
	WindowWidth  float32 = 1000
	WindowHeight float32 = 640
)

// Notification behavior
const (
	NotificationAutoHide = 5 * time.Second
)

// Settings dialog sizing
const (
	SettingsDialogWidth  float32 = 520
	SettingsDialogHeight float32 = 380
)
