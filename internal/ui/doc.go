package ui

// Package ui contains the Fyne-based desktop user interface for the application.
// It wires user interactions to the fetch service, loads fetched or local files
// into tables, and opens plot panels for selected columns. All UI strings are
// localized via Localization.
