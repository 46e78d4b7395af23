package plot

// Package plot draws line series on a Fyne canvas. Canvas is a widget that
// can be embedded in any container; Panel wraps one in its own window and
// shows it as soon as it is constructed.
