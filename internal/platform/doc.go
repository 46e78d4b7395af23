package platform

// Package platform contains OS integration glue: filesystem helpers, default
// directories, and opening files or their folders with the system tools.
