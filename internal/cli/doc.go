// Package cli holds the cobra command tree for the tabplot binary. With no
// subcommand it starts the desktop window; fetch, table and plot expose the
// same building blocks from a terminal.
package cli
