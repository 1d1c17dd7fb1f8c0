// Package cli parses command-line arguments into the application's internal
// configuration and owns process-level concerns like usage output and exit
// codes.
package cli
