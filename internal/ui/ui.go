// Package ui holds the terminal colour printers used by the CLI.
package ui

import (
	"fmt"

	"github.com/fatih/color"
)

// Printers
var (
	Brand  = color.New(color.FgHiMagenta, color.Bold)
	Subtle = color.New(color.FgHiBlack)
	Warn   = color.New(color.FgYellow)
	Info   = color.New(color.FgCyan)
	Good   = color.New(color.FgGreen)
	Bad    = color.New(color.FgRed)
)

// Banner prints the program name with a subtitle
func Banner(subtitle string) {
	fmt.Printf("%s %s\n\n", Brand.Sprint("particles"), Subtle.Sprint(subtitle))
}

// KeyValue prints an aligned "key  value" line
func KeyValue(key string, value any) {
	fmt.Printf("  %s %v\n", Info.Sprintf("%-12s", key), value)
}

// StatusIcon returns a check or a cross
func StatusIcon(ok bool) string {
	if ok {
		return Good.Sprint("✓")
	}
	return Bad.Sprint("✗")
}
