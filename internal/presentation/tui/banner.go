package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner for Itinero.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Teal-to-blue gradient.
	lines := []struct {
		text  string
		color string
	}{
		{"  _ _   _                       ", "#2dd4bf"},
		{" (_) |_(_)_ __   ___ _ __ ___   ", "#22d3ee"},
		{" | | __| | '_ \\ / _ \\ '__/ _ \\  ", "#38bdf8"},
		{" | | |_| | | | |  __/ | | (_) | ", "#60a5fa"},
		{" |_|\\__|_|_| |_|\\___|_|  \\___/  ", "#818cf8"},
	}

	fmt.Println()
	for _, l := range lines {
		fmt.Println(termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Println()
}
