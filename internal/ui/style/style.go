// Package style provides shared colors and icons for consistent terminal
// presentation across the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Colors.
var (
	River  = lipgloss.Color("#0678BE")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
	Circle  = "○"
)
