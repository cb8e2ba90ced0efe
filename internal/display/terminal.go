package display

import (
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// TerminalInfo provides terminal detection and information for jsonremedy's
// plain-text and inspector output.
type TerminalInfo struct {
	capabilities *TerminalCapabilities
}

// NewTerminalInfo creates a new TerminalInfo with detected capabilities.
func NewTerminalInfo() *TerminalInfo {
	return &TerminalInfo{
		capabilities: detectCapabilities(),
	}
}

// IsTTY returns true if output is directed to a terminal.
func (ti *TerminalInfo) IsTTY() bool {
	return ti.capabilities.IsTTY
}

// GetWidth returns the terminal width in columns.
func (ti *TerminalInfo) GetWidth() int {
	return ti.capabilities.Width
}

// SupportsANSI returns true if terminal supports ANSI escape sequences.
func (ti *TerminalInfo) SupportsANSI() bool {
	return ti.capabilities.SupportsANSI
}

// SupportsColor returns true if terminal supports extended colors
// (24-bit or 256-color), as decided by checkColorSupport.
func (ti *TerminalInfo) SupportsColor() bool {
	return ti.capabilities.SupportsColor
}

// SupportsUnicode returns true if terminal supports Unicode characters.
func (ti *TerminalInfo) SupportsUnicode() bool {
	return ti.capabilities.SupportsUnicode
}

// Capabilities returns the full TerminalCapabilities structure.
func (ti *TerminalInfo) Capabilities() *TerminalCapabilities {
	return ti.capabilities
}

// detectCapabilities detects terminal capabilities by checking environment
// variables and TTY status.
func detectCapabilities() *TerminalCapabilities {
	return &TerminalCapabilities{
		IsTTY:           isTerminal(),
		Width:           getTerminalWidth(),
		SupportsANSI:    checkANSISupport(),
		SupportsColor:   checkColorSupport(),
		SupportsUnicode: checkUnicodeSupport(),
	}
}

// isTerminal checks if stdout is connected to a terminal.
// Honors JSONREMEDY_FORCE_TTY=1/0 for testing auto-mode behavior in CI/scripts
// (renamed from the teacher's WAVE_FORCE_TTY, same escape hatch).
func isTerminal() bool {
	if v := os.Getenv("JSONREMEDY_FORCE_TTY"); v != "" {
		return v == "1" || v == "true"
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// getTerminalWidth returns the terminal width, defaulting to 80 if not available.
func getTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		if width > 0 {
			return width
		}
	}
	if widthStr := os.Getenv("COLUMNS"); widthStr != "" {
		if width, err := strconv.Atoi(widthStr); err == nil && width > 0 {
			return width
		}
	}
	return 80
}

// GetTerminalWidth returns the current terminal width. Exported wrapper for
// use by the inspector and cmd/jsonremedy output formatting.
func GetTerminalWidth() int {
	return getTerminalWidth()
}

// checkANSISupport checks if terminal supports ANSI escape sequences.
func checkANSISupport() bool {
	if !isTerminal() {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	term := os.Getenv("TERM")
	return term != "dumb" && term != ""
}

// checkColorSupport checks for extended color support: COLORTERM set to
// truecolor/24bit, a TERM naming 256color or truecolor, or a CI
// environment, on top of basic ANSI support.
func checkColorSupport() bool {
	if !checkANSISupport() {
		return false
	}
	colorterm := os.Getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return true
	}
	term := os.Getenv("TERM")
	if strings.Contains(term, "256color") || strings.Contains(term, "truecolor") {
		return true
	}
	return isCI()
}

// checkUnicodeSupport checks if terminal supports Unicode characters.
func checkUnicodeSupport() bool {
	if os.Getenv("NO_UNICODE") != "" {
		return false
	}
	if strings.Contains(strings.ToUpper(os.Getenv("LANG")), "UTF-8") {
		return true
	}
	if strings.Contains(strings.ToUpper(os.Getenv("LC_ALL")), "UTF-8") {
		return true
	}
	return isTerminal()
}

// isCI checks if running in a CI/CD environment.
func isCI() bool {
	ciVars := []string{
		"CI", "CONTINUOUS_INTEGRATION", "BUILD_ID", "BUILD_NUMBER",
		"RUN_ID", "GITHUB_ACTIONS", "GITLAB_CI", "CIRCLECI", "TRAVIS", "DRONE",
	}
	for _, envVar := range ciVars {
		if os.Getenv(envVar) != "" {
			return true
		}
	}
	return false
}
