package display

import "os"

// DetectANSISupport determines if ANSI escape sequences can be used.
func DetectANSISupport() bool {
	return NewTerminalInfo().SupportsANSI()
}

// DetectUnicodeSupport determines if Unicode characters can be displayed.
func DetectUnicodeSupport() bool {
	return NewTerminalInfo().SupportsUnicode()
}

// SelectColorPalette returns appropriate colors for the given color mode
// ("auto", "on", "off").
func SelectColorPalette(colorMode string) ColorPalette {
	useColors := false
	switch colorMode {
	case "on":
		useColors = true
	case "off":
		useColors = false
	default: // "auto"
		useColors = DetectANSISupport() && os.Getenv("NO_COLOR") == ""
	}
	if !useColors {
		return AsciiOnlyColorScheme
	}
	return DefaultColorScheme
}

// GetUnicodeCharSet returns appropriate characters based on Unicode support.
func GetUnicodeCharSet() UnicodeCharSet {
	if DetectUnicodeSupport() {
		return UnicodeCharSetFull
	}
	return UnicodeCharSetASCII
}

// ANSICodec wraps text in ANSI color codes, degrading to plain text when
// colors are unsupported or disabled.
type ANSICodec struct {
	colors ColorPalette
	ansi   bool
}

// NewANSICodec creates a codec using auto-detected terminal capabilities.
func NewANSICodec() *ANSICodec {
	return NewANSICodecWithMode("auto")
}

// NewANSICodecWithMode creates a codec honoring an explicit color mode.
func NewANSICodecWithMode(colorMode string) *ANSICodec {
	return &ANSICodec{
		colors: SelectColorPalette(colorMode),
		ansi:   colorMode == "on" || (colorMode != "off" && DetectANSISupport()),
	}
}

func (ac *ANSICodec) colorize(text, code string) string {
	if !ac.ansi || code == "" {
		return text
	}
	return code + text + ac.colors.Reset
}

// Success wraps text in success color (green).
func (ac *ANSICodec) Success(text string) string { return ac.colorize(text, ac.colors.Success) }

// Error wraps text in error color (red).
func (ac *ANSICodec) Error(text string) string { return ac.colorize(text, ac.colors.Error) }

// Warning wraps text in warning color (yellow).
func (ac *ANSICodec) Warning(text string) string { return ac.colorize(text, ac.colors.Warning) }

// Muted wraps text in muted color (gray), used for metadata lines.
func (ac *ANSICodec) Muted(text string) string { return ac.colorize(text, ac.colors.Muted) }

// Primary wraps text in the primary accent color (cyan).
func (ac *ANSICodec) Primary(text string) string { return ac.colorize(text, ac.colors.Primary) }

// Reset returns the ANSI reset code.
func (ac *ANSICodec) Reset() string { return ac.colors.Reset }
