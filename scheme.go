package linelog

// ColorScheme holds the ANSI SGR parameter strings used to colorize each
// segment of a rendered primary line. Each value is the parameter portion of
// an escape sequence, e.g. "38;5;142" for a 256-color foreground.
type ColorScheme struct {
	// Level colors the LVL field.
	Level string
	// Header colors the timestamp.
	Header string
	// Context colors the SSYS and CTRL fields.
	Context string
	// CID colors the CID field.
	CID string
	// Msg colors the MSG field.
	Msg string
	// Key colors data pair keys.
	Key string
	// Value colors data pair values.
	Value string
}

// SchemeFunc selects the [ColorScheme] used to render an entry of the given
// level. Install one process-wide with [SetColorScheme].
type SchemeFunc func(Level) ColorScheme

// GruvboxDark is the default [SchemeFunc]: a Gruvbox Dark palette that
// varies the level color per severity and shares the remaining slots.
func GruvboxDark(level Level) ColorScheme {
	scheme := ColorScheme{
		Header:  "38;5;246",
		Context: "38;5;222",
		CID:     "38;5;175",
		Msg:     "38;5;223",
		Key:     "38;5;208",
		Value:   "38;5;223",
	}

	switch level {
	case LevelTrace:
		scheme.Level = "38;5;109"
	case LevelDebug:
		scheme.Level = "38;5;108"
	case LevelInfo:
		scheme.Level = "38;5;142"
	case LevelWarn:
		scheme.Level = "38;5;214"
	case LevelError:
		scheme.Level = "38;5;167"
	}

	return scheme
}
