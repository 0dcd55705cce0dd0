package linelog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

// Color mode strings accepted by the color flag.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

var (
	// ErrInvalidArgument indicates an invalid configuration value.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnknownColorMode indicates an unrecognized color mode string.
	ErrUnknownColorMode = errors.New("unknown color mode")
)

// Flags holds CLI flag names for log configuration, allowing callers to
// customize flag names while keeping sensible defaults via [NewConfig].
type Flags struct {
	Level  string
	Color  string
	Scheme string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags: f,
	}
}

// Config holds CLI flag values for log configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Call [Config.Apply] at startup to install the
// configured level gate and color scheme through the package setters.
type Config struct {
	Level  string
	Color  string
	Scheme string
	Flags  Flags
}

// NewConfig returns a new [Config] with default flag names and zero-value
// fields. Use [Config.RegisterFlags] to add CLI flags, or set values
// directly.
func NewConfig() *Config {
	f := Flags{
		Level:  "log-level",
		Color:  "color",
		Scheme: "color-scheme",
	}

	return f.NewConfig()
}

// RegisterFlags adds logging flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Level, c.Flags.Level, "info",
		fmt.Sprintf("log level, one of: %s", strings.Join(GetAllLevelStrings(), ", ")))
	flags.StringVar(&c.Color, c.Flags.Color, ColorAuto,
		"colorize output, one of: auto, always, never")
	flags.StringVar(&c.Scheme, c.Flags.Scheme, "",
		"YAML palette file overriding the default color scheme")
}

// RegisterCompletions registers shell completions for log flags on cmd.
// The scheme flag keeps default file completion.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Level,
		cobra.FixedCompletions(GetAllLevelStrings(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Level, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.Color,
		cobra.FixedCompletions([]string{ColorAuto, ColorAlways, ColorNever},
			cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Color, err)
	}

	return nil
}

// Apply validates the configured values and installs them through the
// package setters: [SetGlobalLevel] for the level, and [SetColorScheme] for
// the palette when a scheme file is configured.
func (c *Config) Apply() error {
	lvl, err := ParseLevel(c.Level)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	if _, err := c.ColorEnabled(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	if c.Scheme != "" {
		data, err := os.ReadFile(c.Scheme)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
		}

		fn, err := ParseScheme(data)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
		}

		SetColorScheme(fn)
	}

	SetGlobalLevel(lvl)

	return nil
}

// ColorEnabled resolves the configured color mode to a per-entry colorize
// setting. In auto mode (the default) it reports whether stdout is a
// terminal.
func (c *Config) ColorEnabled() (bool, error) {
	switch c.Color {
	case ColorAlways:
		return true, nil
	case ColorNever:
		return false, nil
	case ColorAuto, "":
		return term.IsTerminal(int(os.Stdout.Fd())), nil
	}

	return false, fmt.Errorf("%w: %q", ErrUnknownColorMode, c.Color)
}
