package linelog

import "strings"

// MaxLineLength is the soft limit on the rendered primary line. Lines over
// the limit are emitted anyway; [OverlongLines] counts them so callers can
// enforce the limit themselves.
const MaxLineLength = 240

// timeLayout renders timestamps as YYYY.MMDD.HH:MM:SS.
const timeLayout = "2006.0102.15:04:05"

// String returns the canonical plain-text rendering: the primary line and
// any detail lines joined with newlines. This is the form subscribers
// receive.
func (e *Entry) String() string {
	return strings.Join(e.Lines(false, nil), "\n")
}

// Lines renders e as the primary line followed by one line per detail.
// Rendering is deterministic and side-effect free. When colorize is true,
// each segment of the primary line is wrapped in the ANSI escape codes of
// the scheme selected for e.Level; a nil scheme selects [GruvboxDark].
// Colorization never changes field order or delimiters.
func (e *Entry) Lines(colorize bool, scheme SchemeFunc) []string {
	var sb strings.Builder

	sb.WriteString(e.Timestamp.UTC().Format(timeLayout))
	sb.WriteString("|SSYS=")
	sb.WriteString(e.Subsystem)
	sb.WriteString("|CTRL=")
	sb.WriteString(e.Controller)
	sb.WriteString("|LVL=")
	sb.WriteString(e.Level.String())
	sb.WriteString("|CID=")
	sb.WriteString(e.CID)
	sb.WriteString("|MSG=")
	sb.WriteString(e.Message)

	if len(e.Data) > 0 {
		sb.WriteByte('|')

		for i, pair := range e.Data {
			if i > 0 {
				sb.WriteByte(' ')
			}

			sb.WriteString(pair.Key)
			sb.WriteByte(':')
			sb.WriteString(pair.Value)
		}
	}

	primary := sb.String()

	if colorize {
		if scheme == nil {
			scheme = GruvboxDark
		}

		primary = applyColors(primary, scheme(e.Level))
	}

	lines := make([]string, 0, 1+len(e.Details))
	lines = append(lines, primary)

	for _, d := range e.Details {
		lines = append(lines, "  > "+d)
	}

	return lines
}

// paint wraps s in the SGR escape sequence for code.
func paint(code, s string) string {
	return "\x1b[" + code + "m" + s + "\x1b[0m"
}

// applyColors colorizes each segment of a rendered primary line. Segments
// are identified by their field prefix between '|' separators; the trailing
// data segment is colorized token by token as key:value.
func applyColors(line string, scheme ColorScheme) string {
	var out strings.Builder

	out.Grow(len(line) + 16)

	for i, part := range strings.Split(line, "|") {
		if i > 0 {
			out.WriteByte('|')
		}

		switch {
		case i == 0:
			out.WriteString(paint(scheme.Header, part))
		case strings.HasPrefix(part, "SSYS=") || strings.HasPrefix(part, "CTRL="):
			out.WriteString(paint(scheme.Context, part))
		case strings.HasPrefix(part, "LVL="):
			out.WriteString(paint(scheme.Level, part))
		case strings.HasPrefix(part, "CID="):
			out.WriteString(paint(scheme.CID, part))
		case strings.HasPrefix(part, "MSG="):
			out.WriteString(paint(scheme.Msg, part))
		default:
			for j, token := range strings.Fields(part) {
				if j > 0 {
					out.WriteByte(' ')
				}

				key, value, found := strings.Cut(token, ":")
				if found {
					out.WriteString(paint(scheme.Key, key))
					out.WriteByte(':')
					out.WriteString(paint(scheme.Value, value))
				} else {
					out.WriteString(token)
				}
			}
		}
	}

	return out.String()
}
