package linelog_test

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/linelog"
)

var testTS = time.Date(2025, 12, 5, 10, 15, 30, 0, time.UTC)

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func TestCanonicalLine(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		builder *linelog.Builder
		want    []string
	}{
		"with data pairs": {
			builder: linelog.New("db", "migrator", linelog.LevelInfo, "Migration applied").
				Cid("op12").
				Data("name", "2025-12-01-001-rbac").
				Data("dur_ms", "214"),
			want: []string{
				"2025.1205.10:15:30|SSYS=db|CTRL=migrator|LVL=INFO|CID=op12|MSG=Migration applied|name:2025-12-01-001-rbac dur_ms:214",
			},
		},
		"without data pairs": {
			builder: linelog.New("db", "db_info", linelog.LevelInfo, "Channel line").
				Cid("123"),
			want: []string{
				"2025.1205.10:15:30|SSYS=db|CTRL=db_info|LVL=INFO|CID=123|MSG=Channel line",
			},
		},
		"default cid": {
			builder: linelog.New("net", "dialer", linelog.LevelTrace, "Dial started"),
			want: []string{
				"2025.1205.10:15:30|SSYS=net|CTRL=dialer|LVL=TRACE|CID=-|MSG=Dial started",
			},
		},
		"with details": {
			builder: linelog.New("auth", "jwt", linelog.LevelError, "JWT verify failed").
				Cid("ab7c").
				Data("code", "401").
				Detail("token: eyJhbGciOi...").
				Detail("hint: refresh token"),
			want: []string{
				"2025.1205.10:15:30|SSYS=auth|CTRL=jwt|LVL=ERROR|CID=ab7c|MSG=JWT verify failed|code:401",
				"  > token: eyJhbGciOi...",
				"  > hint: refresh token",
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			e, err := tc.builder.Timestamp(testTS).Build()
			require.NoError(t, err)

			lines := e.Lines(false, nil)
			assert.Equal(t, tc.want, lines)
			assert.Equal(t, strings.Join(tc.want, "\n"), e.String())
			assert.NotContains(t, e.String(), "\x1b", "plain rendering must carry no escape sequences")
		})
	}
}

func TestLinesDeterministic(t *testing.T) {
	t.Parallel()

	e, err := linelog.New("db", "migrator", linelog.LevelWarn, "Retrying").
		Timestamp(testTS).
		Data("attempt", "2").
		Build()
	require.NoError(t, err)

	first := e.Lines(true, linelog.GruvboxDark)
	second := e.Lines(true, linelog.GruvboxDark)
	assert.Equal(t, first, second)
}

func TestColorizedLine(t *testing.T) {
	t.Parallel()

	e, err := linelog.New("db", "migrator", linelog.LevelInfo, "Migration applied").
		Timestamp(testTS).
		Cid("op12").
		Data("dur_ms", "214").
		Build()
	require.NoError(t, err)

	lines := e.Lines(true, nil)
	require.Len(t, lines, 1)
	got := lines[0]

	assert.Contains(t, got, "\x1b[38;5;246m2025.1205.10:15:30\x1b[0m")
	assert.Contains(t, got, "\x1b[38;5;222mSSYS=db\x1b[0m")
	assert.Contains(t, got, "\x1b[38;5;222mCTRL=migrator\x1b[0m")
	assert.Contains(t, got, "\x1b[38;5;142mLVL=INFO\x1b[0m")
	assert.Contains(t, got, "\x1b[38;5;175mCID=op12\x1b[0m")
	assert.Contains(t, got, "\x1b[38;5;223mMSG=Migration applied\x1b[0m")
	assert.Contains(t, got, "\x1b[38;5;208mdur_ms\x1b[0m:\x1b[38;5;223m214\x1b[0m")

	// Color mode only adds escape sequences; stripping them restores the
	// canonical line byte for byte.
	assert.Equal(t, e.String(), ansiRE.ReplaceAllString(got, ""))
}

func TestColorizedUsesGivenScheme(t *testing.T) {
	t.Parallel()

	var gotLevel linelog.Level

	scheme := func(level linelog.Level) linelog.ColorScheme {
		gotLevel = level

		return linelog.ColorScheme{
			Level:   "31",
			Header:  "32",
			Context: "33",
			CID:     "34",
			Msg:     "35",
			Key:     "36",
			Value:   "37",
		}
	}

	e, err := linelog.New("db", "migrator", linelog.LevelWarn, "Retrying").
		Timestamp(testTS).
		Build()
	require.NoError(t, err)

	got := e.Lines(true, scheme)[0]

	assert.Equal(t, linelog.LevelWarn, gotLevel, "scheme should be selected by the entry's level")
	assert.Contains(t, got, "\x1b[31mLVL=WARN\x1b[0m")
	assert.Contains(t, got, "\x1b[32m2025.1205.10:15:30\x1b[0m")
	assert.NotContains(t, got, "38;5;", "default palette must not leak in")
}

func TestColorizedDetailLines(t *testing.T) {
	t.Parallel()

	e, err := linelog.New("auth", "jwt", linelog.LevelError, "JWT verify failed").
		Timestamp(testTS).
		Detail("hint: refresh token").
		Build()
	require.NoError(t, err)

	lines := e.Lines(true, nil)
	require.Len(t, lines, 2)

	assert.Equal(t, "  > hint: refresh token", lines[1], "detail lines are emitted as-is")
}
