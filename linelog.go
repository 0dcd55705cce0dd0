package linelog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
)

var (
	globalLevel atomic.Int32
	schemeFn    atomic.Pointer[SchemeFunc]
	overlong    atomic.Uint64

	logStream = NewPublisher()

	outputMu sync.Mutex
	output   io.Writer = os.Stdout
)

func init() {
	globalLevel.Store(int32(LevelInfo))

	fn := SchemeFunc(GruvboxDark)
	schemeFn.Store(&fn)
}

// SetGlobalLevel sets the process-wide minimum level for emission. Entries
// below the threshold are discarded before formatting and broadcast. Safe to
// call concurrently with emission; already-emitted lines are unaffected.
func SetGlobalLevel(level Level) {
	globalLevel.Store(int32(level))
}

// GlobalLevel returns the current process-wide minimum level.
// The default is [LevelInfo].
func GlobalLevel() Level {
	return Level(globalLevel.Load())
}

// SetColorScheme replaces the active color scheme for all subsequent
// renders. A nil fn restores [GruvboxDark]. Safe to call concurrently with
// emission: each emission resolves the scheme once and uses one palette end
// to end.
func SetColorScheme(fn SchemeFunc) {
	if fn == nil {
		fn = GruvboxDark
	}

	schemeFn.Store(&fn)
}

func colorScheme() SchemeFunc {
	return *schemeFn.Load()
}

// SetOutput replaces the destination for printed lines. The default is
// [os.Stdout]. Broadcast delivery is unaffected.
func SetOutput(w io.Writer) {
	outputMu.Lock()
	defer outputMu.Unlock()

	output = w
}

// Subscribe registers a new endpoint on the process-wide line stream and
// returns it. The endpoint receives the canonical rendering of every entry
// accepted by the level gate from then on, one string per receive. Safe to
// call concurrently with emission.
func Subscribe() *Subscription {
	return logStream.Subscribe()
}

// OverlongLines reports how many emitted primary lines have exceeded
// [MaxLineLength] so far.
func OverlongLines() uint64 {
	return overlong.Load()
}

// LogLine finalizes b, applies the global level gate, and on acceptance
// broadcasts the canonical rendering to all subscribers without printing it.
// It returns the canonical string and whether the gate accepted the entry.
// LogLine panics if a required field is missing; use [Builder.Build] to
// observe the error instead.
func LogLine(b *Builder) (string, bool) {
	return broadcast(mustBuild(b))
}

// Print finalizes b, applies the global level gate, and on acceptance writes
// the rendered entry to the configured output in a single write and
// broadcasts the canonical form. The printed form honors the builder's
// [Builder.Colorize] setting; subscribers always receive the plain form. It
// reports whether the entry was emitted, and panics if a required field is
// missing.
func (b *Builder) Print() bool {
	e := mustBuild(b)

	canonical, ok := broadcast(e)
	if !ok {
		return false
	}

	out := canonical
	if b.colorize {
		out = strings.Join(e.Lines(true, colorScheme()), "\n")
	}

	outputMu.Lock()
	defer outputMu.Unlock()

	fmt.Fprintln(output, out)

	return true
}

func mustBuild(b *Builder) *Entry {
	e, err := b.Build()
	if err != nil {
		panic(fmt.Errorf("linelog: %w", err))
	}

	return e
}

// broadcast renders the canonical form once, counts overlong primary lines,
// and fans the string out to all subscribers.
func broadcast(e *Entry) (string, bool) {
	if !e.Level.Enabled(GlobalLevel()) {
		return "", false
	}

	lines := e.Lines(false, nil)
	if len(lines[0]) > MaxLineLength {
		overlong.Add(1)
	}

	canonical := strings.Join(lines, "\n")
	logStream.Publish(canonical)

	return canonical, true
}
