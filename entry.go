package linelog

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// ErrMissingField indicates a [Builder] was finalized without a subsystem,
// controller, or message. This is a programming error in the embedding code,
// not a runtime condition.
var ErrMissingField = errors.New("missing required field")

// Pair is one key:value data pair on an [Entry]. Pairs are rendered in
// insertion order and keys are not deduplicated.
type Pair struct {
	Key   string
	Value string
}

// Entry is one finalized log record. Entries are immutable once built;
// construct them with [New] or [Msg] and finalize with [Builder.Build].
type Entry struct {
	Timestamp  time.Time
	Subsystem  string
	Controller string
	CID        string
	Message    string
	Data       []Pair
	Details    []string
	Level      Level
}

// Builder assembles an [Entry] through chained setter calls. Setters may be
// called in any order; finalization requires subsystem, controller, and
// message to be set.
type Builder struct {
	timestamp  time.Time
	subsystem  string
	controller string
	cid        string
	msg        string
	data       []Pair
	details    []string
	level      Level
	colorize   bool
}

// New creates a [Builder] with all four required fields up front. The
// correlation id defaults to "-" and colorized printing is enabled.
func New(subsystem, controller string, level Level, msg string) *Builder {
	return &Builder{
		subsystem:  subsystem,
		controller: controller,
		level:      level,
		cid:        "-",
		msg:        msg,
		colorize:   true,
	}
}

// Msg creates a [Builder] from the message alone, at [LevelInfo]. Subsystem
// and controller must be supplied via [Builder.Ssys] and [Builder.Ctrl]
// before finalization.
func Msg(msg string) *Builder {
	return New("", "", LevelInfo, msg)
}

// Ssys sets the subsystem.
func (b *Builder) Ssys(subsystem string) *Builder {
	b.subsystem = subsystem
	return b
}

// Ctrl sets the controller.
func (b *Builder) Ctrl(controller string) *Builder {
	b.controller = controller
	return b
}

// Cid sets the correlation id.
func (b *Builder) Cid(cid string) *Builder {
	b.cid = cid
	return b
}

// Data appends a key:value pair. Repeated keys are kept, not overwritten.
func (b *Builder) Data(key, value string) *Builder {
	b.data = append(b.data, Pair{Key: key, Value: value})
	return b
}

// Detail appends a free-text detail line, rendered after the primary line.
func (b *Builder) Detail(line string) *Builder {
	b.details = append(b.details, line)
	return b
}

// Trace sets the level to [LevelTrace].
func (b *Builder) Trace() *Builder {
	b.level = LevelTrace
	return b
}

// Debug sets the level to [LevelDebug].
func (b *Builder) Debug() *Builder {
	b.level = LevelDebug
	return b
}

// Info sets the level to [LevelInfo].
func (b *Builder) Info() *Builder {
	b.level = LevelInfo
	return b
}

// Warn sets the level to [LevelWarn].
func (b *Builder) Warn() *Builder {
	b.level = LevelWarn
	return b
}

// Error sets the level to [LevelError].
func (b *Builder) Error() *Builder {
	b.level = LevelError
	return b
}

// Timestamp sets an explicit timestamp. When unset, finalization captures
// the current time. Timestamps are always rendered in UTC.
func (b *Builder) Timestamp(ts time.Time) *Builder {
	b.timestamp = ts
	return b
}

// Colorize enables or disables ANSI colorization for [Builder.Print].
// Enabled by default. Broadcast subscribers receive the plain form either
// way.
func (b *Builder) Colorize(enabled bool) *Builder {
	b.colorize = enabled
	return b
}

// Build validates and finalizes the entry. It returns an error wrapping
// [ErrMissingField] when the subsystem, controller, or message is empty.
func (b *Builder) Build() (*Entry, error) {
	switch {
	case b.subsystem == "":
		return nil, fmt.Errorf("%w: subsystem", ErrMissingField)
	case b.controller == "":
		return nil, fmt.Errorf("%w: controller", ErrMissingField)
	case b.msg == "":
		return nil, fmt.Errorf("%w: message", ErrMissingField)
	}

	ts := b.timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	return &Entry{
		Timestamp:  ts.UTC(),
		Subsystem:  b.subsystem,
		Controller: b.controller,
		Level:      b.level,
		CID:        b.cid,
		Message:    b.msg,
		Data:       slices.Clone(b.data),
		Details:    slices.Clone(b.details),
	}, nil
}
