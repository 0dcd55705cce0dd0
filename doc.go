// Package linelog builds and distributes structured, pipe-delimited log
// lines.
//
// Each entry renders as one canonical primary line:
//
//	2025.1205.10:15:30|SSYS=db|CTRL=migrator|LVL=INFO|CID=op12|MSG=Migration applied|name:2025-12-01-001-rbac dur_ms:214
//
// optionally followed by indented detail lines. Entries are assembled with a
// chained [Builder] and emitted with [Builder.Print]:
//
//	linelog.New("db", "migrator", linelog.LevelInfo, "Migration applied").
//		Cid("op12").
//		Data("name", "2025-12-01-001-rbac").
//		Data("dur_ms", "214").
//		Print()
//
// Emission is filtered by a process-wide level gate ([SetGlobalLevel]).
// Every accepted line is written to the configured output and fanned out to
// all [Subscription] endpoints created with [Subscribe], which is useful for
// displaying logs inside a Bubble Tea TUI:
//
//	sub := linelog.Subscribe()
//	go func() {
//	    for line := range sub.C() {
//	        // Deliver line to the TUI.
//	    }
//	}()
//
// Colorized rendering wraps each segment of the primary line in the ANSI
// escape codes of the active [SchemeFunc] ([SetColorScheme]). Subscribers
// always receive the plain canonical form; it is the only rendering that is
// bit-stable across color configurations.
package linelog
