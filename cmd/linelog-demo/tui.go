package main

import (
	"io"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"go.jacobcolvin.com/linelog"
)

const emitInterval = 40 * time.Millisecond

// followStream emits the sample stream in the background and displays the
// broadcast feed in a terminal viewer until the user quits.
func followStream(count int) error {
	sub := linelog.Subscribe()
	defer sub.Close()

	// The viewer owns the terminal; route printed lines away from it.
	linelog.SetOutput(io.Discard)

	go func() {
		for idx := range count {
			emitSample(idx, false)
			time.Sleep(emitInterval)
		}
	}()

	p := tea.NewProgram(newViewer(sub))

	_, err := p.Run()

	return err
}

// lineMsg carries one broadcast line into the program.
type lineMsg string

// streamClosedMsg signals that the subscription channel was closed.
type streamClosedMsg struct{}

// viewer is the bubbletea model displaying the tail of the broadcast feed.
type viewer struct {
	sub   *linelog.Subscription
	lines []string
	cols  int
	rows  int
}

func newViewer(sub *linelog.Subscription) *viewer {
	return &viewer{sub: sub}
}

// waitForLine blocks until the next broadcast line arrives.
func (v *viewer) waitForLine() tea.Cmd {
	return func() tea.Msg {
		line, ok := <-v.sub.C()
		if !ok {
			return streamClosedMsg{}
		}

		return lineMsg(line)
	}
}

// Init starts the receive loop.
func (v *viewer) Init() tea.Cmd {
	return v.waitForLine()
}

// Update handles incoming lines, resize, and quit messages.
func (v *viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return v, tea.Quit
		}

	case tea.WindowSizeMsg:
		v.cols = msg.Width
		v.rows = msg.Height

	case lineMsg:
		v.lines = append(v.lines, string(msg))

		return v, v.waitForLine()

	case streamClosedMsg:
		return v, nil
	}

	return v, nil
}

// View renders the newest lines that fit the window plus a status row.
func (v *viewer) View() tea.View {
	visible := v.lines
	if v.rows > 1 && len(visible) > v.rows-1 {
		visible = visible[len(visible)-(v.rows-1):]
	}

	var sb strings.Builder

	for _, line := range visible {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	sb.WriteString("q to quit")

	view := tea.NewView(sb.String())
	view.AltScreen = true

	return view
}
