package render

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	userLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00A3E0")).
			Bold(true)

	botLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true)

	typingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#00A3E0")).
			Padding(0, 1)
)

const (
	// cursor up one line, then clear it
	eraseLastLine = "\x1b[1A\x1b[2K"
	clearScreen   = "\x1b[2J\x1b[H"
)

// TerminalSurface writes messages to a terminal. Bot replies go through
// glamour; when glamour fails the raw markdown is printed instead.
type TerminalSurface struct {
	mu       sync.Mutex
	out      io.Writer
	renderer *glamour.TermRenderer
	tty      bool
	// writes counts every print so a typing line is only erased when
	// nothing has been printed after it.
	writes int
}

// NewTerminalSurface renders for a terminal of the given width. tty enables
// ANSI cursor control and auto-detected styles; without it output stays
// plain enough to pipe.
func NewTerminalSurface(out io.Writer, width int, tty bool) *TerminalSurface {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if tty {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle("notty"))
	}

	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		// Fallback to plain text if renderer initialization fails
		renderer = nil
	}

	return &TerminalSurface{out: out, renderer: renderer, tty: tty}
}

func (t *TerminalSurface) ShowUser(text string) {
	t.print(userLabelStyle.Render("You") + "\n" + text + "\n\n")
}

func (t *TerminalSurface) ShowBot(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	// The renderer is shared, so it runs under the lock too.
	io.WriteString(t.out, botLabelStyle.Render("Rehnuma")+"\n"+t.markdown(text)+"\n")
	t.writes++
}

func (t *TerminalSurface) ShowTyping() Placeholder {
	t.mu.Lock()
	fmt.Fprintln(t.out, typingStyle.Render("Rehnuma is typing…"))
	t.writes++
	mark := t.writes
	t.mu.Unlock()

	var once sync.Once
	return placeholderFunc(func() {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			if t.tty && t.writes == mark {
				io.WriteString(t.out, eraseLastLine)
			}
		})
	})
}

func (t *TerminalSurface) Notify(message string) {
	t.print(noticeStyle.Render(message) + "\n")
}

func (t *TerminalSurface) Clear() {
	if t.tty {
		t.print(clearScreen)
	}
}

func (t *TerminalSurface) print(s string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	io.WriteString(t.out, s)
	t.writes++
}

func (t *TerminalSurface) markdown(text string) string {
	if t.renderer == nil {
		return text + "\n"
	}
	rendered, err := t.renderer.Render(text)
	if err != nil {
		return text + "\n"
	}
	return strings.TrimLeft(rendered, "\n")
}
