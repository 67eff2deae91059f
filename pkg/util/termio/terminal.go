package termio

import (
	"errors"
	"os"

	"golang.org/x/term"
)

// Terminal drives the single rewritten status line behind sapo's -b
// progress flag. Unlike a full-screen TUI it never reads input and never
// lays out more than one widget; each Render overwrites the previous line
// in place via a carriage return rather than scrolling the terminal.
type Terminal struct {
	width  uint
	widget Widget
}

// NewTerminal attaches to the controlling terminal, hiding the cursor for
// the duration of the status display.
func NewTerminal() (*Terminal, error) {
	fd := int(os.Stdout.Fd())
	//
	if !term.IsTerminal(fd) {
		return nil, errors.New("not a terminal")
	}
	//
	width, _, err := term.GetSize(fd)
	if err != nil {
		return nil, err
	}
	//
	if _, err := os.Stdout.WriteString("\033[?25l"); err != nil {
		return nil, err
	}
	//
	return &Terminal{uint(width), nil}, nil
}

// Add attaches the widget rendered on every subsequent call to Render.
func (t *Terminal) Add(w Widget) {
	t.widget = w
}

// Render draws the current widget to the terminal's status line,
// overwriting whatever line content preceded it.
func (t *Terminal) Render() error {
	if t.widget == nil {
		return nil
	}
	//
	canvas := newLineCanvas(t.width)
	t.widget.Render(canvas)
	//
	_, err := os.Stdout.WriteString("\r" + string(canvas.render()))
	//
	return err
}

// Restore unhides the cursor and moves past the status line, leaving the
// terminal as it was before NewTerminal.
func (t *Terminal) Restore() error {
	_, err := os.Stdout.WriteString("\n\033[?25h")
	//
	return err
}

// lineCanvas flattens the chunks written by a single Widget.Render call
// into one line of terminal output.
type lineCanvas struct {
	width  uint
	chunks []lineChunk
}

type lineChunk struct {
	xpos uint
	text FormattedText
}

func newLineCanvas(width uint) *lineCanvas {
	return &lineCanvas{width: width}
}

func (c *lineCanvas) GetDimensions() (uint, uint) {
	return c.width, 1
}

func (c *lineCanvas) Write(x, y uint, text FormattedText) {
	if y != 0 || x >= c.width {
		return
	}
	// Clip chunk if it would overrun the terminal width.
	if mx := x + text.Len(); mx > c.width {
		text.Clip(0, c.width-x)
	}
	//
	c.chunks = append(c.chunks, lineChunk{x, text})
}

func (c *lineCanvas) render() []byte {
	var (
		xpos uint
		out  []byte
	)
	//
	for _, chunk := range c.chunks {
		for ; xpos < chunk.xpos; xpos++ {
			out = append(out, ' ')
		}
		//
		out = append(out, chunk.text.Bytes()...)
		xpos += chunk.text.Len()
	}
	// Pad out to the terminal width so stale trailing characters from a
	// longer previous line are erased.
	for ; xpos < c.width; xpos++ {
		out = append(out, ' ')
	}
	//
	return out
}
