package output

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Printer is the console output handler. It supports plain and styled
// output through an injected StyleProvider and falls back to plain text
// whenever styling is unavailable or disabled.
type Printer struct {
	styleProvider StyleProvider
	writer        io.Writer
	mode          Mode
	forcePlain    bool
	silent        bool

	mu sync.Mutex
}

// NewPrinter creates a new Printer with the given options. By default it
// writes to os.Stdout in automatic mode.
func NewPrinter(options ...Option) *Printer {
	p := &Printer{
		writer: os.Stdout,
		mode:   ModeAuto,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Print outputs text without styling or newline.
func (p *Printer) Print(text string) {
	p.output(SemanticPlain, text, false)
}

// Printf outputs formatted text without styling.
func (p *Printer) Printf(format string, args ...interface{}) {
	p.output(SemanticPlain, fmt.Sprintf(format, args...), false)
}

// Println outputs text with a newline without styling.
func (p *Printer) Println(text string) {
	p.output(SemanticPlain, text, true)
}

// Info outputs informational text.
func (p *Printer) Info(text string) {
	p.output(SemanticInfo, text, true)
}

// Success outputs success text (typically green).
func (p *Printer) Success(text string) {
	p.output(SemanticSuccess, text, true)
}

// Warning outputs warning text (typically yellow).
func (p *Printer) Warning(text string) {
	p.output(SemanticWarning, text, true)
}

// Error outputs error text (typically red).
func (p *Printer) Error(text string) {
	p.output(SemanticError, text, true)
}

// Command outputs command text.
func (p *Printer) Command(text string) {
	p.output(SemanticCommand, text, true)
}

// Heading outputs heading text.
func (p *Printer) Heading(text string) {
	p.output(SemanticHeading, text, true)
}

func (p *Printer) output(semantic SemanticType, text string, newline bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.silent {
		return
	}

	rendered := text
	if p.shouldStyle() && semantic != SemanticPlain {
		if style := p.styleProvider.GetStyle(semantic); style != nil {
			rendered = style.Render(text)
		}
	}

	if newline {
		fmt.Fprintln(p.writer, rendered)
	} else {
		fmt.Fprint(p.writer, rendered)
	}
}

func (p *Printer) shouldStyle() bool {
	if p.forcePlain || p.mode == ModePlain {
		return false
	}
	return p.styleProvider != nil && p.styleProvider.IsAvailable()
}
