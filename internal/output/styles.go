package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// lipglossStyle wraps lipgloss.Style to satisfy TextStyle.
type lipglossStyle struct {
	style lipgloss.Style
}

func (l lipglossStyle) Render(text string) string {
	return l.style.Render(text)
}

// DefaultStyleProvider supplies the built-in lipgloss styles. It reports
// itself unavailable on terminals without color support, which drops the
// printer back to plain text.
type DefaultStyleProvider struct {
	styles    map[SemanticType]lipgloss.Style
	available bool
}

// NewDefaultStyleProvider builds the provider, probing the terminal color
// profile through termenv.
func NewDefaultStyleProvider() *DefaultStyleProvider {
	return &DefaultStyleProvider{
		styles: map[SemanticType]lipgloss.Style{
			SemanticInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
			SemanticSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			SemanticWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			SemanticError:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
			SemanticCommand: lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
			SemanticHeading: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		},
		available: termenv.ColorProfile() != termenv.Ascii,
	}
}

// GetStyle returns the style registered for the semantic type, or nil.
func (p *DefaultStyleProvider) GetStyle(semantic SemanticType) TextStyle {
	style, ok := p.styles[semantic]
	if !ok {
		return nil
	}
	return lipglossStyle{style: style}
}

// IsAvailable reports whether the terminal supports styled output.
func (p *DefaultStyleProvider) IsAvailable() bool {
	return p.available
}
