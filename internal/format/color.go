package format

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// DocsWrapWidth is the word wrap used for rendered docs topics.
const DocsWrapWidth = 80

// ApplyColorProfile sets Lip Gloss's color profile from the environment.
// NO_COLOR, CLICOLOR and CLICOLOR_FORCE are honored.
func ApplyColorProfile() termenv.Profile {
	p := termenv.EnvColorProfile()
	lipgloss.SetColorProfile(p)
	return p
}

func markdownStyle() string {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("ORGANIZER_MD_STYLE"))) {
	case "light":
		return "light"
	case "dark":
		return "dark"
	}
	if lipgloss.ColorProfile() == termenv.Ascii {
		return "notty"
	}
	return "dark"
}

// Markdown renders md for the terminal. Rendering failures return md as is.
func Markdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(markdownStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
