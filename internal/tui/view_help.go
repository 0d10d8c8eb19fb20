package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const helpText = `# Help

## Home
| Key | Action |
|-----|--------|
| / | Search templates |
| Enter | Open template or category |
| a | AI writer |
| d | My drafts |
| f | FAQ |
| s | Settings |

## Editor
| Key | Action |
|-----|--------|
| Enter | Edit the selected field |
| ctrl+l | Switch English / Hindi |
| ctrl+s | Save draft |
| ctrl+t / ctrl+o / ctrl+p | Export text, HTML, PDF |
| ctrl+y | Copy to clipboard |
| ctrl+w | Share on WhatsApp |
| f | Template FAQ |

## AI writer
| Key | Action |
|-----|--------|
| Tab | Switch between prompt and quick requests |
| ctrl+g | Generate |
| ctrl+r | Voice input |

Fields left blank stay as [Field Name] in the letter.
`

func (a *App) renderHelp() string {
	var b strings.Builder

	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, renderMarkdown(helpText, min(80, max(30, a.width-8)))))
	b.WriteString("\n\n")
	b.WriteString(a.statusLine("[Esc] Back"))

	return a.centerVertically(b.String())
}
