package tui

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/legalease/docchat-go/internal/chat"
)

// legalModel is the document-free legal-information chat view.
type legalModel struct {
	deps       Deps
	theme      Theme
	controller *chat.LegalController
	input      textinput.Model
	busy       bool
	ticks      int
}

func newLegalModel(deps Deps, theme Theme) legalModel {
	ti := textinput.New()
	ti.Placeholder = "Ask a legal question..."
	ti.Prompt = "> "
	ti.CharLimit = 4096
	ti.Focus()

	return legalModel{
		deps:       deps,
		theme:      theme,
		controller: chat.NewLegalController(deps.Client),
		input:      ti,
	}
}

func (m legalModel) update(msg tea.Msg) (legalModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return m, navigate(viewHome)
		case "ctrl+r":
			// Clear chat. Disabled while a request is in flight, matching
			// the original's disabled clear button.
			if !m.busy {
				m.controller.Reset()
			}
			return m, nil
		case "enter":
			if m.busy {
				return m, nil
			}
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.input.SetValue("")
			m.busy = true
			return m, tea.Batch(sendLegalCmd(m.controller, text), chatTickCmd())
		}

	case chatTickMsg:
		if m.busy {
			m.ticks++
			return m, chatTickCmd()
		}
		return m, nil

	case chatDoneMsg:
		m.busy = false
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func sendLegalCmd(c *chat.LegalController, text string) tea.Cmd {
	return func() tea.Msg {
		c.Send(context.Background(), text)
		return chatDoneMsg{}
	}
}

func (m legalModel) view(width int) string {
	var b strings.Builder
	b.WriteString(m.theme.titleStyle().Render("Legal Advice Chat") + "\n\n")

	banner := "⚠️ Disclaimer: This chatbot provides general legal information only. " +
		"It is not a substitute for legal advice from a licensed attorney."
	b.WriteString(m.theme.bannerStyle().Render(banner) + "\n\n")

	b.WriteString(renderTranscript(m.theme, m.controller.Messages(), width))

	if m.busy {
		b.WriteString(m.theme.assistantStyle().Render("⚖️ ") + pendingDots(m.ticks) + "\n\n")
	}

	b.WriteString(m.input.View() + "\n")
	b.WriteString(m.theme.hintStyle().Render("enter: send • ctrl+r: clear chat • esc: back") + "\n")
	return b.String()
}
