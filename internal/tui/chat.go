package tui

import (
	"context"
	"strings"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/legalease/docchat-go/internal/chat"
	"github.com/legalease/docchat-go/internal/models"
)

const chatTickInterval = 200 * time.Millisecond

// chatDoneMsg signals that an exchange finished; the transcript lives in
// the controller.
type chatDoneMsg struct{}

// chatTickMsg re-renders the transcript while a request is pending, the
// same way job progress polls.
type chatTickMsg struct{}

func chatTickCmd() tea.Cmd {
	return tea.Tick(chatTickInterval, func(time.Time) tea.Msg {
		return chatTickMsg{}
	})
}

// exampleQuestions seed the empty chat state.
var exampleQuestions = []string{
	"Summarize this document",
	"What are the main points?",
	"Explain the key concepts",
}

// chatModel is the document-grounded chat view.
type chatModel struct {
	deps       Deps
	theme      Theme
	controller *chat.Controller
	input      textinput.Model
	busy       bool
	ticks      int
}

func newChatModel(deps Deps, theme Theme) chatModel {
	ti := textinput.New()
	ti.Placeholder = "Type your question here..."
	ti.Prompt = "> "
	ti.CharLimit = 4096
	ti.Focus()

	return chatModel{
		deps:       deps,
		theme:      theme,
		controller: chat.NewController(deps.Client, deps.Store, deps.Config.Model),
		input:      ti,
	}
}

func (m chatModel) update(msg tea.Msg) (chatModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return m, navigate(viewHome)
		case "1", "2", "3":
			// Example prompts fill the input from the empty state.
			if len(m.controller.Messages()) == 0 && m.input.Value() == "" {
				m.input.SetValue(exampleQuestions[int(msg.String()[0]-'1')])
				return m, nil
			}
		case "enter":
			// Input is disabled while a request is in flight.
			if m.busy {
				return m, nil
			}
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.input.SetValue("")
			m.busy = true
			return m, tea.Batch(sendChatCmd(m.controller, text), chatTickCmd())
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

func sendChatCmd(c *chat.Controller, text string) tea.Cmd {
	return func() tea.Msg {
		// Failures append the apology message; a 401 additionally clears
		// the session, which routes the app back to sign-in.
		c.Send(context.Background(), text)
		return chatDoneMsg{}
	}
}

func (m chatModel) view(width int) string {
	var b strings.Builder
	b.WriteString(m.theme.titleStyle().Render("Chat with Your Document") + "\n")
	if doc, ok := m.controller.Binding(); ok {
		b.WriteString("📄 " + m.theme.successStyle().Render(doc.Filename) +
			m.theme.hintStyle().Render("  model: "+m.controller.Model()) + "\n")
	}
	b.WriteString("\n")

	msgs := m.controller.Messages()
	if len(msgs) == 0 && !m.busy {
		b.WriteString("💬 Start a conversation — ask me anything about your document!\n\n")
		b.WriteString(m.theme.hintStyle().Render("Try asking:") + "\n")
		for i, q := range exampleQuestions {
			b.WriteString(m.theme.hintStyle().Render("  "+string(rune('1'+i))+": \""+q+"\"") + "\n")
		}
		b.WriteString("\n")
	} else {
		b.WriteString(renderTranscript(m.theme, msgs, width))
	}

	if m.busy {
		b.WriteString(m.theme.assistantStyle().Render("🤖 ") + pendingDots(m.ticks) + "\n\n")
	}

	b.WriteString(m.input.View() + "\n")
	b.WriteString(m.theme.hintStyle().Render("enter: send • esc: back") + "\n")
	return b.String()
}

// renderTranscript renders messages in insertion order, wrapped to width.
func renderTranscript(theme Theme, msgs []models.Message, width int) string {
	wrapWidth := width - 4
	if wrapWidth < 20 {
		wrapWidth = 76
	}
	body := lipgloss.NewStyle().Width(wrapWidth).PaddingLeft(3)

	var b strings.Builder
	for _, msg := range msgs {
		if msg.Role == models.RoleUser {
			b.WriteString(theme.userStyle().Render("👤 You") + "\n")
		} else {
			b.WriteString(theme.assistantStyle().Render("🤖 Assistant") + "\n")
		}
		b.WriteString(body.Render(msg.Content) + "\n\n")
	}
	return b.String()
}

// pendingDots is the typing indicator.
func pendingDots(ticks int) string {
	return strings.Repeat("●", ticks%3+1)
}
