package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// landingModel is the anonymous welcome screen.
type landingModel struct {
	theme Theme
}

func newLandingModel(theme Theme) landingModel {
	return landingModel{theme: theme}
}

func (m landingModel) update(msg tea.Msg) (landingModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "s":
			return m, navigate(viewSignIn)
		case "u":
			return m, navigate(viewSignUp)
		case "q":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m landingModel) view() string {
	var b strings.Builder
	b.WriteString(m.theme.titleStyle().Render("LegalEase") + "\n\n")
	b.WriteString("Upload your documents and ask questions about them using the power of AI.\n\n")
	b.WriteString("  📄 Upload Documents — PDF, TXT, and DOCX files\n")
	b.WriteString("  🤖 AI-Powered Analysis — intelligent answers grounded in your document\n")
	b.WriteString("  ⚖️ Legal Information Chat — general legal questions, no document needed\n\n")
	b.WriteString(m.theme.hintStyle().Render("s: sign in • u: sign up • q: quit") + "\n")
	return b.String()
}

// homeModel is the authenticated landing page.
type homeModel struct {
	deps  Deps
	theme Theme
}

func newHomeModel(deps Deps, theme Theme) homeModel {
	return homeModel{deps: deps, theme: theme}
}

func (m homeModel) update(msg tea.Msg) (homeModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "u":
			return m, navigate(viewUpload)
		case "c":
			return m, navigate(viewChat)
		case "l":
			return m, navigate(viewLegal)
		case "o":
			// Logout; the session subscription routes back to sign-in.
			return m, func() tea.Msg {
				if err := m.deps.Auth.SignOut(); err != nil {
					m.deps.Logger.Error("sign out failed", "error", err)
				}
				return nil
			}
		case "q":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m homeModel) view() string {
	var b strings.Builder
	b.WriteString(m.theme.titleStyle().Render("Welcome to DocChat AI") + "\n")
	if user, ok := m.deps.Store.User(); ok {
		b.WriteString(m.theme.hintStyle().Render("Signed in as "+user.FullName) + "\n")
	}
	b.WriteString("\n")

	if doc, ok := m.deps.Store.Document(); ok {
		b.WriteString("📄 Active document: " + m.theme.successStyle().Render(doc.Filename) + "\n\n")
	} else {
		b.WriteString(m.theme.hintStyle().Render("No document uploaded yet — upload one to start chatting.") + "\n\n")
	}

	b.WriteString("  u: upload a document\n")
	b.WriteString("  c: chat with your document\n")
	b.WriteString("  l: legal information chat\n")
	b.WriteString("  o: log out\n\n")
	b.WriteString(m.theme.hintStyle().Render("q: quit") + "\n")
	return b.String()
}
