package tui

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/legalease/docchat-go/internal/auth"
)

const (
	signupName = iota
	signupEmail
	signupPassword
	signupConfirm
)

// signupModel is the account creation form.
type signupModel struct {
	deps    Deps
	theme   Theme
	form    form
	errText string
	busy    bool
}

func newSignupModel(deps Deps, theme Theme) signupModel {
	return signupModel{
		deps:  deps,
		theme: theme,
		form: newForm(
			textField("John Doe"),
			textField("you@example.com"),
			passwordField("At least 6 characters"),
			passwordField("Re-enter your password"),
		),
	}
}

func (m signupModel) update(msg tea.Msg) (signupModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "tab", "down":
			m.form.next()
			return m, nil
		case "shift+tab", "up":
			m.form.prev()
			return m, nil
		case "esc":
			return m, navigate(viewLanding)
		case "ctrl+s":
			return m, navigate(viewSignIn)
		case "enter":
			if m.busy {
				return m, nil
			}
			creds := auth.SignUpCredentials{
				FullName:        strings.TrimSpace(m.form.value(signupName)),
				Email:           strings.TrimSpace(m.form.value(signupEmail)),
				Password:        m.form.value(signupPassword),
				ConfirmPassword: m.form.value(signupConfirm),
			}
			// Validation failures surface inline without a network call.
			if err := creds.Validate(); err != nil {
				m.errText = userFacing(err)
				return m, nil
			}
			m.busy = true
			m.errText = ""
			return m, signupCmd(m.deps, creds)
		}

	case authResultMsg:
		m.busy = false
		if msg.err != nil {
			m.errText = userFacing(msg.err)
			return m, nil
		}
		return m, navigate(viewHome)
	}

	return m, m.form.update(msg)
}

func signupCmd(deps Deps, creds auth.SignUpCredentials) tea.Cmd {
	return func() tea.Msg {
		return authResultMsg{err: deps.Auth.SignUp(context.Background(), creds)}
	}
}

func (m signupModel) view() string {
	var b strings.Builder
	b.WriteString(m.theme.titleStyle().Render("Create Account") + "\n")
	b.WriteString(m.theme.hintStyle().Render("Get started with your free account") + "\n\n")

	if m.errText != "" {
		b.WriteString(m.theme.errorStyle().Render("⚠ "+m.errText) + "\n\n")
	}

	labels := []string{"Full Name", "Email Address", "Password", "Confirm Password"}
	for i, label := range labels {
		b.WriteString(label + "\n" + m.form.inputs[i].View() + "\n\n")
	}

	if m.busy {
		b.WriteString(m.theme.hintStyle().Render("Creating Account...") + "\n")
	} else {
		b.WriteString(m.theme.hintStyle().Render("enter: create account • ctrl+s: sign in • esc: back") + "\n")
	}
	return b.String()
}
