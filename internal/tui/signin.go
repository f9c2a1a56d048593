package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/legalease/docchat-go/internal/api"
	"github.com/legalease/docchat-go/internal/auth"
)

// authResultMsg carries the outcome of a sign-in or sign-up attempt.
type authResultMsg struct {
	err error
}

const (
	signinEmail = iota
	signinPassword
)

// signinModel is the sign-in form.
type signinModel struct {
	deps    Deps
	theme   Theme
	form    form
	errText string
	busy    bool
}

func newSigninModel(deps Deps, theme Theme) signinModel {
	return signinModel{
		deps:  deps,
		theme: theme,
		form: newForm(
			textField("you@example.com"),
			passwordField("Enter your password"),
		),
	}
}

func (m signinModel) update(msg tea.Msg) (signinModel, tea.Cmd) {
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
		case "ctrl+u":
			return m, navigate(viewSignUp)
		case "enter":
			if m.busy {
				return m, nil
			}
			creds := auth.SignInCredentials{
				Email:    strings.TrimSpace(m.form.value(signinEmail)),
				Password: m.form.value(signinPassword),
			}
			m.busy = true
			m.errText = ""
			return m, signinCmd(m.deps, creds)
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

func signinCmd(deps Deps, creds auth.SignInCredentials) tea.Cmd {
	return func() tea.Msg {
		return authResultMsg{err: deps.Auth.SignIn(context.Background(), creds)}
	}
}

func (m signinModel) view() string {
	var b strings.Builder
	b.WriteString(m.theme.titleStyle().Render("Sign In") + "\n")
	b.WriteString(m.theme.hintStyle().Render("Enter your credentials to access your account") + "\n\n")

	if m.errText != "" {
		b.WriteString(m.theme.errorStyle().Render("⚠ "+m.errText) + "\n\n")
	}

	b.WriteString("Email Address\n" + m.form.inputs[signinEmail].View() + "\n\n")
	b.WriteString("Password\n" + m.form.inputs[signinPassword].View() + "\n\n")

	if m.busy {
		b.WriteString(m.theme.hintStyle().Render("Signing In...") + "\n")
	} else {
		b.WriteString(m.theme.hintStyle().Render("enter: sign in • ctrl+u: sign up • esc: back") + "\n")
	}
	return b.String()
}

// userFacing maps an error to the string the user should see: validation
// and server detail messages verbatim, everything else a short failure line.
func userFacing(err error) string {
	var ve *auth.ValidationError
	if errors.As(err, &ve) {
		return ve.Msg
	}
	var se *api.StatusError
	if errors.As(err, &se) {
		return se.Detail
	}
	if errors.Is(err, api.ErrSessionExpired) {
		return "Session expired. Please sign in again."
	}
	return fmt.Sprintf("Request failed: %v", err)
}
