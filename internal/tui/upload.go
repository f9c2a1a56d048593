package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/legalease/docchat-go/internal/api"
)

// uploadResultMsg carries the outcome of a document upload.
type uploadResultMsg struct {
	resp *api.UploadResponse
	err  error
}

// uploadModel asks for a file path and uploads it.
type uploadModel struct {
	deps    Deps
	theme   Theme
	input   textinput.Model
	errText string
	busy    bool
}

func newUploadModel(deps Deps, theme Theme) uploadModel {
	ti := textinput.New()
	ti.Placeholder = "/path/to/document.pdf"
	ti.Prompt = "> "
	ti.CharLimit = 1024
	ti.Focus()
	return uploadModel{deps: deps, theme: theme, input: ti}
}

func (m uploadModel) update(msg tea.Msg) (uploadModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return m, navigate(viewHome)
		case "enter":
			if m.busy {
				return m, nil
			}
			path := strings.TrimSpace(m.input.Value())
			if path == "" {
				return m, nil
			}
			m.busy = true
			m.errText = ""
			return m, uploadCmd(m.deps, path)
		}

	case uploadResultMsg:
		m.busy = false
		if msg.err != nil {
			m.errText = userFacing(msg.err)
			return m, nil
		}
		// Bind the document and move straight into the chat, like the
		// browser client did.
		if err := m.deps.Store.BindDocument(msg.resp.DocumentID, msg.resp.Filename); err != nil {
			m.errText = fmt.Sprintf("Failed to save document binding: %v", err)
			return m, nil
		}
		return m, navigate(viewChat)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func uploadCmd(deps Deps, path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return uploadResultMsg{err: fmt.Errorf("open file: %w", err)}
		}
		defer f.Close()

		resp, err := deps.Client.UploadDocument(context.Background(), filepath.Base(path), f)
		return uploadResultMsg{resp: resp, err: err}
	}
}

func (m uploadModel) view() string {
	var b strings.Builder
	b.WriteString(m.theme.titleStyle().Render("Upload Your Document") + "\n")
	b.WriteString(m.theme.hintStyle().Render("Upload a PDF, TXT, or DOCX file to start asking questions") + "\n\n")

	if m.errText != "" {
		b.WriteString(m.theme.errorStyle().Render("⚠ "+m.errText) + "\n\n")
	}

	b.WriteString("File path\n" + m.input.View() + "\n\n")

	if m.busy {
		b.WriteString(m.theme.hintStyle().Render("Uploading...") + "\n")
	} else {
		b.WriteString(m.theme.hintStyle().Render("enter: upload and continue • esc: back") + "\n")
	}
	return b.String()
}
