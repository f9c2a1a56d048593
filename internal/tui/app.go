package tui

import (
	"log/slog"

	tea "charm.land/bubbletea/v2"

	"github.com/legalease/docchat-go/internal/api"
	"github.com/legalease/docchat-go/internal/auth"
	"github.com/legalease/docchat-go/internal/config"
	"github.com/legalease/docchat-go/internal/guard"
	"github.com/legalease/docchat-go/internal/session"
)

// view identifies a screen in the application.
type view int

const (
	viewLanding view = iota
	viewSignIn
	viewSignUp
	viewHome
	viewUpload
	viewChat
	viewLegal
)

// routeGuards is evaluated at every navigation and re-run on session change.
var routeGuards = map[view]guard.Policy{
	viewLanding: guard.RequireAnonymous{},
	viewSignIn:  guard.RequireAnonymous{},
	viewSignUp:  guard.RequireAnonymous{},
	viewHome:    guard.RequireAuthenticated{},
	viewUpload:  guard.RequireAuthenticated{},
	viewChat:    guard.RequireAuthenticated{},
	viewLegal:   guard.RequireAuthenticated{},
}

// Deps bundles the services the application runs on.
type Deps struct {
	Config config.Config
	Store  *session.Store
	Client *api.Client
	Auth   *auth.Service
	Logger *slog.Logger
}

// sessionChangedMsg re-runs the current view's guard. The session store's
// subscription delivers it, including for the 401-triggered global clear.
type sessionChangedMsg struct{}

// navigateMsg asks the router to switch views.
type navigateMsg struct {
	to view
}

func navigate(to view) tea.Cmd {
	return func() tea.Msg { return navigateMsg{to: to} }
}

// appModel is the root bubbletea model: the router plus one submodel per
// view. Chat submodels are rebuilt on entry so each mount starts a fresh
// conversation.
type appModel struct {
	deps  Deps
	theme Theme

	current view
	width   int
	height  int

	signin  signinModel
	signup  signupModel
	landing landingModel
	home    homeModel
	upload  uploadModel
	chat    chatModel
	legal   legalModel
}

func newAppModel(deps Deps) appModel {
	m := appModel{
		deps:  deps,
		theme: defaultTheme,
	}
	if deps.Store.Authenticated() {
		m.current = viewHome
	} else {
		m.current = viewLanding
	}
	m.enter(m.current)
	return m
}

// enter mounts the submodel for v. Auth forms and conversations start fresh
// on every entry.
func (m *appModel) enter(v view) {
	switch v {
	case viewLanding:
		m.landing = newLandingModel(m.theme)
	case viewSignIn:
		m.signin = newSigninModel(m.deps, m.theme)
	case viewSignUp:
		m.signup = newSignupModel(m.deps, m.theme)
	case viewHome:
		m.home = newHomeModel(m.deps, m.theme)
	case viewUpload:
		m.upload = newUploadModel(m.deps, m.theme)
	case viewChat:
		m.chat = newChatModel(m.deps, m.theme)
	case viewLegal:
		m.legal = newLegalModel(m.deps, m.theme)
	}
	m.current = v
}

// route applies the destination's guard and mounts either it or the
// redirect target.
func (m *appModel) route(to view) {
	d := routeGuards[to].Evaluate(m.deps.Store)
	if !d.Allowed {
		to = redirectView(d.RedirectTo)
	} else if to == viewChat {
		// Document chat cannot start without an upload; send the user to
		// the upload flow instead.
		if _, ok := m.deps.Store.Document(); !ok {
			to = viewUpload
		}
	}
	m.enter(to)
}

func redirectView(t guard.Target) view {
	switch t {
	case guard.TargetHome:
		return viewHome
	default:
		return viewSignIn
	}
}

func (m appModel) Init() tea.Cmd {
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case navigateMsg:
		m.route(msg.to)
		return m, nil

	case sessionChangedMsg:
		// Re-run the guard for the view the user is on. A cleared session
		// bounces an authenticated view back to sign-in; a fresh sign-in
		// bounces the auth forms forward to home.
		m.route(m.current)
		return m, nil
	}

	var cmd tea.Cmd
	switch m.current {
	case viewLanding:
		m.landing, cmd = m.landing.update(msg)
	case viewSignIn:
		m.signin, cmd = m.signin.update(msg)
	case viewSignUp:
		m.signup, cmd = m.signup.update(msg)
	case viewHome:
		m.home, cmd = m.home.update(msg)
	case viewUpload:
		m.upload, cmd = m.upload.update(msg)
	case viewChat:
		m.chat, cmd = m.chat.update(msg)
	case viewLegal:
		m.legal, cmd = m.legal.update(msg)
	}
	return m, cmd
}

func (m appModel) View() tea.View {
	var content string
	switch m.current {
	case viewLanding:
		content = m.landing.view()
	case viewSignIn:
		content = m.signin.view()
	case viewSignUp:
		content = m.signup.view()
	case viewHome:
		content = m.home.view()
	case viewUpload:
		content = m.upload.view()
	case viewChat:
		content = m.chat.view(m.width)
	case viewLegal:
		content = m.legal.view(m.width)
	}
	return tea.NewView(content)
}

// Run starts the full-screen application and blocks until exit.
func Run(deps Deps) error {
	p := tea.NewProgram(newAppModel(deps))

	// Session changes reach the router as messages. This is also how the
	// API client's 401 clear forces navigation back to sign-in.
	deps.Store.Subscribe(func() {
		p.Send(sessionChangedMsg{})
	})

	_, err := p.Run()
	return err
}
