// Package app is the root Bubble Tea model of the terminal UI.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/trivia/internal/config"
	"github.com/abhisek/trivia/internal/logging"
	"github.com/abhisek/trivia/internal/quiz"
	"github.com/abhisek/trivia/internal/remote"
	"github.com/abhisek/trivia/internal/router"
	"github.com/abhisek/trivia/internal/screen"
	"github.com/abhisek/trivia/internal/screens/home"
	quizscreen "github.com/abhisek/trivia/internal/screens/quiz"
	"github.com/abhisek/trivia/internal/screens/sessions"
	"github.com/abhisek/trivia/internal/screens/welcome"
	"github.com/abhisek/trivia/internal/session"
	"github.com/abhisek/trivia/internal/ui/layout"
)

// StatusInterval is how often the header's API status is refreshed.
const StatusInterval = 30 * time.Second

// Options configures the terminal UI.
type Options struct {
	Executor *session.Executor

	// Chat enables the past-sessions browser.
	Chat remote.ChatService

	// Status enables the rate-limit line in the header.
	Status remote.StatusService

	// Prefs persists the cursor preference. Nil keeps it in memory.
	Prefs *config.PrefsStore

	Count        int
	QuestionType quiz.Kind
	AdvanceDelay time.Duration
	SkipWelcome  bool
	Log          *logging.Logger
}

type statusMsg struct {
	Status *remote.APIStatus
	Err    error
}

type statusTickMsg struct{}

type prefsSavedMsg struct {
	Err error
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	opts   Options
	prefs  config.Prefs
	status layout.Status
	width  int
	height int
}

// newAppModel creates the model with the welcome screen, or the topic
// menu when the welcome is skipped.
func newAppModel(opts Options, prefs config.Prefs) AppModel {
	if opts.Log == nil {
		opts.Log = logging.Nop()
	}
	if opts.AdvanceDelay <= 0 {
		opts.AdvanceDelay = session.AdvanceDelay
	}

	homeFactory := func() screen.Screen {
		return home.New(home.Options{
			NewQuiz: func(sel session.TopicSelected, cursor bool) screen.Screen {
				machine := session.New(session.WithAdvanceDelay(opts.AdvanceDelay))
				return quizscreen.New(machine, opts.Executor, sel, cursor)
			},
			Sessions:     sessionsFactory(opts.Chat),
			QuestionType: opts.QuestionType,
			Count:        opts.Count,
			Cursor:       prefs.CursorEnabled,
		})
	}

	var first screen.Screen
	if opts.SkipWelcome {
		first = homeFactory()
	} else {
		first = welcome.New(homeFactory)
	}

	return AppModel{
		router: router.New(first),
		opts:   opts,
		prefs:  prefs,
	}
}

func sessionsFactory(chat remote.ChatService) func() screen.Screen {
	if chat == nil {
		return nil
	}
	return func() screen.Screen { return sessions.New(chat) }
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), m.fetchStatus())
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case statusMsg:
		if msg.Err != nil {
			m.opts.Log.Debug("api status unavailable", "error", msg.Err)
			m.status = layout.Status{}
		} else {
			m.status = formatStatus(msg.Status)
		}
		return m, tea.Tick(StatusInterval, func(time.Time) tea.Msg { return statusTickMsg{} })

	case statusTickMsg:
		return m, m.fetchStatus()

	case home.CursorToggledMsg:
		m.prefs.CursorEnabled = msg.Enabled
		return m, m.savePrefs()

	case prefsSavedMsg:
		if msg.Err != nil {
			m.opts.Log.Warn("save preferences", "error", msg.Err)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if c, ok := m.router.Active().(screen.InputCapturer); ok && c.CapturingInput() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) fetchStatus() tea.Cmd {
	if m.opts.Status == nil {
		return nil
	}
	svc := m.opts.Status
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		st, err := svc.APIStatus(ctx)
		return statusMsg{Status: st, Err: err}
	}
}

func (m AppModel) savePrefs() tea.Cmd {
	if m.opts.Prefs == nil {
		return nil
	}
	store, prefs := m.opts.Prefs, m.prefs
	return func() tea.Msg {
		return prefsSavedMsg{Err: store.Save(prefs)}
	}
}

// formatStatus renders the header's rate-limit line.
func formatStatus(st *remote.APIStatus) layout.Status {
	if st == nil {
		return layout.Status{}
	}
	if st.Limited() {
		return layout.Status{
			Text:    fmt.Sprintf("API limited, resets in %ds", int(st.TimeToReset().Round(time.Second).Seconds())),
			Limited: true,
		}
	}
	return layout.Status{Text: fmt.Sprintf("API %d/%d per min", st.RequestsThisMinute, st.MinuteQuota)}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render composes header, active screen and footer for the current size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	header := layout.RenderHeader(active.Title(), m.status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	content := m.router.View(m.width, layout.ContentHeight(header, footer, m.height))
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Any key", Description: "Continue"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	prefs := config.DefaultPrefs()
	if opts.Prefs != nil {
		loaded, err := opts.Prefs.Load()
		if err != nil && opts.Log != nil {
			opts.Log.Warn("load preferences", "path", opts.Prefs.Path(), "error", err)
		}
		prefs = loaded
	}

	p := tea.NewProgram(newAppModel(opts, prefs))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
