// Package sessions browses the chat sessions stored by the quiz service.
package sessions

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/trivia/internal/remote"
	"github.com/abhisek/trivia/internal/router"
	"github.com/abhisek/trivia/internal/screen"
	"github.com/abhisek/trivia/internal/ui/layout"
	"github.com/abhisek/trivia/internal/ui/theme"
)

type sessionsLoadedMsg struct {
	Sessions []remote.SessionInfo
	Err      error
}

type historyLoadedMsg struct {
	ID        string
	Exchanges []remote.Exchange
	Err       error
}

type sessionDeletedMsg struct {
	ID  string
	Err error
}

// SessionsScreen lists past sessions. Enter expands a session's exchanges
// and d deletes it after confirmation.
type SessionsScreen struct {
	chat     remote.ChatService
	sessions []remote.SessionInfo
	history  map[string][]remote.Exchange
	expanded map[string]bool
	selected int
	loaded   bool

	// confirming holds the id awaiting a y/n delete confirmation.
	confirming string
	errMsg     string
}

var _ screen.Screen = (*SessionsScreen)(nil)
var _ screen.KeyHintProvider = (*SessionsScreen)(nil)

// New creates a SessionsScreen backed by chat.
func New(chat remote.ChatService) *SessionsScreen {
	return &SessionsScreen{
		chat:     chat,
		history:  make(map[string][]remote.Exchange),
		expanded: make(map[string]bool),
	}
}

func (s *SessionsScreen) Init() tea.Cmd {
	return s.load
}

func (s *SessionsScreen) load() tea.Msg {
	list, err := s.chat.Sessions(context.Background())
	return sessionsLoadedMsg{Sessions: list, Err: err}
}

func (s *SessionsScreen) Title() string {
	return "Past Sessions"
}

func (s *SessionsScreen) KeyHints() []layout.KeyHint {
	if s.confirming != "" {
		return []layout.KeyHint{
			{Key: "Y", Description: "Delete"},
			{Key: "N", Description: "Keep"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "D", Description: "Delete"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SessionsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionsLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.sessions = msg.Sessions
		s.selected = min(s.selected, max(len(s.sessions)-1, 0))
		return s, nil

	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.history[msg.ID] = msg.Exchanges
		return s, nil

	case sessionDeletedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		delete(s.history, msg.ID)
		delete(s.expanded, msg.ID)
		return s, s.load

	case tea.KeyPressMsg:
		if s.confirming != "" {
			return s.updateConfirm(msg.String())
		}
		return s.updateList(msg.String())
	}
	return s, nil
}

func (s *SessionsScreen) updateList(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.sessions)-1 {
			s.selected++
		}
	case "enter":
		info, ok := s.current()
		if !ok {
			return s, nil
		}
		s.expanded[info.ID] = !s.expanded[info.ID]
		if _, cached := s.history[info.ID]; s.expanded[info.ID] && !cached {
			return s, s.fetchHistory(info.ID)
		}
	case "d":
		if info, ok := s.current(); ok {
			s.confirming = info.ID
		}
	}
	return s, nil
}

func (s *SessionsScreen) updateConfirm(key string) (screen.Screen, tea.Cmd) {
	id := s.confirming
	switch key {
	case "y":
		s.confirming = ""
		return s, func() tea.Msg {
			return sessionDeletedMsg{ID: id, Err: s.chat.DeleteSession(context.Background(), id)}
		}
	case "n", "esc":
		s.confirming = ""
	}
	return s, nil
}

func (s *SessionsScreen) fetchHistory(id string) tea.Cmd {
	return func() tea.Msg {
		ex, err := s.chat.History(context.Background(), id)
		return historyLoadedMsg{ID: id, Exchanges: ex, Err: err}
	}
}

func (s *SessionsScreen) current() (remote.SessionInfo, bool) {
	if s.selected < 0 || s.selected >= len(s.sessions) {
		return remote.SessionInfo{}, false
	}
	return s.sessions[s.selected], true
}

func (s *SessionsScreen) View(width, height int) string {
	dim := lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.TextDim)
	if !s.loaded {
		return dim.Render("\n\n  Loading sessions...")
	}
	if s.errMsg != "" && len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if len(s.sessions) == 0 {
		return dim.Italic(true).Render("\n\n  No sessions yet.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, info := range s.sessions {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}

		title := info.Title
		if title == "" {
			title = "(untitled)"
		}
		line := fmt.Sprintf("%s%s  %s", prefix, info.CreatedAt.Format("Jan 02, 2006 15:04"), title)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[info.ID] {
			b.WriteString(s.renderHistory(info.ID, width))
		}
	}

	if s.confirming != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Advisory.Render("Delete this session? (y/n)")))
		b.WriteString("\n")
	} else if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg)))
		b.WriteString("\n")
	}

	return b.String()
}

func (s *SessionsScreen) renderHistory(id string, width int) string {
	exchanges, ok := s.history[id]
	if !ok {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Hint.Render("    Loading...")) + "\n"
	}
	if len(exchanges) == 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Hint.Render("    No exchanges")) + "\n"
	}

	wrap := lipgloss.NewStyle().Width(max(width-12, 20)).PaddingLeft(6)
	var b strings.Builder
	for _, ex := range exchanges {
		b.WriteString(wrap.Foreground(theme.Secondary).Render("Q: " + ex.Prompt))
		b.WriteString("\n")
		b.WriteString(wrap.Foreground(theme.Text).Render("A: " + ex.Response))
		b.WriteString("\n")
	}
	return b.String()
}
