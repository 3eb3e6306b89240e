// Package home is the topic menu: the screen a quiz starts from.
package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/trivia/internal/quiz"
	"github.com/abhisek/trivia/internal/router"
	"github.com/abhisek/trivia/internal/screen"
	sess "github.com/abhisek/trivia/internal/session"
	"github.com/abhisek/trivia/internal/topic"
	"github.com/abhisek/trivia/internal/ui/components"
	"github.com/abhisek/trivia/internal/ui/layout"
)

// CursorToggledMsg reports a change of the cursor preference.
type CursorToggledMsg struct {
	Enabled bool
}

// Options wires the home screen to the rest of the app.
type Options struct {
	// NewQuiz builds the screen that plays sel.
	NewQuiz func(sel sess.TopicSelected, cursor bool) screen.Screen

	// Sessions builds the past-sessions browser. Nil hides the entry.
	Sessions func() screen.Screen

	QuestionType quiz.Kind
	Count        int
	Cursor       bool
}

var kindCycle = []quiz.Kind{
	quiz.KindMixed,
	quiz.KindMultipleChoice,
	quiz.KindTrueFalse,
	quiz.KindOpenEnded,
}

// HomeScreen lists the topics and starts a quiz on Enter.
type HomeScreen struct {
	opts   Options
	menu   components.Menu
	kind   quiz.Kind
	cursor bool

	// custom is set while a free-text topic is being typed.
	custom bool
	input  components.TextInput
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.InputCapturer = (*HomeScreen)(nil)

// New creates a HomeScreen.
func New(opts Options) *HomeScreen {
	kind := opts.QuestionType
	if kind == "" {
		kind = quiz.KindMixed
	}
	h := &HomeScreen{opts: opts, kind: kind, cursor: opts.Cursor}

	var items []components.MenuItem
	for _, t := range topic.All() {
		items = append(items, components.MenuItem{
			Label:  t.Label,
			Action: func() tea.Cmd { return h.start(t) },
		})
	}
	items = append(items, components.MenuItem{
		Label: "Custom topic...",
		Action: func() tea.Cmd {
			h.custom = true
			h.input = components.NewTextInput("e.g. volcanoes", 60)
			return h.input.Init()
		},
	})
	if opts.Sessions != nil {
		items = append(items, components.MenuItem{
			Label: "Past sessions",
			Action: func() tea.Cmd {
				s := opts.Sessions()
				return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
			},
		})
	}
	items = append(items, components.MenuItem{
		Label:  "Quit",
		Action: func() tea.Cmd { return tea.Quit },
	})

	h.menu = components.NewMenu(items)
	h.menu.Cursor = h.cursor
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Topics"
}

// QuestionType is the type the next quiz will ask for.
func (h *HomeScreen) QuestionType() quiz.Kind {
	return h.kind
}

func (h *HomeScreen) CapturingInput() bool {
	return h.custom
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.custom {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "T", Description: "Question type"},
		{Key: "C", Description: "Cursor"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if h.custom {
		return h.updateCustom(msg)
	}

	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "t":
			h.kind = nextKind(h.kind)
			return h, nil
		case "c":
			h.cursor = !h.cursor
			h.menu.Cursor = h.cursor
			enabled := h.cursor
			return h, func() tea.Msg { return CursorToggledMsg{Enabled: enabled} }
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) updateCustom(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "esc":
			h.custom = false
			return h, nil
		case "enter":
			name := strings.TrimSpace(h.input.Value())
			if name == "" {
				return h, nil
			}
			h.custom = false
			return h, h.start(topic.Lookup(topic.ID(name)))
		}
	}
	var cmd tea.Cmd
	h.input, cmd = h.input.Update(msg)
	return h, cmd
}

func (h *HomeScreen) start(t topic.Topic) tea.Cmd {
	sel := sess.TopicSelected{Topic: t, QuestionType: h.kind, Count: h.opts.Count}
	s := h.opts.NewQuiz(sel, h.cursor)
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func nextKind(k quiz.Kind) quiz.Kind {
	for i, c := range kindCycle {
		if c == k {
			return kindCycle[(i+1)%len(kindCycle)]
		}
	}
	return kindCycle[0]
}

func kindLabel(k quiz.Kind) string {
	switch k {
	case quiz.KindMultipleChoice:
		return "Multiple choice"
	case quiz.KindTrueFalse:
		return "True / false"
	case quiz.KindOpenEnded:
		return "Open-ended"
	}
	return "Mixed"
}
