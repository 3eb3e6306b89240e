package topic

import "strings"

// ID identifies a trivia topic.
type ID string

const (
	History   ID = "history"
	Culture   ID = "culture"
	Sports    ID = "sports"
	Science   ID = "science"
	Geography ID = "geography"

	// Mixed draws one question from each known topic.
	Mixed ID = "mixed"

	// General tags questions that belong to no specific topic.
	General ID = "general"
)

// Topic is a selectable trivia category.
type Topic struct {
	ID    ID
	Label string

	// Prompt is the topic text sent to the quiz service.
	Prompt string
}

var known = []Topic{
	{ID: History, Label: "History", Prompt: "history"},
	{ID: Culture, Label: "Culture", Prompt: "culture"},
	{ID: Sports, Label: "Sports", Prompt: "sports"},
	{ID: Science, Label: "Science", Prompt: "science"},
	{ID: Geography, Label: "Geography", Prompt: "geography"},
}

var mixed = Topic{
	ID:     Mixed,
	Label:  "Mixed Trivia",
	Prompt: "random trivia with one question from each topic: history, culture, sports, science and geography",
}

// Known returns the concrete topics in display order.
func Known() []Topic {
	out := make([]Topic, len(known))
	copy(out, known)
	return out
}

// All returns the mixed topic followed by the known topics.
func All() []Topic {
	return append([]Topic{mixed}, Known()...)
}

// IsKnown reports whether id is one of the concrete topics.
func IsKnown(id ID) bool {
	for _, t := range known {
		if t.ID == id {
			return true
		}
	}
	return false
}

// Lookup resolves an id to a Topic. Unknown ids become free-text topics
// whose label and prompt are the id itself.
func Lookup(id ID) Topic {
	norm := ID(strings.ToLower(strings.TrimSpace(string(id))))
	if norm == Mixed {
		return mixed
	}
	for _, t := range known {
		if t.ID == norm {
			return t
		}
	}
	label := strings.TrimSpace(string(id))
	if label != "" {
		label = strings.ToUpper(label[:1]) + label[1:]
	}
	return Topic{ID: id, Label: label, Prompt: strings.TrimSpace(string(id))}
}
