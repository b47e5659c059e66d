// Package conversation turns a rendered transcript container into labeled
// Markdown messages, one per speaker turn.
package conversation

import (
	"github.com/gaurav-prasanna/chatexport/core/dom"
)

// Role identifies the speaker of a turn.
type Role int

const (
	User Role = iota + 1
	Assistant
)

func (r Role) String() string {
	switch r {
	case User:
		return "user"
	case Assistant:
		return "assistant"
	default:
		return "unknown"
	}
}

// MarshalText encodes the role by name in JSON and YAML output.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// ParseRole maps a turn-marker value to a Role.
func ParseRole(s string) (Role, bool) {
	switch s {
	case "user":
		return User, true
	case "assistant":
		return Assistant, true
	default:
		return 0, false
	}
}

// Locator picks the content root out of a turn node, or returns nil.
type Locator func(turn *dom.Node) *dom.Node

// SelectorLocator returns a Locator yielding the first descendant matching sel.
func SelectorLocator(sel dom.Selector) Locator {
	return func(turn *dom.Node) *dom.Node {
		return turn.Find(sel)
	}
}

// Strategy is how one role is located and labeled.
type Strategy struct {
	Label  string
	Locate Locator
}

// Strategies maps each role to its strategy. User and assistant turns render
// through different markup, so their locators are not interchangeable.
type Strategies map[Role]Strategy

const (
	// TurnAttribute marks a node as one speaker turn; its value is the role.
	TurnAttribute = "data-message-author-role"

	// UserSelector and AssistantSelector locate the message body inside a turn.
	UserSelector      = ".whitespace-pre-wrap"
	AssistantSelector = ".markdown.prose"
)

// DefaultStrategies returns the strategy table for ChatGPT transcripts.
func DefaultStrategies() Strategies {
	return Strategies{
		User: {
			Label:  "### User",
			Locate: SelectorLocator(dom.MustCompile(UserSelector)),
		},
		Assistant: {
			Label:  "### ChatGPT",
			Locate: SelectorLocator(dom.MustCompile(AssistantSelector)),
		},
	}
}
