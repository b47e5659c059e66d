package conversation

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gaurav-prasanna/chatexport/core/dom"
	"github.com/gaurav-prasanna/chatexport/core/markdown"
	"github.com/gaurav-prasanna/chatexport/core/normalize"
)

// NoContent is the whole document when no turn survives extraction.
const NoContent = "No conversation content found."

const separator = "\n\n---\n\n"

// Turn is one speaker turn whose content root was found.
// Index is the 1-based position among all turn markers, dropped ones included.
type Turn struct {
	Role    Role
	Index   int
	Content *dom.Node
}

// Message is a rendered turn.
type Message struct {
	Role     Role   `json:"role" yaml:"role"`
	Index    int    `json:"index" yaml:"index"`
	Label    string `json:"label" yaml:"label"`
	Markdown string `json:"markdown" yaml:"markdown"`
}

// Block formats the message as a headed Markdown block.
func (m Message) Block() string {
	return m.Label + " Message " + strconv.Itoa(m.Index) + "\n\n" + m.Markdown
}

// Config configures an Extractor. Zero fields take defaults.
type Config struct {
	// TurnAttribute is the attribute that marks turn nodes (default data-message-author-role).
	TurnAttribute string

	// Strategies locates and labels each role (default DefaultStrategies()).
	Strategies Strategies

	// Serializer renders content roots.
	Serializer markdown.Serializer

	// Logger receives a debug record for every dropped turn.
	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.TurnAttribute == "" {
		c.TurnAttribute = TurnAttribute
	}
	if c.Strategies == nil {
		c.Strategies = DefaultStrategies()
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Extractor walks a conversation container and renders its turns.
type Extractor struct {
	cfg     Config
	markers dom.Selector
	logger  *slog.Logger
}

// New creates an Extractor.
func New(cfg Config) (*Extractor, error) {
	cfg.defaults()
	markers, err := dom.Compile("[" + cfg.TurnAttribute + "]")
	if err != nil {
		return nil, fmt.Errorf("turn attribute %q: %w", cfg.TurnAttribute, err)
	}
	return &Extractor{cfg: cfg, markers: markers, logger: cfg.Logger}, nil
}

// Turns enumerates the turn markers under container in document order and
// resolves each one's content root. Turns with an unknown role or no content
// root are dropped, but still consume their index.
func (e *Extractor) Turns(container *dom.Node) []Turn {
	var turns []Turn
	for i, marker := range container.FindAll(e.markers) {
		index := i + 1
		value, _ := marker.Attr(e.cfg.TurnAttribute)

		role, ok := ParseRole(value)
		strategy, known := e.cfg.Strategies[role]
		if !ok || !known || strategy.Locate == nil {
			e.logger.Debug("dropping turn", "index", index, "role", value, "reason", "unsupported role")
			continue
		}
		content := strategy.Locate(marker)
		if content == nil {
			e.logger.Debug("dropping turn", "index", index, "role", value, "reason", "content root not found")
			continue
		}
		turns = append(turns, Turn{Role: role, Index: index, Content: content})
	}
	return turns
}

// Messages renders every surviving turn. Each content root starts at list level zero.
func (e *Extractor) Messages(container *dom.Node) ([]Message, error) {
	turns := e.Turns(container)
	msgs := make([]Message, 0, len(turns))
	for _, t := range turns {
		md, err := e.cfg.Serializer.Render(t.Content, markdown.Context{})
		if err != nil {
			return nil, fmt.Errorf("rendering message %d: %w", t.Index, err)
		}
		msgs = append(msgs, Message{
			Role:     t.Role,
			Index:    t.Index,
			Label:    e.cfg.Strategies[t.Role].Label,
			Markdown: strings.TrimSpace(md),
		})
	}
	e.logger.Debug("extracted conversation", "messages", len(msgs))
	return msgs, nil
}

// Document renders container as one normalized Markdown document.
func (e *Extractor) Document(container *dom.Node) (string, error) {
	msgs, err := e.Messages(container)
	if err != nil {
		return "", err
	}
	return Assemble(msgs), nil
}

// Assemble joins message blocks with thematic breaks and normalizes the result.
// An empty conversation yields NoContent.
func Assemble(msgs []Message) string {
	if len(msgs) == 0 {
		return NoContent
	}
	blocks := make([]string, len(msgs))
	for i, m := range msgs {
		blocks[i] = m.Block()
	}
	return normalize.Whitespace(strings.Join(blocks, separator))
}
