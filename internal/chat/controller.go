// Package chat drives one chat session: it takes user input, exchanges it
// with the proxy, renders both sides and records completed turns.
package chat

import (
	"context"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"rehnuma-chat/internal/conversation"
	"rehnuma-chat/internal/models"
	"rehnuma-chat/internal/render"
)

// GenericErrorMessage is shown for every failed exchange, whatever the cause.
const GenericErrorMessage = "**Error:** Sorry, I encountered a connection issue. Please try again."

const WelcomeMessage = `✨ Hello! I'm Rehnuma, your AI assistant powered by Gemini.

**I Support:**
• Full assistant capabilities
• CV writing assistance
• Guide about admissions, opportunities and scholarships
• Markdown formatting
• Code syntax highlighting

How can I help you today?`

const InfoText = `Rehnuma forwards your messages to Google Gemini through the Rehnuma server.
Your last five exchanges are sent along as context. History is stored locally
and can be cleared at any time with /reset.`

// State of a single submission.
type State int

const (
	Idle State = iota
	AwaitingResponse
	Delivered
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingResponse:
		return "awaiting_response"
	case Delivered:
		return "delivered"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Proxy is the chat endpoint as seen by the controller.
type Proxy interface {
	Chat(ctx context.Context, message string, history []models.Turn) (*models.ChatResponse, error)
}

// Exchange is the outcome of one Submit call. Turn is set only when State is Delivered.
type Exchange struct {
	Input string
	State State
	Turn  *models.Turn
	Err   error
}

type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Message is one rendered entry in the chat box.
type Message struct {
	Role Role
	Text string
}

// Controller is safe for concurrent use. Overlapping submissions are not
// queued or cancelled; each renders its reply when its own exchange ends.
type Controller struct {
	store   *conversation.Store
	surface render.Surface
	proxy   Proxy
	logger  *log.Logger
	now     func() time.Time

	mu       sync.Mutex
	view     ViewState
	rendered []Message
}

func NewController(store *conversation.Store, surface render.Surface, proxy Proxy, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Controller{
		store:   store,
		surface: surface,
		proxy:   proxy,
		logger:  logger,
		now:     time.Now,
	}
}

// Start renders the welcome message followed by the most recent restored turns.
func (c *Controller) Start(ctx context.Context) {
	c.showBot(WelcomeMessage)
	for _, turn := range c.store.Restore(ctx) {
		if turn.User != "" {
			c.showUser(turn.User)
		}
		if turn.Bot != "" {
			c.showBot(turn.Bot)
		}
	}
}

// Submit runs one exchange to completion. Blank input is declined without
// rendering anything or contacting the proxy.
func (c *Controller) Submit(ctx context.Context, input string) Exchange {
	text := strings.TrimSpace(input)
	if text == "" {
		return Exchange{Input: input, State: Idle}
	}

	c.showUser(text)
	typing := c.surface.ShowTyping()

	history := c.store.Window(conversation.ContextTurns)
	resp, err := c.proxy.Chat(ctx, text, history)
	typing.Remove()

	if err != nil {
		c.logger.Printf("Chat error: %v", err)
		c.showBot(failureText(resp))
		return Exchange{Input: text, State: Failed, Err: err}
	}

	c.showBot(resp.Response)
	turn := models.Turn{
		User:      text,
		Bot:       resp.Response,
		Timestamp: models.Timestamp(c.now()),
	}
	c.store.Append(ctx, turn)

	return Exchange{Input: text, State: Delivered, Turn: &turn}
}

// failureText prefers the message the server wrote for display, such as the
// missing API key notice. Transport and decode failures carry no body.
func failureText(resp *models.ChatResponse) string {
	if resp != nil && strings.TrimSpace(resp.Response) != "" {
		return resp.Response
	}
	return GenericErrorMessage
}

// Reset wipes the chat box and the stored conversation, then greets again.
func (c *Controller) Reset(ctx context.Context) {
	c.mu.Lock()
	c.rendered = nil
	c.view.MenuOpen = false
	c.mu.Unlock()

	c.surface.Clear()
	c.store.Clear(ctx)
	c.showBot(WelcomeMessage)
}

// Rendered returns a copy of every message currently in the chat box.
func (c *Controller) Rendered() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.rendered))
	copy(out, c.rendered)
	return out
}

func (c *Controller) showUser(text string) {
	c.record(RoleUser, text)
	c.surface.ShowUser(text)
}

func (c *Controller) showBot(text string) {
	c.record(RoleBot, text)
	c.surface.ShowBot(text)
}

func (c *Controller) record(role Role, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rendered = append(c.rendered, Message{Role: role, Text: text})
}
