package notifx

import (
	"bytes"
	"context"
	"html/template"
	"sync"
)

// Sender delivers a single notification message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Client is the main entry point for sending notifications. It validates
// messages, fills in the default sender address, and renders registered
// templates before handing off to the configured provider.
type Client struct {
	provider Sender
	from     string

	mu        sync.RWMutex
	templates map[string]*template.Template
}

// NewClient creates a new notification client. from is used when a message
// does not name its own sender.
func NewClient(provider Sender, from string) *Client {
	return &Client{
		provider:  provider,
		from:      from,
		templates: make(map[string]*template.Template),
	}
}

// Send delivers a message through the configured provider.
func (c *Client) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return notifxErrors.New(ErrInvalidMessage).WithDetail("reason", "no recipients")
	}
	if msg.Subject == "" {
		return notifxErrors.New(ErrInvalidMessage).WithDetail("reason", "empty subject")
	}
	if msg.From == "" {
		msg.From = c.from
	}
	return c.provider.Send(ctx, msg)
}

// RegisterTemplate parses and stores a named html/template. Registering the
// same name again replaces the previous template.
func (c *Client) RegisterTemplate(name, body string) error {
	t, err := template.New(name).Parse(body)
	if err != nil {
		return notifxErrors.NewWithCause(ErrTemplateParse, err).WithDetail("template", name)
	}

	c.mu.Lock()
	c.templates[name] = t
	c.mu.Unlock()

	return nil
}

// SendTemplated renders a registered template into the HTML body and sends
// the message.
func (c *Client) SendTemplated(ctx context.Context, name string, data interface{}, msg Message) error {
	c.mu.RLock()
	t, ok := c.templates[name]
	c.mu.RUnlock()

	if !ok {
		return notifxErrors.New(ErrTemplateNotFound).WithDetail("template", name)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return notifxErrors.NewWithCause(ErrTemplateRender, err).WithDetail("template", name)
	}

	msg.HTMLBody = buf.String()
	return c.Send(ctx, msg)
}
