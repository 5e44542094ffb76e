package notifxconsole

import (
	"context"
	"strings"

	"github.com/casedesk/casedesk/pkg/logx"
	"github.com/casedesk/casedesk/pkg/notifx"
)

// ConsoleProvider prints notifications to the terminal via logx. Intended
// for development and testing.
type ConsoleProvider struct{}

// NewConsoleProvider creates a new console notification provider.
func NewConsoleProvider() *ConsoleProvider {
	return &ConsoleProvider{}
}

// Send logs the message details instead of delivering it.
func (p *ConsoleProvider) Send(_ context.Context, msg notifx.Message) error {
	logx.WithFields(logx.LevelInfo, "notifx/console: message sent (dev mode)", logx.Fields{
		"from":    msg.From,
		"to":      strings.Join(msg.To, ", "),
		"subject": msg.Subject,
	})

	if msg.TextBody != "" {
		logx.Debugf("notifx/console: text body:\n%s", msg.TextBody)
	}
	if msg.HTMLBody != "" {
		logx.Debugf("notifx/console: html body:\n%s", msg.HTMLBody)
	}

	return nil
}
