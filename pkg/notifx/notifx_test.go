package notifx_test

import (
	"context"
	"strings"
	"testing"

	"github.com/casedesk/casedesk/pkg/errx"
	"github.com/casedesk/casedesk/pkg/notifx"
)

// fakeSender records every message handed to it.
type fakeSender struct {
	sent []notifx.Message
}

func (f *fakeSender) Send(_ context.Context, msg notifx.Message) error {
	f.sent = append(f.sent, msg)
	return nil
}

func TestClient_SendFillsDefaultFrom(t *testing.T) {
	provider := &fakeSender{}
	client := notifx.NewClient(provider, "noreply@example.com")

	err := client.Send(context.Background(), notifx.Message{
		To:      []string{"ops@example.com"},
		Subject: "hello",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.sent[0].From != "noreply@example.com" {
		t.Fatalf("default sender not applied: %+v", provider.sent[0])
	}
}

func TestClient_SendRejectsMissingRecipients(t *testing.T) {
	client := notifx.NewClient(&fakeSender{}, "noreply@example.com")

	err := client.Send(context.Background(), notifx.Message{Subject: "hello"})
	var xerr *errx.Error
	if !errx.As(err, &xerr) || xerr.Type != errx.TypeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestClient_SendTemplatedRendersHTMLBody(t *testing.T) {
	provider := &fakeSender{}
	client := notifx.NewClient(provider, "noreply@example.com")

	if err := client.RegisterTemplate("greeting", "<p>こんにちは {{.Name}} さん</p>"); err != nil {
		t.Fatalf("register: %v", err)
	}

	err := client.SendTemplated(context.Background(), "greeting",
		map[string]string{"Name": "山田"},
		notifx.Message{To: []string{"ops@example.com"}, Subject: "welcome"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(provider.sent[0].HTMLBody, "山田") {
		t.Fatalf("template data not rendered: %q", provider.sent[0].HTMLBody)
	}
}

func TestClient_SendTemplatedUnknownTemplate(t *testing.T) {
	client := notifx.NewClient(&fakeSender{}, "noreply@example.com")

	err := client.SendTemplated(context.Background(), "missing", nil,
		notifx.Message{To: []string{"ops@example.com"}, Subject: "welcome"})
	var xerr *errx.Error
	if !errx.As(err, &xerr) || xerr.Type != errx.TypeNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestClient_RegisterTemplateParseError(t *testing.T) {
	client := notifx.NewClient(&fakeSender{}, "noreply@example.com")

	if err := client.RegisterTemplate("broken", "{{.Name"); err == nil {
		t.Fatal("expected parse error")
	}
}
