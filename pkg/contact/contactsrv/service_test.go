package contactsrv_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/casedesk/casedesk/pkg/contact"
	"github.com/casedesk/casedesk/pkg/contact/contactsrv"
	"github.com/casedesk/casedesk/pkg/notifx"
)

// fakeInquiryRepo is an in-memory InquiryRepository.
type fakeInquiryRepo struct {
	nextID    int64
	inquiries map[int64]contact.Inquiry
}

func newFakeInquiryRepo() *fakeInquiryRepo {
	return &fakeInquiryRepo{nextID: 1, inquiries: make(map[int64]contact.Inquiry)}
}

func (r *fakeInquiryRepo) Create(_ context.Context, inquiry contact.Inquiry) (*contact.Inquiry, error) {
	inquiry.ID = r.nextID
	inquiry.CreatedAt = time.Now()
	r.nextID++
	r.inquiries[inquiry.ID] = inquiry
	return &inquiry, nil
}

func (r *fakeInquiryRepo) FindByID(_ context.Context, id int64) (*contact.Inquiry, error) {
	inquiry, ok := r.inquiries[id]
	if !ok {
		return nil, contact.ErrInquiryNotFound()
	}
	return &inquiry, nil
}

func (r *fakeInquiryRepo) List(_ context.Context) ([]contact.Inquiry, error) {
	out := []contact.Inquiry{}
	for _, inquiry := range r.inquiries {
		out = append(out, inquiry)
	}
	return out, nil
}

// fakeSender records sent messages and can be told to fail.
type fakeSender struct {
	sent []notifx.Message
	err  error
}

func (s *fakeSender) Send(_ context.Context, msg notifx.Message) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

func validInquiry() contact.Inquiry {
	return contact.Inquiry{
		Name:    "山田太郎",
		Email:   "taro@example.com",
		Message: "相続の相談をしたいです。",
	}
}

func TestSubmitPersistsAndNotifies(t *testing.T) {
	repo := newFakeInquiryRepo()
	sender := &fakeSender{}
	notifier := notifx.NewClient(sender, "noreply@casedesk.jp")

	svc, err := contactsrv.NewService(repo, notifier, []string{"staff@casedesk.jp"})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	created, err := svc.Submit(context.Background(), validInquiry())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected assigned inquiry ID")
	}

	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(sender.sent))
	}
	msg := sender.sent[0]
	if msg.From != "noreply@casedesk.jp" {
		t.Fatalf("unexpected from address %q", msg.From)
	}
	if msg.ReplyTo != "taro@example.com" {
		t.Fatalf("unexpected reply-to %q", msg.ReplyTo)
	}
	if !strings.Contains(msg.Subject, "山田太郎") {
		t.Fatalf("subject should carry the sender name, got %q", msg.Subject)
	}
	if !strings.Contains(msg.HTMLBody, "相続の相談をしたいです。") {
		t.Fatal("body should carry the inquiry message")
	}
}

func TestSubmitSurvivesNotificationFailure(t *testing.T) {
	repo := newFakeInquiryRepo()
	notifier := notifx.NewClient(&fakeSender{err: errors.New("ses down")}, "noreply@casedesk.jp")

	svc, err := contactsrv.NewService(repo, notifier, []string{"staff@casedesk.jp"})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	created, err := svc.Submit(context.Background(), validInquiry())
	if err != nil {
		t.Fatalf("submit should not fail on notification error: %v", err)
	}
	if _, err := svc.Get(context.Background(), created.ID); err != nil {
		t.Fatalf("inquiry should be persisted: %v", err)
	}
}

func TestSubmitRejectsBlankMessage(t *testing.T) {
	svc, err := contactsrv.NewService(newFakeInquiryRepo(), nil, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	inquiry := validInquiry()
	inquiry.Message = "  "
	if _, err := svc.Submit(context.Background(), inquiry); err == nil {
		t.Fatal("expected validation error for blank message")
	}
}

func TestSubmitWithoutNotifier(t *testing.T) {
	svc, err := contactsrv.NewService(newFakeInquiryRepo(), nil, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if _, err := svc.Submit(context.Background(), validInquiry()); err != nil {
		t.Fatalf("submit without notifier: %v", err)
	}
}
