package contact

import (
	"strings"
	"time"

	"github.com/casedesk/casedesk/pkg/errx"
)

var contactErrors = errx.NewRegistry("CONTACT")

var (
	CodeInquiryNotFound = contactErrors.Register("INQUIRY_NOT_FOUND", errx.TypeNotFound, 404, "Inquiry not found")
	CodeInvalidInquiry  = contactErrors.Register("INVALID_INQUIRY", errx.TypeValidation, 400, "Invalid inquiry")
)

// ErrInquiryNotFound creates an inquiry not found error.
func ErrInquiryNotFound() *errx.Error {
	return contactErrors.New(CodeInquiryNotFound)
}

// ErrInvalidInquiry creates an invalid inquiry error.
func ErrInvalidInquiry() *errx.Error {
	return contactErrors.New(CodeInvalidInquiry)
}

// Inquiry is a message submitted through the contact form.
type Inquiry struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Validate checks that all required fields are present.
func (i *Inquiry) Validate() error {
	missing := []string{}
	if strings.TrimSpace(i.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(i.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(i.Message) == "" {
		missing = append(missing, "message")
	}
	if len(missing) > 0 {
		return ErrInvalidInquiry().WithDetail("missing", strings.Join(missing, ", "))
	}
	return nil
}
