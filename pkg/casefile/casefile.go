package casefile

import (
	"net/http"
	"strings"
	"time"

	"github.com/casedesk/casedesk/pkg/errx"
	"github.com/casedesk/casedesk/pkg/kernel"
)

var ErrRegistry = errx.NewRegistry("CASEFILE")

var (
	CodeCaseNotFound = ErrRegistry.Register("CASE_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Case not found")
	CodeInvalidCase  = ErrRegistry.Register("INVALID_CASE", errx.TypeValidation, http.StatusBadRequest, "Invalid case data")
)

func ErrCaseNotFound() *errx.Error {
	return ErrRegistry.New(CodeCaseNotFound)
}

func ErrInvalidCase() *errx.Error {
	return ErrRegistry.New(CodeInvalidCase)
}

// Case is one client engagement registered by intake staff.
type Case struct {
	ID           kernel.CaseID `json:"id" db:"id"`
	CompanyName  string        `json:"company_name" db:"company_name"`
	BranchNumber string        `json:"branch_number" db:"branch_number"`
	CIFName      string        `json:"cif_name" db:"cif_name"`
	CaseType     string        `json:"case_type" db:"case_type"`
	FAName       string        `json:"fa_name" db:"fa_name"`
	StaffName    string        `json:"staff_name" db:"staff_name"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" db:"updated_at"`
}

// Validate checks the required intake fields.
func (c *Case) Validate() error {
	missing := []string{}
	for field, value := range map[string]string{
		"company_name":  c.CompanyName,
		"branch_number": c.BranchNumber,
		"cif_name":      c.CIFName,
		"case_type":     c.CaseType,
		"fa_name":       c.FAName,
		"staff_name":    c.StaffName,
	} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return ErrInvalidCase().WithDetail("missing_fields", missing)
	}
	return nil
}

// Filter narrows case listings by per-field substring match.
// Empty fields match everything.
type Filter struct {
	CompanyName string
	CIFName     string
	CaseType    string
	FAName      string
	StaffName   string
}
