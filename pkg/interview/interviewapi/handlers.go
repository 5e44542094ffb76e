package interviewapi

import (
	"github.com/casedesk/casedesk/pkg/errx"
	"github.com/casedesk/casedesk/pkg/interview"
	"github.com/casedesk/casedesk/pkg/kernel"
	"github.com/casedesk/casedesk/pkg/questionnaire/questionnairesrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers exposes interview transcript processing over HTTP.
type Handlers struct {
	svc           *interview.Service
	questionnaire *questionnairesrv.Service
}

// NewHandlers creates the interview HTTP handlers.
func NewHandlers(svc *interview.Service, questionnaire *questionnairesrv.Service) *Handlers {
	return &Handlers{svc: svc, questionnaire: questionnaire}
}

// RegisterRoutes mounts transcript formatting plus the case-scoped summary
// and categorization routes.
func (h *Handlers) RegisterRoutes(app *fiber.App) {
	app.Post("/api/v1/interview/format", h.format)

	cases := app.Group("/api/v1/cases/:caseId")
	cases.Post("/summary", h.summarize)
	cases.Get("/summaries", h.listSummaries)
	cases.Post("/categorize", h.categorize)
}

type transcriptRequest struct {
	Text string `json:"text"`
}

func (h *Handlers) format(c *fiber.Ctx) error {
	var req transcriptRequest
	if err := c.BodyParser(&req); err != nil {
		return errx.Validation("invalid transcript body")
	}

	formatted := h.svc.FormatConversation(c.Context(), req.Text)
	return c.JSON(fiber.Map{"formatted_text": formatted})
}

// summarize runs the chunked summary pipeline and stores the result on the
// case.
func (h *Handlers) summarize(c *fiber.Ctx) error {
	caseID, err := parseCaseID(c)
	if err != nil {
		return err
	}

	var req transcriptRequest
	if err := c.BodyParser(&req); err != nil {
		return errx.Validation("invalid transcript body")
	}

	record, err := h.svc.SummarizeCase(c.Context(), caseID, req.Text)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

func (h *Handlers) listSummaries(c *fiber.Ctx) error {
	caseID, err := parseCaseID(c)
	if err != nil {
		return err
	}

	records, err := h.svc.ListSummaries(c.Context(), caseID)
	if err != nil {
		return err
	}
	return c.JSON(records)
}

// categorize classifies a transcript into the questionnaire's categories.
// The result is returned to the caller; answers are only written through
// the explicit answer routes.
func (h *Handlers) categorize(c *fiber.Ctx) error {
	if _, err := parseCaseID(c); err != nil {
		return err
	}

	var req transcriptRequest
	if err := c.BodyParser(&req); err != nil {
		return errx.Validation("invalid transcript body")
	}

	categories, err := h.questionnaire.Categories(c.Context())
	if err != nil {
		return err
	}

	result, err := h.svc.Categorize(c.Context(), req.Text, categories)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func parseCaseID(c *fiber.Ctx) (kernel.CaseID, error) {
	id, err := c.ParamsInt("caseId")
	if err != nil || id <= 0 {
		return kernel.CaseID(0), errx.Validation("invalid case id")
	}
	return kernel.NewCaseID(int64(id)), nil
}
