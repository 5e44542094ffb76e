package questionnaireapi

import (
	"github.com/casedesk/casedesk/pkg/errx"
	"github.com/casedesk/casedesk/pkg/kernel"
	"github.com/casedesk/casedesk/pkg/questionnaire/questionnairesrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers exposes the question bank and per-case answers over HTTP.
type Handlers struct {
	svc *questionnairesrv.Service
}

// NewHandlers creates the questionnaire HTTP handlers.
func NewHandlers(svc *questionnairesrv.Service) *Handlers {
	return &Handlers{svc: svc}
}

// RegisterRoutes mounts the questionnaire routes.
func (h *Handlers) RegisterRoutes(app *fiber.App) {
	questions := app.Group("/api/v1/questions")
	questions.Get("/", h.listQuestions)
	questions.Get("/categories", h.categories)
	questions.Get("/:id", h.getQuestion)

	answers := app.Group("/api/v1/cases/:caseId/answers")
	answers.Get("/", h.listAnswers)
	answers.Put("/:questionId", h.answer)
}

func (h *Handlers) listQuestions(c *fiber.Ctx) error {
	questions, err := h.svc.ListQuestions(c.Context(), c.Query("category"))
	if err != nil {
		return err
	}
	return c.JSON(questions)
}

func (h *Handlers) categories(c *fiber.Ctx) error {
	categories, err := h.svc.Categories(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(categories)
}

func (h *Handlers) getQuestion(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return errx.Validation("invalid question id")
	}
	question, err := h.svc.GetQuestion(c.Context(), int64(id))
	if err != nil {
		return err
	}
	return c.JSON(question)
}

func (h *Handlers) listAnswers(c *fiber.Ctx) error {
	caseID, err := parseCaseID(c)
	if err != nil {
		return err
	}
	answers, err := h.svc.ListAnswers(c.Context(), caseID)
	if err != nil {
		return err
	}
	return c.JSON(answers)
}

func (h *Handlers) answer(c *fiber.Ctx) error {
	caseID, err := parseCaseID(c)
	if err != nil {
		return err
	}
	questionID, err := c.ParamsInt("questionId")
	if err != nil || questionID <= 0 {
		return errx.Validation("invalid question id")
	}

	var body struct {
		Value string `json:"value"`
	}
	if err := c.BodyParser(&body); err != nil {
		return errx.Validation("invalid answer body")
	}

	answer, err := h.svc.Answer(c.Context(), caseID, int64(questionID), body.Value)
	if err != nil {
		return err
	}
	return c.JSON(answer)
}

func parseCaseID(c *fiber.Ctx) (kernel.CaseID, error) {
	id, err := c.ParamsInt("caseId")
	if err != nil || id <= 0 {
		return kernel.CaseID(0), errx.Validation("invalid case id")
	}
	return kernel.NewCaseID(int64(id)), nil
}
