package contactapi

import (
	"github.com/casedesk/casedesk/pkg/contact"
	"github.com/casedesk/casedesk/pkg/contact/contactsrv"
	"github.com/casedesk/casedesk/pkg/errx"
	"github.com/gofiber/fiber/v2"
)

// Handlers exposes the contact form over HTTP.
type Handlers struct {
	svc *contactsrv.Service
}

// NewHandlers creates the contact HTTP handlers.
func NewHandlers(svc *contactsrv.Service) *Handlers {
	return &Handlers{svc: svc}
}

// RegisterRoutes mounts the contact routes under /api/v1/inquiries.
func (h *Handlers) RegisterRoutes(app *fiber.App) {
	inquiries := app.Group("/api/v1/inquiries")
	inquiries.Post("/", h.submit)
	inquiries.Get("/", h.list)
	inquiries.Get("/:id", h.get)
}

func (h *Handlers) submit(c *fiber.Ctx) error {
	var body contact.Inquiry
	if err := c.BodyParser(&body); err != nil {
		return errx.Validation("invalid inquiry body")
	}

	created, err := h.svc.Submit(c.Context(), body)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handlers) list(c *fiber.Ctx) error {
	inquiries, err := h.svc.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(inquiries)
}

func (h *Handlers) get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return errx.Validation("invalid inquiry id")
	}
	inquiry, err := h.svc.Get(c.Context(), int64(id))
	if err != nil {
		return err
	}
	return c.JSON(inquiry)
}
