package casefileapi

import (
	"github.com/casedesk/casedesk/pkg/casefile"
	"github.com/casedesk/casedesk/pkg/casefile/casefilesrv"
	"github.com/casedesk/casedesk/pkg/errx"
	"github.com/casedesk/casedesk/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

// Handlers exposes case management over HTTP.
type Handlers struct {
	svc *casefilesrv.Service
}

// NewHandlers creates the case HTTP handlers.
func NewHandlers(svc *casefilesrv.Service) *Handlers {
	return &Handlers{svc: svc}
}

// RegisterRoutes mounts the case routes under /api/v1/cases.
func (h *Handlers) RegisterRoutes(app *fiber.App) {
	cases := app.Group("/api/v1/cases")
	cases.Post("/", h.create)
	cases.Get("/", h.list)
	cases.Get("/:id", h.get)
	cases.Put("/:id", h.update)
	cases.Delete("/:id", h.delete)
}

func (h *Handlers) create(c *fiber.Ctx) error {
	var body casefile.Case
	if err := c.BodyParser(&body); err != nil {
		return errx.Validation("invalid case body")
	}

	created, err := h.svc.Create(c.Context(), body)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handlers) list(c *fiber.Ctx) error {
	filter := casefile.Filter{
		CompanyName: c.Query("company_name"),
		CIFName:     c.Query("cif_name"),
		CaseType:    c.Query("case_type"),
		FAName:      c.Query("fa_name"),
		StaffName:   c.Query("staff_name"),
	}
	page := kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 20),
	}
	cases, err := h.svc.List(c.Context(), filter, page)
	if err != nil {
		return err
	}
	return c.JSON(cases)
}

func (h *Handlers) get(c *fiber.Ctx) error {
	id, err := caseID(c)
	if err != nil {
		return err
	}
	found, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(found)
}

func (h *Handlers) update(c *fiber.Ctx) error {
	id, err := caseID(c)
	if err != nil {
		return err
	}

	var body casefile.Case
	if err := c.BodyParser(&body); err != nil {
		return errx.Validation("invalid case body")
	}

	updated, err := h.svc.Update(c.Context(), id, body)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

func (h *Handlers) delete(c *fiber.Ctx) error {
	id, err := caseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func caseID(c *fiber.Ctx) (kernel.CaseID, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return kernel.CaseID(0), errx.Validation("invalid case id")
	}
	return kernel.NewCaseID(int64(id)), nil
}
