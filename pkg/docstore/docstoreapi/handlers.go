package docstoreapi

import (
	"io"

	"github.com/casedesk/casedesk/pkg/docstore"
	"github.com/casedesk/casedesk/pkg/docstore/docstoresrv"
	"github.com/casedesk/casedesk/pkg/errx"
	"github.com/casedesk/casedesk/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

// Handlers exposes the document store over HTTP.
type Handlers struct {
	svc *docstoresrv.Service
}

// NewHandlers creates the document HTTP handlers.
func NewHandlers(svc *docstoresrv.Service) *Handlers {
	return &Handlers{svc: svc}
}

// RegisterRoutes mounts the document routes under /api/v1/documents.
func (h *Handlers) RegisterRoutes(app *fiber.App) {
	docs := app.Group("/api/v1/documents")
	docs.Post("/", h.upload)
	docs.Get("/", h.list)
	docs.Get("/:id", h.get)
	docs.Delete("/:id", h.delete)
	docs.Post("/:id/extract", h.extract)
	docs.Post("/:id/result", h.saveResult)
}

func (h *Handlers) upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return errx.Validation("file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errx.Wrap(err, "failed to open uploaded file", errx.TypeInternal)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return errx.Wrap(err, "failed to read uploaded file", errx.TypeInternal)
	}

	record, err := h.svc.Upload(c.Context(), fileHeader.Filename, data,
		c.FormValue("want_to_read"), c.FormValue("label"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

func (h *Handlers) list(c *fiber.Ctx) error {
	filter := docstore.Filter{
		Label:       c.Query("label"),
		PendingOnly: c.QueryBool("pending", false),
	}
	records, err := h.svc.List(c.Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(records)
}

func (h *Handlers) get(c *fiber.Ctx) error {
	id, err := recordID(c)
	if err != nil {
		return err
	}
	record, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(record)
}

func (h *Handlers) delete(c *fiber.Ctx) error {
	id, err := recordID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handlers) extract(c *fiber.Ctx) error {
	id, err := recordID(c)
	if err != nil {
		return err
	}

	var req docstoresrv.ExtractRequest
	if err := c.BodyParser(&req); err != nil {
		return errx.Validation("invalid extract request body")
	}

	batch, err := h.svc.Extract(c.Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(batch)
}

func (h *Handlers) saveResult(c *fiber.Ctx) error {
	id, err := recordID(c)
	if err != nil {
		return err
	}

	var req struct {
		Provider string `json:"provider"`
	}
	if err := c.BodyParser(&req); err != nil {
		return errx.Validation("invalid result request body")
	}

	record, err := h.svc.SaveResult(c.Context(), id, req.Provider)
	if err != nil {
		return err
	}
	return c.JSON(record)
}

func recordID(c *fiber.Ctx) (kernel.RecordID, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return kernel.RecordID(0), errx.Validation("invalid record id")
	}
	return kernel.NewRecordID(int64(id)), nil
}
