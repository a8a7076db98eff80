package server

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/shirakawa-dev/denpyo/constants"
	"github.com/shirakawa-dev/denpyo/internal/common"
	"github.com/shirakawa-dev/denpyo/internal/normalize"
)

func (s *Server) registerRoutes() {
	// health endpoint: checks DB connectivity
	s.app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if s.db != nil {
			if err := s.db.PingContext(ctx); err != nil {
				return writeError(c, fiber.StatusServiceUnavailable, "dependency unavailable")
			}
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	})

	// simple liveness probe
	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	v1 := s.app.Group("/v1")
	v1.Post("/documents/normalize", s.handleNormalize)
	v1.Get("/documents/export", s.handleExport)
	v1.Get("/documents/:id", s.handleGetDocument)
	v1.Get("/documents", s.handleListDocuments)
}

// handleNormalize ingests one raw OCR analyze result. The body is the
// engine's JSON verbatim; doc_type, tax_rate and notes hints ride on the
// query string. The response is the normalization result; partial
// extractions still persist and still return 200 with success=true.
func (s *Server) handleNormalize(c *fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return writeError(c, fiber.StatusBadRequest, "request body is required")
	}

	opts := normalize.Options{}
	if dt := c.Query("doc_type"); dt != "" {
		parsed, ok := constants.ParseDocType(dt)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "unknown doc_type: "+dt)
		}
		opts.DocType = parsed
	}
	if tr := c.Query("tax_rate"); tr != "" {
		v, err := strconv.ParseFloat(tr, 64)
		if err != nil || v < 0 {
			return writeError(c, fiber.StatusBadRequest, "invalid tax_rate: "+tr)
		}
		opts.TaxRate = v
	}
	if notes := c.Query("notes"); notes != "" {
		opts.ExtraNotes = strings.Split(notes, ",")
	}

	result, err := s.pipe.Run(c.UserContext(), body, opts)
	if err != nil {
		s.logger.Error("normalize request failed", "err", err)
		return writeError(c, fiber.StatusInternalServerError, "normalize: "+err.Error())
	}
	if s.metrics != nil && result.Data != nil {
		s.metrics.CountNormalized(string(result.Data.DocType), string(result.Data.Status))
	}

	status := fiber.StatusOK
	if !result.Success {
		status = fiber.StatusUnprocessableEntity
	}
	return c.Status(status).JSON(result)
}

func (s *Server) handleGetDocument(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "invalid id format")
	}
	doc, err := s.docsRepo.GetByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return writeError(c, fiber.StatusNotFound, "document not found")
		}
		s.logger.Error("get document failed", "id", id, "err", err)
		return writeError(c, fiber.StatusInternalServerError, "internal server error")
	}
	return c.JSON(fiber.Map{"success": true, "data": doc})
}

func (s *Server) handleListDocuments(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "50"))
	if err != nil || limit < 0 {
		return writeError(c, fiber.StatusBadRequest, "invalid limit")
	}
	offset, err := strconv.Atoi(c.Query("offset", "0"))
	if err != nil || offset < 0 {
		return writeError(c, fiber.StatusBadRequest, "invalid offset")
	}
	from, to, err := parseDateWindow(c.Query("from"), c.Query("to"))
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}

	docs, err := s.docsRepo.List(c.UserContext(), from, to, limit, offset)
	if err != nil {
		s.logger.Error("list documents failed", "err", err)
		return writeError(c, fiber.StatusInternalServerError, "internal server error")
	}
	return c.JSON(fiber.Map{"success": true, "data": docs})
}

func (s *Server) handleExport(c *fiber.Ctx) error {
	from, to, err := parseDateWindow(c.Query("from"), c.Query("to"))
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}
	buf, err := s.exporter.ExportDocumentsXLSX(c.UserContext(), from, to)
	if err != nil {
		s.logger.Error("export failed", "err", err)
		return writeError(c, fiber.StatusInternalServerError, "internal server error")
	}
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="documents.xlsx"`)
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return c.Send(buf)
}

func parseDateWindow(fromStr, toStr string) (from, to *time.Time, err error) {
	parse := func(s string) (*time.Time, error) {
		if s == "" {
			return nil, nil
		}
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, errors.New("invalid date " + strconv.Quote(s) + ", want YYYY-MM-DD")
		}
		return &t, nil
	}
	if from, err = parse(fromStr); err != nil {
		return nil, nil, err
	}
	if to, err = parse(toStr); err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

// writeError renders the failure envelope shared by all routes.
func writeError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"errors":  []string{message},
	})
}
