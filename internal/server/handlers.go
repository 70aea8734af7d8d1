package server

import (
	"github.com/Soubhagyabehera/easyapply/internal/api"
	"github.com/Soubhagyabehera/easyapply/internal/docs"
	"github.com/Soubhagyabehera/easyapply/internal/errors"
	"github.com/Soubhagyabehera/easyapply/internal/listing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func (s *Server) handleListJobs(c *fiber.Ctx) error {
	snapshot := s.listing.Visible()
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   snapshot,
	})
}

func (s *Server) handleRefresh(c *fiber.Ctx) error {
	query := listing.ListQuery{
		Location:     c.Query("location"),
		Organization: c.Query("organization"),
		Department:   c.Query("department"),
	}
	if err := s.listing.Refresh(c.Context(), query); err != nil {
		// The previous collection is still intact; the caller may
		// simply retry this endpoint.
		return s.renderError(c, err)
	}
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   s.listing.Visible(),
	})
}

func (s *Server) handleReveal(c *fiber.Ctx) error {
	s.listing.Reveal()
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   s.listing.Visible(),
	})
}

func (s *Server) handleSetFilters(c *fiber.Ctx) error {
	var state listing.FilterState
	if err := c.BodyParser(&state); err != nil {
		return s.renderError(c, errors.InvalidInput("invalid filter payload", err))
	}
	s.listing.SetFilter(state)
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   s.listing.Visible(),
	})
}

func (s *Server) handleSetSort(c *fiber.Ctx) error {
	var body struct {
		Key string `json:"key"`
	}
	if err := c.BodyParser(&body); err != nil {
		return s.renderError(c, errors.InvalidInput("invalid sort payload", err))
	}
	key, ok := listing.ParseSortKey(body.Key)
	if !ok {
		return s.renderError(c, errors.InvalidInput("unknown sort key: "+body.Key, nil))
	}
	s.listing.SetSort(key)
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   s.listing.Visible(),
	})
}

func (s *Server) handleCategories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   s.listing.CategoryCounts(),
	})
}

func (s *Server) handleGetJob(c *fiber.Ctx) error {
	record, err := s.jobs.Get(c.Context(), c.Params("id"))
	if err != nil {
		return s.renderError(c, err)
	}
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   record,
	})
}

func (s *Server) handleCreateManual(c *fiber.Ctx) error {
	var draft api.JobDraft
	if err := c.BodyParser(&draft); err != nil {
		return s.renderError(c, errors.InvalidInput("invalid job payload", err))
	}

	record, err := s.jobs.CreateManual(c.Context(), draft)
	if err != nil {
		return s.renderError(c, err)
	}

	if err := s.events.PublishJobCreated(c.Context(), record); err != nil {
		// Best-effort: the job exists either way.
		s.logger.Warn("failed to publish job-created event", zap.Error(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   record,
	})
}

// handleTool forwards a multipart upload to the named document tool.
// Files and string fields pass through untouched.
func (s *Server) handleTool(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return s.renderError(c, errors.InvalidInput("multipart form required", err))
	}

	var files []docs.File
	for field, headers := range form.File {
		for _, header := range headers {
			f, err := header.Open()
			if err != nil {
				return s.renderError(c, errors.InvalidInput("unreadable upload: "+header.Filename, err))
			}
			defer f.Close()
			files = append(files, docs.File{
				Field: field,
				Name:  header.Filename,
				Data:  f,
			})
		}
	}

	params := make(map[string]string, len(form.Value))
	for key, values := range form.Value {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}

	result, err := s.tools.Forward(c.Context(), c.Params("tool"), files, params)
	if err != nil {
		return s.renderError(c, err)
	}

	if result.ContentType != "" {
		c.Set(fiber.HeaderContentType, result.ContentType)
	}
	if result.FileName != "" {
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+result.FileName+`"`)
	}
	return c.Send(result.Body)
}
