// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/talentrankr/internal/export"
	"github.com/pdiddy/talentrankr/internal/ingest"
	"github.com/pdiddy/talentrankr/internal/logger"
	"github.com/pdiddy/talentrankr/internal/rank"
	"github.com/pdiddy/talentrankr/internal/store"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) handleIndex(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "TalentRankr applicant ranking API",
		"endpoints": []string{
			"POST /api/upload",
			"GET /api/rank",
			"GET /api/rank/:id",
			"GET /api/rank/:id/report.xlsx",
			"GET /api/candidate/:rank",
			"GET /health",
		},
	})
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	n, err := s.store.Count(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":  "unhealthy",
			"service": serviceName,
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"service": serviceName,
		"batches": n,
	})
}

func (s *Server) handleUpload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   `no file uploaded: send the applicant file in the "file" form field`,
		})
	}

	if err := ingest.CheckName(fh.Filename); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
	if fh.Size > s.cfg.MaxUploadBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"success": false,
			"error":   fmt.Sprintf("file too large: maximum size is %d bytes", s.cfg.MaxUploadBytes),
		})
	}

	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("opening upload: %w", err)
	}
	defer f.Close()

	raws, err := ingest.Parse(fh.Filename, f, ingest.Limits{MaxBytes: s.cfg.MaxUploadBytes})
	if err != nil {
		return s.uploadError(c, err)
	}

	b := s.engine.Batch(uuid.NewString(), fh.Filename, raws)
	b.CreatedAt = time.Now().UTC()

	session := sessionID(c)
	if err := s.store.Save(c.UserContext(), session, b); err != nil {
		return fmt.Errorf("storing batch: %w", err)
	}
	s.log.Info("batch ranked",
		zap.String(logger.FieldBatchID, b.ID),
		zap.String(logger.FieldFile, b.FileName),
		zap.Int(logger.FieldApplicants, len(b.Cards)),
		zap.String(logger.FieldSession, session),
	)

	return c.Status(fiber.StatusCreated).JSON(uploadResponse{
		Success:    true,
		Message:    fmt.Sprintf("Ranked %d applicants", len(b.Cards)),
		BatchID:    b.ID,
		FileName:   b.FileName,
		Applicants: len(b.Cards),
		Columns:    ingest.RequiredColumns,
		Preview:    previewRows(raws, s.cfg.PreviewRows),
		Links: map[string]string{
			"ranking": "/api/rank/" + b.ID,
			"report":  "/api/rank/" + b.ID + "/report.xlsx",
			"current": "/api/rank",
		},
	})
}

func (s *Server) uploadError(c *fiber.Ctx, err error) error {
	var mce *ingest.MissingColumnsError
	switch {
	case errors.As(err, &mce):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success":          false,
			"error":            err.Error(),
			"missing_columns":  mce.Missing,
			"found_columns":    mce.Found,
			"required_columns": ingest.RequiredColumns,
		})
	case errors.Is(err, ingest.ErrFileTooLarge):
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
}

func (s *Server) handleRanking(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "invalid batch id format",
		})
	}

	b, err := s.store.Get(c.UserContext(), id.String())
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "batch not found",
		})
	}
	if err != nil {
		return err
	}
	return c.JSON(newRankingResponse(b, s.engine.Config().Weights))
}

func (s *Server) handleCurrentRanking(c *fiber.Ctx) error {
	b, err := s.store.Latest(c.UserContext(), sessionID(c))
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(fiber.Map{
			"success": false,
			"message": "No applicants ranked yet. Please upload a file first.",
		})
	}
	if err != nil {
		return err
	}
	return c.JSON(newRankingResponse(b, s.engine.Config().Weights))
}

func (s *Server) handleCandidate(c *fiber.Ctx) error {
	pos, err := strconv.Atoi(c.Params("rank"))
	if err != nil || pos < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "rank must be a positive integer",
		})
	}

	b, err := s.store.Latest(c.UserContext(), sessionID(c))
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "no ranking for this session",
		})
	}
	if err != nil {
		return err
	}

	card, ok := rank.ByRank(b.Cards, pos)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   fmt.Sprintf("no applicant at rank %d (batch has %d)", pos, len(b.Cards)),
		})
	}
	return c.JSON(fiber.Map{
		"success":          true,
		"batch_id":         b.ID,
		"total_applicants": len(b.Cards),
		"applicant":        newApplicantView(card, s.engine.Config().Weights),
	})
}

func (s *Server) handleReport(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid batch id format")
	}
	b, err := s.store.Get(c.UserContext(), id.String())
	if errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "batch not found")
	}
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := export.WriteExcel(&buf, b, s.engine.Config().Weights); err != nil {
		return fmt.Errorf("building report: %w", err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Attachment("talentrankr-" + b.ID + ".xlsx")
	return c.Send(buf.Bytes())
}
