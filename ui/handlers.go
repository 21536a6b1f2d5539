package ui

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"payrecon/app"
	"payrecon/domain/core"
	"payrecon/internal/errors"
)

// uploadField is the multipart field carrying the workbook
const uploadField = "workbook"

// RunView is a result as the pages and the JSON API present it
type RunView struct {
	ID          core.RunID `json:"id"`
	DownloadURL string     `json:"download_url"`
	*app.Result
}

func (s *Server) handleIndex(c *gin.Context) {
	s.renderTemplate(c, http.StatusOK, "index.html", gin.H{
		"MaxUploadMB": s.config.MaxUploadBytes >> 20,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"results": s.cache.Len(),
	})
}

// handleReconcile runs an uploaded workbook and renders the result page
func (s *Server) handleReconcile(c *gin.Context) {
	view, err := s.run(c)
	if err != nil {
		status := statusOf(err)
		if status == http.StatusInternalServerError {
			s.logger.Error("reconciliation failed: %v", err)
		}
		s.renderTemplate(c, status, "index.html", gin.H{
			"MaxUploadMB": s.config.MaxUploadBytes >> 20,
			"Error":       messageOf(err),
			"ErrorCode":   errors.CodeOf(err),
		})
		return
	}
	s.renderTemplate(c, http.StatusOK, "result.html", gin.H{"Run": view})
}

// handleAPIReconcile runs an uploaded workbook and returns the result as JSON
func (s *Server) handleAPIReconcile(c *gin.Context) {
	view, err := s.run(c)
	if err != nil {
		s.failJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, Success(view))
}

// handleDownload streams the export workbook of a cached result
func (s *Server) handleDownload(c *gin.Context) {
	id, ok := core.ParseRunID(c.Param("id"))
	if !ok {
		s.failJSON(c, errors.InvalidInput("malformed result id"))
		return
	}
	result, ok := s.cache.Get(id)
	if !ok {
		s.failJSON(c, errors.NotFound(fmt.Sprintf("result %s", id)))
		return
	}

	var buf bytes.Buffer
	if err := s.service.Export(&buf, result); err != nil {
		s.failJSON(c, errors.Wrap(err, "failed to build export"))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", s.config.ExportFilename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// run reads the upload, reconciles it under the concurrency limit and
// caches the result for download
func (s *Server) run(c *gin.Context) (*RunView, error) {
	if s.config.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.config.MaxUploadBytes)
	}

	header, err := c.FormFile(uploadField)
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		return nil, errors.UploadTooLarge(tooLarge.Limit, err)
	}
	if err != nil {
		return nil, &errors.AppError{
			Code:    errors.CodeInvalidInput,
			Message: fmt.Sprintf("expected an xlsx file in form field %q", uploadField),
			Cause:   err,
		}
	}
	file, err := header.Open()
	if err != nil {
		return nil, errors.Wrap(err, "failed to open upload")
	}
	defer file.Close()

	if !s.runs.TryAcquire(1) {
		return nil, errors.Busy("too many reconciliations in progress, try again shortly")
	}
	defer s.runs.Release(1)

	start := time.Now()
	result, err := s.service.ReconcileWorkbook(c.Request.Context(), file)
	if err != nil {
		return nil, err
	}

	id := s.cache.Put(result)
	s.logger.Info("run %s for %q finished in %s", id, header.Filename, time.Since(start).Round(time.Millisecond))
	return &RunView{
		ID:          id,
		DownloadURL: "/download/" + id.String(),
		Result:      result,
	}, nil
}
