// Package http provides HTTP handlers for uploading, listing, verifying, downloading and
// deleting encrypted exam artifacts.
package http

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	artifactDomain "github.com/allisson/examvault/internal/artifact/domain"
	"github.com/allisson/examvault/internal/artifact/http/dto"
	artifactUseCase "github.com/allisson/examvault/internal/artifact/usecase"
	cryptoDomain "github.com/allisson/examvault/internal/crypto/domain"
	"github.com/allisson/examvault/internal/httputil"
	customValidation "github.com/allisson/examvault/internal/validation"
)

// multipartOverhead is the allowance for form fields and part headers on top of the file.
const multipartOverhead = 1 << 20

// ArtifactHandler handles HTTP requests for the artifact lifecycle.
type ArtifactHandler struct {
	artifactUseCase artifactUseCase.ArtifactUseCase
	maxUploadBytes  int64
	logger          *slog.Logger
}

// NewArtifactHandler creates a new artifact handler. A non-positive maxUploadBytes leaves the
// request body unbounded.
func NewArtifactHandler(
	useCase artifactUseCase.ArtifactUseCase,
	maxUploadBytes int64,
	logger *slog.Logger,
) *ArtifactHandler {
	return &ArtifactHandler{
		artifactUseCase: useCase,
		maxUploadBytes:  maxUploadBytes,
		logger:          logger,
	}
}

// UploadHandler encrypts and stores an uploaded exam paper.
// POST /api/upload - multipart form with file, password, subject and exam_date.
// Returns 201 Created with the new file_id.
func (h *ArtifactHandler) UploadHandler(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+multipartOverhead)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httputil.HandleErrorGin(c, artifactDomain.ErrFileTooLarge, h.logger)
			return
		}
		httputil.HandleBadRequestGin(c, fmt.Errorf("no file provided"), h.logger)
		return
	}

	req := dto.UploadRequest{
		Filename: fileHeader.Filename,
		Password: c.PostForm("password"),
		Subject:  c.PostForm("subject"),
		ExamDate: c.PostForm("exam_date"),
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if h.maxUploadBytes > 0 && fileHeader.Size > h.maxUploadBytes {
		httputil.HandleErrorGin(c, artifactDomain.ErrFileTooLarge, h.logger)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("unable to read uploaded file"), h.logger)
		return
	}
	defer func() {
		_ = file.Close()
	}()

	content, err := io.ReadAll(file)
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("unable to read uploaded file"), h.logger)
		return
	}
	defer cryptoDomain.Zero(content)

	artifact, err := h.artifactUseCase.Upload(c.Request.Context(), artifactDomain.UploadInput{
		Content:  content,
		Filename: req.Filename,
		Password: req.Password,
		Subject:  req.Subject,
		ExamDate: req.ExamDate,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapArtifactToUploadResponse(artifact))
}

// ListHandler lists every stored artifact in upload order.
// GET /api/files - Returns 200 OK with files and total_files.
func (h *ArtifactHandler) ListHandler(c *gin.Context) {
	artifacts, err := h.artifactUseCase.List(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapArtifactsToListResponse(artifacts))
}

// bindPassword parses and validates the JSON password body, writing the error response
// itself when it fails.
func (h *ArtifactHandler) bindPassword(c *gin.Context) (string, bool) {
	var req dto.PasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid request body: %w", err), h.logger)
		return "", false
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return "", false
	}
	return req.Password, true
}

// DownloadHandler decrypts an artifact and streams it as an attachment.
// POST /api/download/:file_id - JSON body {"password": "..."}.
// SECURITY: the decrypted content is zeroed after the response is written.
func (h *ArtifactHandler) DownloadHandler(c *gin.Context) {
	password, ok := h.bindPassword(c)
	if !ok {
		return
	}

	result, err := h.artifactUseCase.Download(c.Request.Context(), c.Param("file_id"), password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	defer cryptoDomain.Zero(result.Content)

	c.Header("Content-Disposition", contentDisposition(result.OriginalFilename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, result.MimeType, result.Content)
}

// VerifyHandler checks a password against an artifact without returning its content.
// POST /api/verify/:file_id - Returns 200 with file_info, or 401 with valid=false.
func (h *ArtifactHandler) VerifyHandler(c *gin.Context) {
	password, ok := h.bindPassword(c)
	if !ok {
		return
	}

	result, err := h.artifactUseCase.Verify(c.Request.Context(), c.Param("file_id"), password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	status := http.StatusOK
	if !result.Valid {
		status = http.StatusUnauthorized
	}
	c.JSON(status, dto.MapVerifyResultToResponse(result))
}

// DeleteHandler removes an artifact and its envelope.
// DELETE /api/delete/:file_id - Returns 200 OK, or 404 if already deleted.
func (h *ArtifactHandler) DeleteHandler(c *gin.Context) {
	if err := h.artifactUseCase.Delete(c.Request.Context(), c.Param("file_id")); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "File deleted successfully"})
}

func contentDisposition(filename string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": filename}); v != "" {
		return v
	}
	return "attachment"
}
