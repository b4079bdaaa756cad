package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	artifactDomain "github.com/allisson/examvault/internal/artifact/domain"
	"github.com/allisson/examvault/internal/artifact/http/dto"
	"github.com/allisson/examvault/internal/artifact/usecase/mocks"
	cryptoDomain "github.com/allisson/examvault/internal/crypto/domain"
	"github.com/allisson/examvault/internal/httputil"
)

const testFileID = "exam_20250101_120000_0123456789abcdef0123456789abcdef"

// setupTestHandler creates a test handler with mocked dependencies.
func setupTestHandler(t *testing.T, maxUploadBytes int64) (*ArtifactHandler, *mocks.MockArtifactUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := &mocks.MockArtifactUseCase{}
	t.Cleanup(func() { mockUseCase.AssertExpectations(t) })
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewArtifactHandler(mockUseCase, maxUploadBytes, logger), mockUseCase
}

func createTestContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	return c, w
}

// createUploadContext builds a multipart upload request. An empty filename omits the file part.
func createUploadContext(
	t *testing.T,
	filename string,
	content []byte,
	fields map[string]string,
) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.Request = req

	return c, w
}

func testArtifact() *artifactDomain.Artifact {
	return &artifactDomain.Artifact{
		ID:               testFileID,
		OriginalFilename: "physics_final.pdf",
		SecureFilename:   testFileID,
		Subject:          "Physics",
		ExamDate:         "2025-06-01",
		UploadTime:       time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
		SizeBytes:        2048,
		StoragePath:      "/srv/exams/" + testFileID + ".enc",
		ContentHash:      "hash",
	}
}

func TestArtifactHandler_UploadHandler(t *testing.T) {
	validFields := map[string]string{
		"password":  "Str0ng!Pass",
		"subject":   "Physics",
		"exam_date": "2025-06-01",
	}

	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t, 1024)
		content := []byte("%PDF-1.4 exam content")

		mockUseCase.On("Upload", mock.Anything, artifactDomain.UploadInput{
			Content:  content,
			Filename: "physics_final.pdf",
			Password: "Str0ng!Pass",
			Subject:  "Physics",
			ExamDate: "2025-06-01",
		}).Return(testArtifact(), nil).Once()

		c, w := createUploadContext(t, "physics_final.pdf", content, validFields)
		handler.UploadHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response dto.UploadResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, testFileID, response.FileID)
		assert.Equal(t, "physics_final.pdf", response.OriginalFilename)
		assert.Equal(t, "File uploaded and encrypted successfully", response.Message)
		assert.NotContains(t, w.Body.String(), "/srv/exams")
	})

	t.Run("Error_NoFile", func(t *testing.T) {
		handler, _ := setupTestHandler(t, 1024)

		c, w := createUploadContext(t, "", nil, validFields)
		handler.UploadHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "no file provided")
	})

	t.Run("Error_DisallowedExtension", func(t *testing.T) {
		handler, _ := setupTestHandler(t, 1024)

		c, w := createUploadContext(t, "payload.exe", []byte("MZ"), validFields)
		handler.UploadHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "file type not allowed")
	})

	t.Run("Error_MissingPassword", func(t *testing.T) {
		handler, _ := setupTestHandler(t, 1024)

		c, w := createUploadContext(t, "exam.pdf", []byte("data"), map[string]string{"subject": "Math"})
		handler.UploadHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "password")
	})

	t.Run("Error_FileTooLarge", func(t *testing.T) {
		handler, _ := setupTestHandler(t, 16)

		c, w := createUploadContext(t, "exam.pdf", bytes.Repeat([]byte("a"), 100), validFields)
		handler.UploadHandler(c)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})

	t.Run("Error_BodyExceedsLimit", func(t *testing.T) {
		handler, _ := setupTestHandler(t, 16)

		content := bytes.Repeat([]byte("a"), multipartOverhead+1024)
		c, w := createUploadContext(t, "exam.pdf", content, validFields)
		handler.UploadHandler(c)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Contains(t, w.Body.String(), "payload_too_large")
	})

	t.Run("Error_WeakPassword", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t, 1024)

		mockUseCase.On("Upload", mock.Anything, mock.Anything).
			Return(nil, artifactDomain.ErrWeakPassword).
			Once()

		c, w := createUploadContext(t, "exam.pdf", []byte("data"), validFields)
		handler.UploadHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestArtifactHandler_ListHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t, 0)

		mockUseCase.On("List", mock.Anything).
			Return([]*artifactDomain.Artifact{testArtifact()}, nil).
			Once()

		c, w := createTestContext(http.MethodGet, "/api/files", nil)
		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ListFilesResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response.Files, 1)
		assert.Equal(t, 1, response.TotalFiles)
		assert.Equal(t, "2.0 KB", response.Files[0].FileSizeFormatted)
		assert.NotContains(t, w.Body.String(), "storage_path")
		assert.NotContains(t, w.Body.String(), "hash")
	})

	t.Run("Success_Empty", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t, 0)

		mockUseCase.On("List", mock.Anything).
			Return([]*artifactDomain.Artifact{}, nil).
			Once()

		c, w := createTestContext(http.MethodGet, "/api/files", nil)
		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"files":[],"total_files":0}`, w.Body.String())
	})
}

func TestArtifactHandler_VerifyHandler(t *testing.T) {
	t.Run("Success_ValidPassword", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t, 0)

		mockUseCase.On("Verify", mock.Anything, testFileID, "Str0ng!Pass").
			Return(&artifactDomain.VerifyResult{Valid: true, Artifact: testArtifact()}, nil).
			Once()

		c, w := createTestContext(http.MethodPost, "/api/verify/"+testFileID,
			dto.PasswordRequest{Password: "Str0ng!Pass"})
		c.Params = gin.Params{{Key: "file_id", Value: testFileID}}
		handler.VerifyHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.VerifyResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.True(t, response.Valid)
		require.NotNil(t, response.FileInfo)
		assert.Equal(t, "Physics", response.FileInfo.Subject)
	})

	t.Run("Success_WrongPassword", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t, 0)

		mockUseCase.On("Verify", mock.Anything, testFileID, "wrong").
			Return(&artifactDomain.VerifyResult{Valid: false}, nil).
			Once()

		c, w := createTestContext(http.MethodPost, "/api/verify/"+testFileID,
			dto.PasswordRequest{Password: "wrong"})
		c.Params = gin.Params{{Key: "file_id", Value: testFileID}}
		handler.VerifyHandler(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"valid":false,"message":"Invalid password"}`, w.Body.String())
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t, 0)

		mockUseCase.On("Verify", mock.Anything, "missing", "pw").
			Return(nil, artifactDomain.ErrArtifactNotFound).
			Once()

		c, w := createTestContext(http.MethodPost, "/api/verify/missing", dto.PasswordRequest{Password: "pw"})
		c.Params = gin.Params{{Key: "file_id", Value: "missing"}}
		handler.VerifyHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Error_EmptyPassword", func(t *testing.T) {
		handler, _ := setupTestHandler(t, 0)

		c, w := createTestContext(http.MethodPost, "/api/verify/"+testFileID, dto.PasswordRequest{})
		c.Params = gin.Params{{Key: "file_id", Value: testFileID}}
		handler.VerifyHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_InvalidJSON", func(t *testing.T) {
		handler, _ := setupTestHandler(t, 0)

		c, w := createTestContext(http.MethodPost, "/api/verify/"+testFileID, nil)
		c.Request.Body = io.NopCloser(bytes.NewBufferString("{not json"))
		c.Params = gin.Params{{Key: "file_id", Value: testFileID}}
		handler.VerifyHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestArtifactHandler_DownloadHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t, 0)

		mockUseCase.On("Download", mock.Anything, testFileID, "Str0ng!Pass").
			Return(&artifactDomain.DownloadResult{
				Content:          []byte("%PDF-1.4 exam content"),
				OriginalFilename: "physics_final.pdf",
				MimeType:         "application/pdf",
			}, nil).
			Once()

		c, w := createTestContext(http.MethodPost, "/api/download/"+testFileID,
			dto.PasswordRequest{Password: "Str0ng!Pass"})
		c.Params = gin.Params{{Key: "file_id", Value: testFileID}}
		handler.DownloadHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "%PDF-1.4 exam content", w.Body.String())
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename=physics_final.pdf`, w.Header().Get("Content-Disposition"))
		assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	})

	t.Run("Error_WrongPassword", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t, 0)

		mockUseCase.On("Download", mock.Anything, testFileID, "wrong").
			Return(nil, cryptoDomain.ErrAuthenticationFailed).
			Once()

		c, w := createTestContext(http.MethodPost, "/api/download/"+testFileID,
			dto.PasswordRequest{Password: "wrong"})
		c.Params = gin.Params{{Key: "file_id", Value: testFileID}}
		handler.DownloadHandler(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var response httputil.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "Invalid password or corrupted file", response.Message)
	})

	t.Run("Error_FileMissing", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t, 0)

		mockUseCase.On("Download", mock.Anything, testFileID, "pw").
			Return(nil, artifactDomain.ErrArtifactFileMissing).
			Once()

		c, w := createTestContext(http.MethodPost, "/api/download/"+testFileID, dto.PasswordRequest{Password: "pw"})
		c.Params = gin.Params{{Key: "file_id", Value: testFileID}}
		handler.DownloadHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestArtifactHandler_DeleteHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t, 0)

		mockUseCase.On("Delete", mock.Anything, testFileID).Return(nil).Once()

		c, w := createTestContext(http.MethodDelete, "/api/delete/"+testFileID, nil)
		c.Params = gin.Params{{Key: "file_id", Value: testFileID}}
		handler.DeleteHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"File deleted successfully"}`, w.Body.String())
	})

	t.Run("Error_AlreadyDeleted", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t, 0)

		mockUseCase.On("Delete", mock.Anything, testFileID).Return(artifactDomain.ErrArtifactNotFound).Once()

		c, w := createTestContext(http.MethodDelete, "/api/delete/"+testFileID, nil)
		c.Params = gin.Params{{Key: "file_id", Value: testFileID}}
		handler.DeleteHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestContentDisposition(t *testing.T) {
	assert.Equal(t, "attachment; filename=exam.pdf", contentDisposition("exam.pdf"))
	assert.Equal(t, `attachment; filename="my exam.pdf"`, contentDisposition("my exam.pdf"))
	assert.Contains(t, contentDisposition("exámen.pdf"), "filename*=utf-8''ex%C3%A1men.pdf")
}
