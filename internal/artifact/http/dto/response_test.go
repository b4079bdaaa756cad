package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	artifactDomain "github.com/allisson/examvault/internal/artifact/domain"
	"github.com/allisson/examvault/internal/artifact/http/dto"
)

func TestMapArtifactsToListResponse(t *testing.T) {
	now := time.Now().UTC()
	artifacts := []*artifactDomain.Artifact{
		{
			ID:               "exam_1",
			OriginalFilename: "physics.pdf",
			Subject:          "Physics",
			ExamDate:         "2024-06-15",
			UploadTime:       now,
			SizeBytes:        1536,
			StoragePath:      "/srv/storage/exam_1.enc",
			ContentHash:      "hash",
		},
		{ID: "exam_2", OriginalFilename: "maths.docx", SizeBytes: 0},
	}

	response := dto.MapArtifactsToListResponse(artifacts)

	assert.Equal(t, 2, response.TotalFiles)
	assert.Len(t, response.Files, 2)
	assert.Equal(t, "exam_1", response.Files[0].FileID)
	assert.Equal(t, "physics.pdf", response.Files[0].OriginalFilename)
	assert.Equal(t, now, response.Files[0].UploadTime)
	assert.Equal(t, int64(1536), response.Files[0].FileSize)
	assert.Equal(t, "1.5 KB", response.Files[0].FileSizeFormatted)
	assert.Equal(t, "exam_2", response.Files[1].FileID)
}

func TestMapArtifactsToListResponse_Empty(t *testing.T) {
	response := dto.MapArtifactsToListResponse(nil)
	assert.Equal(t, 0, response.TotalFiles)
	assert.NotNil(t, response.Files)
}

func TestMapVerifyResultToResponse(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		response := dto.MapVerifyResultToResponse(&artifactDomain.VerifyResult{
			Valid: true,
			Artifact: &artifactDomain.Artifact{
				OriginalFilename: "physics.pdf",
				Subject:          "Physics",
				ExamDate:         "2024-06-15",
				SizeBytes:        42,
			},
		})

		assert.True(t, response.Valid)
		assert.Equal(t, "Password is correct", response.Message)
		if assert.NotNil(t, response.FileInfo) {
			assert.Equal(t, "physics.pdf", response.FileInfo.OriginalFilename)
			assert.Equal(t, int64(42), response.FileInfo.FileSize)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		response := dto.MapVerifyResultToResponse(&artifactDomain.VerifyResult{Valid: false})
		assert.False(t, response.Valid)
		assert.Equal(t, "Invalid password", response.Message)
		assert.Nil(t, response.FileInfo)
	})
}
