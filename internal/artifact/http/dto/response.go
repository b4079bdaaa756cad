package dto

import (
	"time"

	artifactDomain "github.com/allisson/examvault/internal/artifact/domain"
	"github.com/allisson/examvault/internal/storage"
)

// UploadResponse is returned after an artifact is stored.
type UploadResponse struct {
	Message          string `json:"message"`
	FileID           string `json:"file_id"`
	OriginalFilename string `json:"original_filename"`
	Subject          string `json:"subject"`
	ExamDate         string `json:"exam_date"`
}

// MapArtifactToUploadResponse converts a stored artifact to an upload response.
func MapArtifactToUploadResponse(artifact *artifactDomain.Artifact) UploadResponse {
	return UploadResponse{
		Message:          "File uploaded and encrypted successfully",
		FileID:           artifact.ID,
		OriginalFilename: artifact.OriginalFilename,
		Subject:          artifact.Subject,
		ExamDate:         artifact.ExamDate,
	}
}

// FileSummary is the public projection of an artifact. It never includes the storage
// location or the content hash.
type FileSummary struct {
	FileID            string    `json:"file_id"`
	OriginalFilename  string    `json:"original_filename"`
	Subject           string    `json:"subject"`
	ExamDate          string    `json:"exam_date"`
	UploadTime        time.Time `json:"upload_time"`
	FileSize          int64     `json:"file_size"`
	FileSizeFormatted string    `json:"file_size_formatted"`
}

// ListFilesResponse wraps every registered artifact.
type ListFilesResponse struct {
	Files      []FileSummary `json:"files"`
	TotalFiles int           `json:"total_files"`
}

// MapArtifactsToListResponse converts registered artifacts to a list response.
func MapArtifactsToListResponse(artifacts []*artifactDomain.Artifact) ListFilesResponse {
	files := make([]FileSummary, 0, len(artifacts))
	for _, artifact := range artifacts {
		files = append(files, FileSummary{
			FileID:            artifact.ID,
			OriginalFilename:  artifact.OriginalFilename,
			Subject:           artifact.Subject,
			ExamDate:          artifact.ExamDate,
			UploadTime:        artifact.UploadTime,
			FileSize:          artifact.SizeBytes,
			FileSizeFormatted: storage.FormatSize(artifact.SizeBytes),
		})
	}
	return ListFilesResponse{Files: files, TotalFiles: len(files)}
}

// FileInfo is the metadata returned by a successful verify.
type FileInfo struct {
	OriginalFilename string `json:"original_filename"`
	Subject          string `json:"subject"`
	ExamDate         string `json:"exam_date"`
	FileSize         int64  `json:"file_size"`
}

// VerifyResponse reports whether a password opens an artifact.
type VerifyResponse struct {
	Valid    bool      `json:"valid"`
	Message  string    `json:"message"`
	FileInfo *FileInfo `json:"file_info,omitempty"`
}

// MapVerifyResultToResponse converts a verify result to its response body.
func MapVerifyResultToResponse(result *artifactDomain.VerifyResult) VerifyResponse {
	if !result.Valid || result.Artifact == nil {
		return VerifyResponse{Valid: false, Message: "Invalid password"}
	}
	return VerifyResponse{
		Valid:   true,
		Message: "Password is correct",
		FileInfo: &FileInfo{
			OriginalFilename: result.Artifact.OriginalFilename,
			Subject:          result.Artifact.Subject,
			ExamDate:         result.Artifact.ExamDate,
			FileSize:         result.Artifact.SizeBytes,
		},
	}
}

// MessageResponse carries a human readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}
