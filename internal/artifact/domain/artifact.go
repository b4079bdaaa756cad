package domain

import (
	"time"
)

// DefaultSubject is recorded when an upload does not name a subject.
const DefaultSubject = "Unknown"

// Artifact is the metadata record of one stored, encrypted exam paper.
//
// Records are created once the envelope is durably written and are never mutated.
// Deleting an artifact removes the record and its envelope together.
type Artifact struct {
	// ID is the public identifier. It equals SecureFilename.
	ID string
	// OriginalFilename is the name supplied by the uploader, returned on download.
	OriginalFilename string
	// SecureFilename is the opaque storage name; the envelope lives at <root>/<SecureFilename>.enc.
	SecureFilename string
	Subject        string
	// ExamDate is a YYYY-MM-DD calendar date.
	ExamDate   string
	UploadTime time.Time
	// SizeBytes is the plaintext size.
	SizeBytes int64
	// StoragePath is the backend location of the envelope.
	StoragePath string
	// ContentHash is the base64 SHA-256 of the plaintext, checked after every decryption.
	ContentHash string `json:"-"`
}

// UploadInput carries one upload request into the lifecycle manager.
type UploadInput struct {
	Content  []byte
	Filename string
	Password string
	Subject  string
	ExamDate string
}

// VerifyResult reports whether a password opens an artifact. Valid is false, with no
// error, when the password is wrong.
type VerifyResult struct {
	Valid    bool
	Artifact *Artifact
}

// DownloadResult carries decrypted content back to the caller.
//
// Security Note: Content is plaintext. Callers should zero it with cryptoDomain.Zero
// once it has been written out.
type DownloadResult struct {
	Content          []byte
	OriginalFilename string
	MimeType         string
}
