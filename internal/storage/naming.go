package storage

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// EnvelopeExt is appended to every storage name to form the object key.
	EnvelopeExt = ".enc"

	namePrefix       = "exam_"
	nameTimeLayout   = "20060102_150405"
	maxFilenameBytes = 255
)

var allowedExtensions = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
	".rtf":  "application/rtf",
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// GenerateStorageName returns an opaque name of the form exam_<YYYYMMDD_HHMMSS>_<32 hex>.
//
// The random part is a version 4 UUID, so concurrent calls within the same second do not
// collide. The name never carries the original filename or its extension.
func GenerateStorageName(now time.Time) string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	return namePrefix + now.UTC().Format(nameTimeLayout) + "_" + id
}

// ValidateExtension reports whether name ends in one of the accepted document extensions.
// The comparison is case-insensitive.
func ValidateExtension(name string) bool {
	_, ok := allowedExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// AllowedExtensions returns the accepted extensions in a stable order.
func AllowedExtensions() []string {
	return []string{".pdf", ".doc", ".docx", ".txt", ".rtf"}
}

// MimeType returns the content type for name, or application/octet-stream when the
// extension is not a known document type.
func MimeType(name string) string {
	if mime, ok := allowedExtensions[strings.ToLower(filepath.Ext(name))]; ok {
		return mime
	}
	return "application/octet-stream"
}

// SanitizeFilename strips directories and every character outside [A-Za-z0-9._-] from a
// client supplied filename. Spaces become underscores. A result with an empty stem, such as
// ".pdf" left over from a non-ASCII name, or an overlong result is replaced with
// file_<UTC timestamp> followed by the original extension when it is an accepted one.
func SanitizeFilename(name string, now time.Time) string {
	name = strings.ReplaceAll(name, "\\", "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.ReplaceAll(name, " ", "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")

	ext := strings.ToLower(filepath.Ext(name))
	stem := strings.Trim(strings.TrimSuffix(name, filepath.Ext(name)), ".")
	if stem == "" || len(name) > maxFilenameBytes {
		fallback := "file_" + now.UTC().Format(nameTimeLayout)
		if _, ok := allowedExtensions[ext]; ok {
			fallback += ext
		}
		return fallback
	}
	return name
}

// FormatSize renders a byte count for humans, e.g. "1.5 KB".
func FormatSize(size int64) string {
	if size <= 0 {
		return "0 B"
	}

	units := []string{"B", "KB", "MB", "GB", "TB"}
	value := float64(size)
	i := 0
	for value >= 1024 && i < len(units)-1 {
		value /= 1024
		i++
	}
	return fmt.Sprintf("%.1f %s", value, units[i])
}
