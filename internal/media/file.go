package media

import "fmt"

const (
	DefaultMaxFileSize = 5 * 1024 * 1024 // 5 MiB
	DefaultMaxFiles    = 10
)

var DefaultAcceptedTypes = []string{"image/jpeg", "image/jpg", "image/png"}

// File is one candidate upload: raw bytes plus the metadata needed for
// validation.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Limits configures file validation. Zero values fall back to defaults.
type Limits struct {
	MaxFileSize   int64
	AcceptedTypes []string
}

func (l Limits) maxFileSize() int64 {
	if l.MaxFileSize > 0 {
		return l.MaxFileSize
	}
	return DefaultMaxFileSize
}

func (l Limits) acceptedTypes() []string {
	if len(l.AcceptedTypes) > 0 {
		return l.AcceptedTypes
	}
	return DefaultAcceptedTypes
}

// ValidateFile checks a candidate upload against size and type
// constraints. Pure; does no I/O.
func ValidateFile(f File, limits Limits) error {
	if len(f.Data) == 0 {
		return ErrEmptyFile
	}
	if int64(len(f.Data)) > limits.maxFileSize() {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrFileTooLarge, len(f.Data), limits.maxFileSize())
	}
	for _, t := range limits.acceptedTypes() {
		if f.ContentType == t {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedType, f.ContentType)
}

// AssignPrimary decides whether an accepted file becomes the primary
// gallery image: only the first file added to an empty gallery does.
func AssignPrimary(existingCount, batchIndex int) bool {
	return existingCount == 0 && batchIndex == 0
}
