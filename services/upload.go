package services

import "errors"

// MaxUploadSize caps artwork and payment proof uploads at 5MB.
const MaxUploadSize = 5 * 1024 * 1024

// ErrFileTooLarge is returned for uploads over MaxUploadSize.
var ErrFileTooLarge = errors.New("File too large. Max 5MB.")

// ErrInvalidFileType is returned for uploads outside the allowed types.
var ErrInvalidFileType = errors.New("Invalid file type.")

// allowedUploadTypes lists the content types accepted for artwork and
// payment proofs.
var allowedUploadTypes = map[string]bool{
	"application/pdf": true,
	"image/png":       true,
	"image/jpeg":      true,
}

// ValidateUpload checks an upload's size and content type before it is
// handed to file storage. Size is checked first so an oversized file of the
// wrong type reports the size problem.
func ValidateUpload(size int64, contentType string) error {
	if size > MaxUploadSize {
		return ErrFileTooLarge
	}
	if !allowedUploadTypes[contentType] {
		return ErrInvalidFileType
	}
	return nil
}
