package validator

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/futig/cookbook-backend/internal/config"
	"github.com/futig/cookbook-backend/internal/entity"
)

var documentExtensions = map[string]bool{
	".pdf": true,
}

var audioExtensions = map[string]bool{
	".mp3": true,
	".wav": true,
	".m4a": true,
	".ogg": true,
}

var datasetExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
}

// Validator validates file uploads
type Validator struct {
	cfg config.FileUploadConfig
}

func NewFileValidator(cfg config.FileUploadConfig) *Validator {
	return &Validator{cfg: cfg}
}

// ValidatePDFUpload checks statement and document uploads.
func (v *Validator) ValidatePDFUpload(fh *multipart.FileHeader) error {
	return v.validate(fh, documentExtensions, v.cfg.MaxFileSize, "pdf")
}

// ValidateAudioUpload checks audio uploads against the audio size limit.
func (v *Validator) ValidateAudioUpload(fh *multipart.FileHeader) error {
	return v.validate(fh, audioExtensions, v.cfg.MaxAudioFileSize, "mp3, wav, m4a, ogg")
}

// ValidateDatasetUpload checks tabular uploads.
func (v *Validator) ValidateDatasetUpload(fh *multipart.FileHeader) error {
	return v.validate(fh, datasetExtensions, v.cfg.MaxFileSize, "csv, xlsx")
}

func (v *Validator) validate(fh *multipart.FileHeader, allowed map[string]bool, maxSize int64, allowedHint string) error {
	if fh == nil {
		return fmt.Errorf("%w: file", entity.ErrMissingField)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowed[ext] {
		return fmt.Errorf("%w: %s (allowed: %s)", entity.ErrInvalidExtension, ext, allowedHint)
	}

	if fh.Size > maxSize {
		return fmt.Errorf("%w: file '%s' is %d bytes (max %d)", entity.ErrFileTooLarge, fh.Filename, fh.Size, maxSize)
	}

	return nil
}

// SanitizeFilename sanitizes a filename for safe storage
func SanitizeFilename(filename string) string {
	filename = filepath.Base(filename)
	replacer := strings.NewReplacer(
		" ", "_",
		"(", "",
		")", "",
		"'", "",
		"\"", "",
	)
	return replacer.Replace(filename)
}
