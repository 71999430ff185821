package validator

import (
	"mime/multipart"
	"testing"

	"github.com/futig/cookbook-backend/internal/config"
	"github.com/futig/cookbook-backend/internal/entity"
	"github.com/stretchr/testify/assert"
)

func newTestValidator() *Validator {
	return NewFileValidator(config.FileUploadConfig{
		MaxFileSize:      1024,
		MaxAudioFileSize: 2048,
	})
}

func header(name string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name, Size: size}
}

func TestValidatePDFUpload(t *testing.T) {
	v := newTestValidator()

	assert.NoError(t, v.ValidatePDFUpload(header("statement.pdf", 500)))
	assert.NoError(t, v.ValidatePDFUpload(header("REPORT.PDF", 500)))

	assert.ErrorIs(t, v.ValidatePDFUpload(header("notes.txt", 500)), entity.ErrInvalidExtension)
	assert.ErrorIs(t, v.ValidatePDFUpload(header("big.pdf", 2000)), entity.ErrFileTooLarge)
	assert.ErrorIs(t, v.ValidatePDFUpload(nil), entity.ErrMissingField)
}

func TestValidateAudioUpload(t *testing.T) {
	v := newTestValidator()

	assert.NoError(t, v.ValidateAudioUpload(header("meeting.mp3", 1500)))
	assert.NoError(t, v.ValidateAudioUpload(header("call.m4a", 1500)))

	assert.ErrorIs(t, v.ValidateAudioUpload(header("meeting.pdf", 100)), entity.ErrInvalidExtension)
	assert.ErrorIs(t, v.ValidateAudioUpload(header("long.wav", 4096)), entity.ErrFileTooLarge)
}

func TestValidateDatasetUpload(t *testing.T) {
	v := newTestValidator()

	assert.NoError(t, v.ValidateDatasetUpload(header("sales.csv", 100)))
	assert.NoError(t, v.ValidateDatasetUpload(header("sales.xlsx", 100)))
	assert.ErrorIs(t, v.ValidateDatasetUpload(header("sales.json", 100)), entity.ErrInvalidExtension)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "my_file_1.pdf", SanitizeFilename("my file (1).pdf"))
	assert.Equal(t, "passwd", SanitizeFilename("../../etc/passwd"))
	assert.Equal(t, "quote.csv", SanitizeFilename(`quo"te'.csv`))
}
