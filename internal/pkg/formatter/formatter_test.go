package formatter

import (
	"testing"

	"github.com/futig/cookbook-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryCreate(t *testing.T) {
	factory := NewFactory()

	md, err := factory.Create(entity.FormatMarkdown)
	require.NoError(t, err)
	assert.Equal(t, ".md", md.FileExtension())

	pdf, err := factory.Create(entity.FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, ".pdf", pdf.FileExtension())

	docx, err := factory.Create(entity.FormatDOCX)
	require.NoError(t, err)
	assert.Equal(t, ".docx", docx.FileExtension())

	_, err = factory.Create(entity.ResultFormat("xml"))
	assert.Error(t, err)
}

func TestMarkdownFormatterAddsTitle(t *testing.T) {
	mf := NewMarkdownFormatter()

	out, err := mf.Format("Trip to Goa", "Day 1: beach")
	require.NoError(t, err)
	assert.Equal(t, "# Trip to Goa\n\nDay 1: beach\n", string(out))
}

func TestMarkdownFormatterKeepsExistingHeading(t *testing.T) {
	mf := NewMarkdownFormatter()

	out, err := mf.Format("ignored", "# Already Titled\n\nbody")
	require.NoError(t, err)
	assert.Equal(t, "# Already Titled\n\nbody\n", string(out))
}

func TestPDFFormatterProducesPDF(t *testing.T) {
	pf := NewPDFFormatter()

	out, err := pf.Format("Report", "## Section\n\nSome body text.")
	require.NoError(t, err)
	assert.True(t, len(out) > 4)
	assert.Equal(t, "%PDF", string(out[:4]))
	assert.Equal(t, "application/pdf", pf.ContentType())
}
