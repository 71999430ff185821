package download

import (
	"context"
	"fmt"
	"net/http"

	"github.com/futig/cookbook-backend/internal/api/apierr"
	"github.com/futig/cookbook-backend/internal/entity"
	"github.com/futig/cookbook-backend/internal/pkg/formatter"
)

// ParseFormat reads the ?format= query parameter, defaulting to
// markdown.
func ParseFormat(r *http.Request) entity.ResultFormat {
	format := entity.ResultFormat(r.URL.Query().Get("format"))
	if format == "" {
		return entity.FormatMarkdown
	}
	return format
}

// Serve renders a report in the requested format and writes it as a
// file attachment.
func Serve(ctx context.Context, w http.ResponseWriter, factory *formatter.Factory,
	format entity.ResultFormat, baseName, title, text string) {

	fmtr, err := factory.Create(format)
	if err != nil {
		apierr.Respond(ctx, w, http.StatusBadRequest, "unsupported format", err)
		return
	}

	data, err := fmtr.Format(title, text)
	if err != nil {
		apierr.Respond(ctx, w, http.StatusInternalServerError, "failed to render report", err)
		return
	}

	filename := baseName + fmtr.FileExtension()
	w.Header().Set("Content-Type", fmtr.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
