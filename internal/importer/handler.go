package importer

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/company-portal/internal"
	"github.com/frahmantamala/company-portal/internal/transport"
	"github.com/frahmantamala/company-portal/pkg/logger"
)

// maxUploadBytes caps the multipart form held in memory.
const maxUploadBytes = 10 << 20

type ServiceAPI interface {
	ImportDependents(file io.Reader, filename string) (int, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// ImportDependents handles POST /import_dependents. Every failure is
// converted to a user-visible notice; nothing propagates out of this route.
func (h *Handler) ImportDependents(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "please upload a valid .xlsx file")
		return
	}
	defer file.Close()

	count, err := h.Service.ImportDependents(file, header.Filename)
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			h.WriteError(w, appErr.StatusCode, fmt.Sprintf("Import failed: %s", appErr.Message))
			return
		}
		h.WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Import failed: %v", err))
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":       "File imported successfully!",
		"rows_imported": count,
	})
}
