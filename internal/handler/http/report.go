package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cmlabs-hris/attendance-dashboard/internal/domain/report"
	"github.com/cmlabs-hris/attendance-dashboard/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-dashboard/internal/view"
)

type ReportHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	sessions *view.Sessions
}

func NewReportHandler(sessions *view.Sessions) ReportHandler {
	return &reportHandlerImpl{sessions: sessions}
}

// Generate handles POST /ui/reports/{type}
func (h *reportHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	reportType := report.Type(chi.URLParam(r, "type"))

	if err := controllerFor(h.sessions, r).GenerateReport(r.Context(), reportType); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Accepted(w, "Report generated", map[string]report.Type{"type": reportType})
}
