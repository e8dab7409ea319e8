package handler

import (
	"net/http"

	"github.com/Dan9191/kos-service/internal/response"
	"github.com/Dan9191/kos-service/internal/service"
)

const reportFailure = "Failed to fetch laporan"

// GetReport handles GET /api/laporan. Query parameters startDate, endDate
// and months select the window; format=xml returns an XML document.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	window, err := service.ParseReportWindow(q.Get("startDate"), q.Get("endDate"), q.Get("months"), h.loc)
	if err != nil {
		h.writeServiceError(w, r, err, reportFailure)
		return
	}

	report, err := h.reports.ComputeReport(r.Context(), window)
	if err != nil {
		h.writeServiceError(w, r, err, reportFailure)
		return
	}

	if q.Get("format") == "xml" {
		if err := writeReportXML(w, report); err != nil {
			h.log.Errorf("Failed to write report XML: %v", err)
		}
		return
	}
	response.Success(w, http.StatusOK, "Laporan berhasil dimuat", report)
}
