package controllers

import (
	"bytes"
	"net/http"

	"hotel-desk/services"
	"hotel-desk/utils"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportController struct {
	ReportSvc *services.ReportService
}

func NewReportController(svc *services.ReportService) *ReportController {
	return &ReportController{ReportSvc: svc}
}

// BookingsReport GET /api/reports/bookings.xlsx?from=&to=
func (rc *ReportController) BookingsReport(c *gin.Context) {
	from, err := utils.ParseOptionalDate(c.Query("from"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidQuery", "from: "+err.Error())
		return
	}
	to, err := utils.ParseOptionalDate(c.Query("to"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidQuery", "to: "+err.Error())
		return
	}
	if from.IsZero() != to.IsZero() {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidQuery", "from and to must be given together")
		return
	}

	var buf bytes.Buffer
	if err := rc.ReportSvc.WriteBookings(c.Request.Context(), &buf, from, to); err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="bookings.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
