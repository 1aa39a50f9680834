package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goodlandcafe/pos_backend/models"
	"github.com/goodlandcafe/pos_backend/models/reports"
	"github.com/goodlandcafe/pos_backend/receipt"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *Handler) listSuppliers(c *gin.Context) {
	suppliers, err := h.Store.ListSuppliers(c.Request.Context())
	if err != nil {
		respondError(c, "listSuppliers", err)
		return
	}
	c.JSON(http.StatusOK, suppliers)
}

func (h *Handler) createSupplier(c *gin.Context) {
	var input models.NewSupplier
	if !bindJSON(c, &input) {
		return
	}
	supplier, err := input.ToSupplier()
	if err != nil {
		respondError(c, "createSupplier", err)
		return
	}
	if err := h.Store.SaveSupplier(c.Request.Context(), supplier); err != nil {
		respondError(c, "createSupplier", err)
		return
	}
	c.JSON(http.StatusCreated, supplier)
}

func (h *Handler) getBusinessProfile(c *gin.Context) {
	profile, err := h.Store.GetBusinessProfile(c.Request.Context())
	if err != nil {
		respondError(c, "getBusinessProfile", err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// putBusinessProfile replaces the receipt header. A logo, when sent, is
// normalised to a small PNG before it is stored.
func (h *Handler) putBusinessProfile(c *gin.Context) {
	var input models.NewBusinessProfile
	if !bindJSON(c, &input) {
		return
	}
	if len(input.Logo) > 0 {
		logo, err := receipt.PrepareLogo(input.Logo)
		if err != nil {
			respondError(c, "putBusinessProfile", models.NewValidationError("logo", err))
			return
		}
		input.Logo = logo
	}
	profile, err := input.ToBusinessProfile()
	if err != nil {
		respondError(c, "putBusinessProfile", err)
		return
	}
	if err := h.Store.SaveBusinessProfile(c.Request.Context(), profile); err != nil {
		respondError(c, "putBusinessProfile", err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) forecastOptions(c *gin.Context) (reports.ForecastOptions, error) {
	metric, err := reports.ParseForecastMetric(c.Query("metric"))
	if err != nil {
		return reports.ForecastOptions{}, models.NewValidationError("metric", err)
	}
	return reports.ForecastOptions{Alpha: h.Alpha, Metric: metric, Location: h.Location}, nil
}

func (h *Handler) dashboard(c *gin.Context) {
	category := models.CategoryBeverages
	if raw := c.Query("category"); raw != "" {
		parsed, err := models.ParseCategory(raw)
		if err != nil {
			respondError(c, "dashboard", models.NewValidationError("category", err))
			return
		}
		category = parsed
	}
	forecast, err := h.forecastOptions(c)
	if err != nil {
		respondError(c, "dashboard", err)
		return
	}
	resp, err := reports.GetDashboard(c.Request.Context(), h.Store, reports.DashboardOptions{
		Category: category,
		Alpha:    forecast.Alpha,
		Metric:   forecast.Metric,
		Location: forecast.Location,
	})
	if err != nil {
		respondError(c, "dashboard", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) exportReport(c *gin.Context) {
	forecast, err := h.forecastOptions(c)
	if err != nil {
		respondError(c, "exportReport", err)
		return
	}
	data, err := reports.ExportSalesWorkbook(c.Request.Context(), h.Store, reports.ExportOptions{Forecast: forecast})
	if err != nil {
		respondError(c, "exportReport", err)
		return
	}
	loc := h.Location
	if loc == nil {
		loc = time.UTC
	}
	name := fmt.Sprintf("sales-report-%s.xlsx", time.Now().In(loc).Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Data(http.StatusOK, xlsxContentType, data)
}
