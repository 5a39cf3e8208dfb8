package handlers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"app/analytics"
	"app/config"
	"app/database"
	"app/models"
	"app/pdf"

	"github.com/gofiber/fiber/v2"
)

// HandleGetReportData assembles the full report and returns it as JSON.
// GET /api/reports/data?periodType=weekly|months&periodValue=N
func HandleGetReportData(c *fiber.Ctx) error {
	report, err := buildReport(c)
	if err != nil {
		if errInvalidPeriod(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		log.Printf("Error generating report data: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Could not generate report"})
	}
	return c.JSON(fiber.Map{"success": true, "data": report})
}

// HandleGenerateReport renders the report to an A4 PDF attachment.
// GET /api/reports/generate?periodType=weekly|months&periodValue=N
func HandleGenerateReport(c *fiber.Ctx) error {
	report, err := buildReport(c)
	if err != nil {
		if errInvalidPeriod(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		log.Printf("Error generating report: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Could not generate report"})
	}

	html, err := pdf.ReportHTML(report)
	if err != nil {
		log.Printf("Error templating report: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Could not generate report"})
	}

	renderer := pdf.NewRenderer(config.AppConfig.ChromeNoSandbox)
	data, err := renderer.Render(c.Context(), html)
	if err != nil {
		log.Printf("Error rendering report PDF: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Could not render PDF"})
	}

	filename := fmt.Sprintf("inventory-report-%s.pdf", time.Now().UTC().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(data)
}

var (
	errBadPeriodType      = errors.New("periodType must be 'weekly' or 'months'")
	errMissingPeriodValue = errors.New("periodValue is required for monthly reports")
)

func errInvalidPeriod(err error) bool {
	return errors.Is(err, errBadPeriodType) || errors.Is(err, errMissingPeriodValue)
}

// buildReport resolves the requested period and runs the analytics pipeline.
func buildReport(c *fiber.Ctx) (models.ReportData, error) {
	periodType := c.Query("periodType")
	periodValue := c.Query("periodValue")

	if periodType != "weekly" && periodType != "months" {
		return models.ReportData{}, errBadPeriodType
	}
	if periodType == "months" && periodValue == "" {
		return models.ReportData{}, errMissingPeriodValue
	}

	period := analytics.ResolvePeriod(periodType, periodValue, time.Now().UTC())
	opts := analytics.Options{CompanyRanking: analytics.CompaniesByRevenue}

	return analytics.Generate(c.Context(), period, database.SaleWindowSource{}, database.StockWindowSource{}, opts)
}
