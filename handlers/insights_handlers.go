package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"app/config"
	"app/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const insightsModel = "gemini-1.5-flash-latest"

// HandleGetReportInsights narrates the assembled report through Gemini and
// returns a short plain-language analysis for business owners.
// GET /api/reports/insights?periodType=weekly|months&periodValue=N (admin)
func HandleGetReportInsights(c *fiber.Ctx) error {
	if config.AppConfig.GeminiAPIKey == "" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"success": false, "message": "AI insights are not configured"})
	}

	report, err := buildReport(c)
	if err != nil {
		if errInvalidPeriod(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		log.Printf("Error generating report for insights: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Could not generate report"})
	}

	client, err := genai.NewClient(c.Context(), option.WithAPIKey(config.AppConfig.GeminiAPIKey))
	if err != nil {
		log.Printf("Error creating Gemini client: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to initialize AI client"})
	}
	defer client.Close()

	prompt, err := insightsPrompt(report)
	if err != nil {
		log.Printf("Error building insights prompt: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Could not generate insights"})
	}

	model := client.GenerativeModel(insightsModel)
	resp, err := model.GenerateContent(c.Context(), genai.Text(prompt))
	if err != nil {
		log.Printf("Error generating insights: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to generate insights"})
	}

	insights := collectText(resp)
	if insights == "" {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "AI returned an empty response"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"period":   report.Period,
			"insights": insights,
		},
	})
}

func insightsPrompt(report models.ReportData) (string, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	return fmt.Sprintf(`You are an inventory analyst for a small business.
Below is a JSON sales and inventory report. Summarize the key findings in
plain language for a non-technical business owner: overall performance,
standout items, restocking priorities, and anything concerning. Keep it under
300 words and do not repeat raw numbers excessively.

Report data:
%s`, data), nil
}

func collectText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}
	return strings.TrimSpace(b.String())
}
