package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"app/models"
)

// templateFuncs are the helpers the report template uses for display
// formatting. Currency is shown with two decimal places; velocity as
// units/day. Formatting lives here, never in the analytics engine.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"currency": func(v float64) string {
			return fmt.Sprintf("₹%.2f", v)
		},
		"quantity": func(v float64) string {
			return fmt.Sprintf("%.2f", v)
		},
		"velocity": func(v float64) string {
			return fmt.Sprintf("%.2f units/day", v)
		},
		"longDate": func(t time.Time) string {
			return t.Format("January 2, 2006")
		},
		"dayDate": func(day *string) string {
			if day == nil {
				return ""
			}
			t, err := time.Parse("2006-01-02", *day)
			if err != nil {
				return *day
			}
			return t.Format("January 2, 2006")
		},
		"inc": func(i int) int {
			return i + 1
		},
	}
}

type reportPage struct {
	Report      models.ReportData
	GeneratedAt time.Time
	PeriodLabel string
}

// PeriodLabel renders the period in the report header's wording.
func PeriodLabel(period models.Period) string {
	if period.Type == "weekly" {
		return "Last Week"
	}
	value := period.Value
	if value == "" {
		value = "3"
	}
	return fmt.Sprintf("Last %s Months", value)
}

// ReportHTML renders the assembled report data into the printable HTML
// document. The data is the exact ReportData the JSON API serves; nothing is
// recomputed here.
func ReportHTML(report models.ReportData) (string, error) {
	page := reportPage{
		Report:      report,
		GeneratedAt: time.Now(),
		PeriodLabel: PeriodLabel(report.Period),
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, page); err != nil {
		return "", fmt.Errorf("report template: %w", err)
	}
	return buf.String(), nil
}

var reportTemplate = template.Must(template.New("report").Funcs(templateFuncs()).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>Inventory Management Report</title>
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; line-height: 1.6; color: #333; background: #f5f5f5; padding: 20px; }
.container { max-width: 1200px; margin: 0 auto; background: white; padding: 40px; box-shadow: 0 0 10px rgba(0,0,0,0.1); }
.header { text-align: center; border-bottom: 3px solid #4f46e5; padding-bottom: 20px; margin-bottom: 30px; }
.header h1 { color: #4f46e5; font-size: 32px; margin-bottom: 10px; }
.header p { color: #666; font-size: 14px; }
.section { margin-bottom: 40px; page-break-inside: avoid; }
.section-title { background: #4f46e5; color: white; padding: 15px 20px; font-size: 20px; font-weight: bold; margin-bottom: 20px; border-radius: 5px; }
.section-note { margin-bottom: 15px; color: #666; }
.summary-grid { display: grid; grid-template-columns: repeat(4, 1fr); gap: 20px; margin-bottom: 30px; }
.summary-card { background: #f8f9fa; padding: 20px; border-radius: 8px; border-left: 4px solid #4f46e5; }
.summary-card h3 { font-size: 14px; color: #666; margin-bottom: 10px; text-transform: uppercase; }
.summary-card .value { font-size: 28px; font-weight: bold; color: #333; }
table { width: 100%; border-collapse: collapse; margin-bottom: 20px; font-size: 12px; }
th { background: #4f46e5; color: white; padding: 12px; text-align: left; font-weight: 600; }
td { padding: 10px 12px; border-bottom: 1px solid #e5e7eb; }
tr:nth-child(even) { background: #f9fafb; }
.badge { display: inline-block; padding: 4px 12px; border-radius: 12px; font-size: 11px; font-weight: 600; }
.badge-high { background: #fee2e2; color: #991b1b; }
.badge-medium { background: #fef3c7; color: #92400e; }
.badge-success { background: #d1fae5; color: #065f46; }
.badge-warning { background: #fef3c7; color: #92400e; }
.highlight-box { background: #eff6ff; border-left: 4px solid #3b82f6; padding: 15px; margin: 20px 0; border-radius: 4px; }
.highlight-box h4 { color: #1e40af; margin-bottom: 8px; }
.recommendation { background: #f0fdf4; border: 1px solid #86efac; padding: 15px; margin: 15px 0; border-radius: 5px; }
.warning { background: #fef2f2; border: 1px solid #fca5a5; padding: 15px; margin: 15px 0; border-radius: 5px; }
.empty-note { color: #666; padding: 20px; }
.footer { margin-top: 40px; padding-top: 20px; border-top: 2px solid #e5e7eb; text-align: center; color: #666; font-size: 12px; }
@media print { body { background: white; padding: 0; } .section { page-break-inside: avoid; } }
</style>
</head>
<body>
<div class="container">
  <div class="header">
    <h1>Inventory Management Report</h1>
    <p>Generated on {{longDate .GeneratedAt}} | Period: {{.PeriodLabel}}</p>
    <p>Report Period: {{longDate .Report.Period.StartDate}} to {{longDate .Report.Period.EndDate}}</p>
  </div>

  <div class="section">
    <div class="section-title">Executive Summary</div>
    <div class="summary-grid">
      <div class="summary-card"><h3>Total Revenue</h3><div class="value">{{currency .Report.Summary.TotalRevenue}}</div></div>
      <div class="summary-card"><h3>Total Quantity Sold</h3><div class="value">{{quantity .Report.Summary.TotalQuantity}}</div></div>
      <div class="summary-card"><h3>Total Sales</h3><div class="value">{{.Report.Summary.TotalSales}}</div></div>
      <div class="summary-card"><h3>Average Sale Value</h3><div class="value">{{currency .Report.Summary.AvgSaleValue}}</div></div>
    </div>
    {{if .Report.PeakDay.HasSales}}
    <div class="highlight-box">
      <h4>Peak Sales Day</h4>
      <p><strong>Date:</strong> {{dayDate .Report.PeakDay.Date}}</p>
      <p><strong>Revenue:</strong> {{currency .Report.PeakDay.Revenue}}</p>
      <p><strong>Quantity Sold:</strong> {{quantity .Report.PeakDay.Quantity}}</p>
    </div>
    {{end}}
  </div>

  <div class="section">
    <div class="section-title">Best Performing Items</div>
    <p class="section-note">Top 10 items by performance score (based on revenue, quantity, sales velocity)</p>
    <table>
      <thead><tr><th>Rank</th><th>Item Name</th><th>Company</th><th>Total Revenue</th><th>Quantity Sold</th><th>Sales Velocity</th><th>Status</th></tr></thead>
      <tbody>
      {{range $i, $item := .Report.BestPerformingItems}}
        <tr>
          <td>{{inc $i}}</td>
          <td><strong>{{$item.ItemName}}</strong></td>
          <td>{{$item.CompanyName}}</td>
          <td>{{currency $item.TotalRevenue}}</td>
          <td>{{quantity $item.TotalQuantity}}</td>
          <td>{{velocity $item.SalesVelocity}}</td>
          <td>{{if $item.IsOutOfStock}}<span class="badge badge-warning">Out of Stock</span>{{else}}<span class="badge badge-success">Available</span>{{end}}</td>
        </tr>
      {{end}}
      </tbody>
    </table>
  </div>

  <div class="section">
    <div class="section-title">Restocking Suggestions</div>
    <p class="section-note">Items that are out of stock or low in stock and have good performance</p>
    {{if .Report.RestockingSuggestions}}
    <table>
      <thead><tr><th>Priority</th><th>Item Name</th><th>Company</th><th>Current Quantity</th><th>Total Revenue</th><th>Sales Velocity</th></tr></thead>
      <tbody>
      {{range .Report.RestockingSuggestions}}
        <tr>
          <td><span class="badge {{if eq .Priority "High"}}badge-high{{else}}badge-medium{{end}}">{{.Priority}}</span></td>
          <td><strong>{{.ItemName}}</strong></td>
          <td>{{.CompanyName}}</td>
          <td>{{if .IsOutOfStock}}<span style="color: red;">Out of Stock</span>{{else}}{{quantity .CurrentQuantity}}{{end}}</td>
          <td>{{currency .TotalRevenue}}</td>
          <td>{{velocity .SalesVelocity}}</td>
        </tr>
      {{end}}
      </tbody>
    </table>
    {{else}}<p class="empty-note">No restocking suggestions at this time.</p>{{end}}
  </div>

  <div class="section">
    <div class="section-title">Items to Avoid Restocking</div>
    <p class="section-note">Items with poor performance that should not be prioritized for restocking</p>
    {{if .Report.AvoidRestocking}}
    <table>
      <thead><tr><th>Item Name</th><th>Company</th><th>Total Revenue</th><th>Quantity Sold</th><th>Sales Count</th><th>Sales Velocity</th></tr></thead>
      <tbody>
      {{range .Report.AvoidRestocking}}
        <tr>
          <td><strong>{{.ItemName}}</strong></td>
          <td>{{.CompanyName}}</td>
          <td>{{currency .TotalRevenue}}</td>
          <td>{{quantity .TotalQuantity}}</td>
          <td>{{.SaleCount}}</td>
          <td>{{velocity .SalesVelocity}}</td>
        </tr>
      {{end}}
      </tbody>
    </table>
    {{else}}<p class="empty-note">No items identified for avoiding restocking.</p>{{end}}
  </div>

  <div class="section">
    <div class="section-title">Company Performance</div>
    <p class="section-note">Performance breakdown by company</p>
    <table>
      <thead><tr><th>Company Name</th><th>Total Revenue</th><th>Total Quantity</th><th>Sales Count</th><th>Unique Items</th></tr></thead>
      <tbody>
      {{range .Report.CompanyAnalytics}}
        <tr>
          <td><strong>{{.CompanyName}}</strong></td>
          <td>{{currency .TotalRevenue}}</td>
          <td>{{quantity .TotalQuantity}}</td>
          <td>{{.SaleCount}}</td>
          <td>{{.UniqueItemsCount}}</td>
        </tr>
      {{end}}
      </tbody>
    </table>
  </div>

  <div class="section">
    <div class="section-title">Key Recommendations</div>
    <div class="recommendation">
      <h4>Priority Restocking</h4>
      <p>Focus on restocking items marked as "High Priority" in the Restocking Suggestions section. These items have proven performance and are currently out of stock.</p>
    </div>
    {{if .Report.PeakDay.HasSales}}
    <div class="recommendation">
      <h4>Peak Sales Period</h4>
      <p>The peak sales day was {{dayDate .Report.PeakDay.Date}} with revenue of {{currency .Report.PeakDay.Revenue}}. Consider increasing inventory before similar periods.</p>
    </div>
    {{end}}
    {{if .Report.AvoidRestocking}}
    <div class="warning">
      <h4>Low Performance Items</h4>
      <p>{{len .Report.AvoidRestocking}} items have shown poor performance. Consider reducing inventory levels or discontinuing these items.</p>
    </div>
    {{end}}
    <div class="recommendation">
      <h4>Best Performing Companies</h4>
      <p>Focus on maintaining strong relationships with top-performing companies and ensure adequate stock levels for their products.</p>
    </div>
  </div>

  <div class="footer">
    <p>This report was automatically generated by the Inventory Management System</p>
    <p>For questions or support, please contact your system administrator</p>
  </div>
</div>
</body>
</html>
`))
