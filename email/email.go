// Package email sends transactional notification emails through the Resend
// HTTP API.
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"time"

	"app/models"
)

const (
	resendEndpoint = "https://api.resend.com/emails"
	sendTimeout    = 15 * time.Second
)

// Mailer is the send surface the background jobs depend on.
type Mailer interface {
	Send(ctx context.Context, to []string, subject, html string) error
}

// Client talks to the Resend API. A zero API key disables sending, which
// keeps local development working without credentials.
type Client struct {
	apiKey   string
	from     string
	endpoint string
	http     *http.Client
}

func NewClient(apiKey, from string) *Client {
	return &Client{
		apiKey:   apiKey,
		from:     from,
		endpoint: resendEndpoint,
		http:     &http.Client{Timeout: sendTimeout},
	}
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (c *Client) Send(ctx context.Context, to []string, subject, html string) error {
	if c.apiKey == "" {
		return fmt.Errorf("email not configured")
	}
	if len(to) == 0 {
		return fmt.Errorf("no recipients")
	}

	body, err := json.Marshal(sendRequest{
		From:    c.from,
		To:      to,
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return fmt.Errorf("marshal email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("email provider returned %d: %s", resp.StatusCode, string(msg))
	}
	return nil
}

// ExpiringSoonEmail builds the notification sent when items come within the
// expiry warning window.
func ExpiringSoonEmail(items []models.Stock) (subject, html string) {
	subject = fmt.Sprintf("Inventory Alert: %d item(s) expiring soon", len(items))
	return subject, itemTable("Items Expiring Soon",
		"The following items will expire within the next 3 months. Plan sales or promotions to move them before the expiry date.", items)
}

// ExpiredEmail builds the notification sent when items pass their expiry date.
func ExpiredEmail(items []models.Stock) (subject, html string) {
	subject = fmt.Sprintf("Inventory Alert: %d item(s) expired", len(items))
	return subject, itemTable("Expired Items",
		"The following items have passed their expiry date and should be removed from sellable stock.", items)
}

func itemTable(title, intro string, items []models.Stock) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, `<div style="font-family: sans-serif; max-width: 600px;">`)
	fmt.Fprintf(&b, `<h2 style="color: #4f46e5;">%s</h2><p>%s</p>`, title, intro)
	b.WriteString(`<table style="width: 100%; border-collapse: collapse;">` +
		`<tr style="background: #4f46e5; color: white;">` +
		`<th style="padding: 8px; text-align: left;">Item</th>` +
		`<th style="padding: 8px; text-align: left;">Company</th>` +
		`<th style="padding: 8px; text-align: left;">Quantity</th>` +
		`<th style="padding: 8px; text-align: left;">Expiry Date</th></tr>`)
	for _, item := range items {
		expiry := "-"
		if item.ExpiryDate != nil {
			expiry = item.ExpiryDate.Format("January 2, 2006")
		}
		fmt.Fprintf(&b,
			`<tr><td style="padding: 8px; border-bottom: 1px solid #e5e7eb;">%s</td>`+
				`<td style="padding: 8px; border-bottom: 1px solid #e5e7eb;">%s</td>`+
				`<td style="padding: 8px; border-bottom: 1px solid #e5e7eb;">%.2f %s</td>`+
				`<td style="padding: 8px; border-bottom: 1px solid #e5e7eb;">%s</td></tr>`,
			html.EscapeString(item.Name), html.EscapeString(item.CompanyName), item.Quantity, item.QuantityType, expiry)
	}
	b.WriteString(`</table>`)
	b.WriteString(`<p style="color: #666; font-size: 12px; margin-top: 16px;">This is an automated notification from the Inventory Management System.</p></div>`)
	return b.String()
}
