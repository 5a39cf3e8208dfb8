package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"app/models"
)

func TestSendPostsToProvider(t *testing.T) {
	var received sendRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient("test-key", "alerts@example.com")
	client.endpoint = srv.URL

	err := client.Send(context.Background(), []string{"admin@example.com"}, "Subject", "<p>Body</p>")
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", auth)
	assert.Equal(t, "alerts@example.com", received.From)
	assert.Equal(t, []string{"admin@example.com"}, received.To)
	assert.Equal(t, "Subject", received.Subject)
	assert.Equal(t, "<p>Body</p>", received.HTML)
}

func TestSendProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient("bad-key", "alerts@example.com")
	client.endpoint = srv.URL

	err := client.Send(context.Background(), []string{"admin@example.com"}, "Subject", "body")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestSendWithoutAPIKey(t *testing.T) {
	client := NewClient("", "alerts@example.com")
	err := client.Send(context.Background(), []string{"admin@example.com"}, "Subject", "body")
	assert.Error(t, err)
}

func TestSendWithoutRecipients(t *testing.T) {
	client := NewClient("key", "alerts@example.com")
	err := client.Send(context.Background(), nil, "Subject", "body")
	assert.Error(t, err)
}

func TestExpiryEmails(t *testing.T) {
	expiry := time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)
	items := []models.Stock{
		{Name: "Milk <1L>", CompanyName: "DairyCo", Quantity: 12, QuantityType: "litre", ExpiryDate: &expiry},
	}

	subject, body := ExpiringSoonEmail(items)
	assert.Equal(t, "Inventory Alert: 1 item(s) expiring soon", subject)
	assert.Contains(t, body, "Milk &lt;1L&gt;")
	assert.Contains(t, body, "September 15, 2025")

	subject, body = ExpiredEmail(items)
	assert.Equal(t, "Inventory Alert: 1 item(s) expired", subject)
	assert.Contains(t, body, "Expired Items")
	assert.Contains(t, body, "DairyCo")
}
