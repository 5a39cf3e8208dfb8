package jobs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"app/models"
)

var checkTime = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func stockExpiring(expiry time.Time) models.Stock {
	return models.Stock{Name: "Milk", ExpiryDate: &expiry}
}

func TestClassifyExpiry(t *testing.T) {
	cases := []struct {
		name   string
		expiry *time.Time
		want   ExpiryStatus
	}{
		{"no expiry date", nil, ExpiryOK},
		{"far future", timePtr(checkTime.AddDate(1, 0, 0)), ExpiryOK},
		{"just inside warning window", timePtr(checkTime.AddDate(0, 3, 0)), ExpiringSoon},
		{"next week", timePtr(checkTime.AddDate(0, 0, 7)), ExpiringSoon},
		{"exactly now", timePtr(checkTime), Expired},
		{"yesterday", timePtr(checkTime.AddDate(0, 0, -1)), Expired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyExpiry(models.Stock{ExpiryDate: tc.expiry}, checkTime)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNextRunAt(t *testing.T) {
	beforeNine := time.Date(2025, 6, 1, 7, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), NextRunAt(beforeNine))

	afterNine := time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC), NextRunAt(afterNine))

	atNine := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC), NextRunAt(atNine))
}

func TestReconcileFlagsEntersExpiringSoon(t *testing.T) {
	stock := stockExpiring(checkTime.AddDate(0, 1, 0))

	updated, changed := reconcileFlags(stock, checkTime)

	assert.True(t, changed)
	assert.True(t, updated.IsExpiringSoon)
	assert.False(t, updated.IsExpired)
	assert.Nil(t, updated.DateExpiringSoonNotified)
}

func TestReconcileFlagsExpiringSoonToExpired(t *testing.T) {
	stock := stockExpiring(checkTime.AddDate(0, 0, -1))
	stock.IsExpiringSoon = true
	stock.DateExpiringSoonNotified = timePtr(checkTime.AddDate(0, -2, 0))

	updated, changed := reconcileFlags(stock, checkTime)

	assert.True(t, changed)
	assert.True(t, updated.IsExpired)
	assert.False(t, updated.IsExpiringSoon)
	assert.NotNil(t, updated.DateExpired)
	assert.Nil(t, updated.DateExpiredNotified)
}

func TestReconcileFlagsClearsStaleExpiry(t *testing.T) {
	// Expiry date pushed out after the item was flagged.
	stock := stockExpiring(checkTime.AddDate(1, 0, 0))
	stock.IsExpired = true
	stock.DateExpired = timePtr(checkTime.AddDate(0, 0, -3))
	stock.DateExpiredNotified = timePtr(checkTime.AddDate(0, 0, -3))
	stock.IsExpiringSoon = true
	stock.DateExpiringSoonNotified = timePtr(checkTime.AddDate(0, -4, 0))

	updated, changed := reconcileFlags(stock, checkTime)

	assert.True(t, changed)
	assert.False(t, updated.IsExpired)
	assert.False(t, updated.IsExpiringSoon)
	assert.Nil(t, updated.DateExpired)
	assert.Nil(t, updated.DateExpiredNotified)
	assert.Nil(t, updated.DateExpiringSoonNotified)
}

func TestReconcileFlagsNoChangeIsStable(t *testing.T) {
	stock := stockExpiring(checkTime.AddDate(0, 1, 0))
	stock.IsExpiringSoon = true
	stock.DateExpiringSoonNotified = timePtr(checkTime.AddDate(0, -1, 0))

	_, changed := reconcileFlags(stock, checkTime)
	assert.False(t, changed)
}

func timePtr(t time.Time) *time.Time { return &t }
