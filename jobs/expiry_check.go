// Package jobs runs the scheduled background work: the daily expiry scan that
// flags stock nearing or past its expiry date and notifies administrators.
package jobs

import (
	"context"
	"log"
	"time"

	"app/database"
	"app/email"
	"app/models"
)

const (
	runHour           = 9
	expiryWarnMonths  = 3
	expiryScanTimeout = 2 * time.Minute
)

// ExpiryStatus is the classification of a stock item relative to its expiry
// date at a given moment.
type ExpiryStatus int

const (
	ExpiryOK ExpiryStatus = iota
	ExpiringSoon
	Expired
)

// ClassifyExpiry places an item in the expiry lifecycle. Items expire at the
// end of their expiry day; the warning window opens 3 months before that.
func ClassifyExpiry(stock models.Stock, now time.Time) ExpiryStatus {
	if stock.ExpiryDate == nil {
		return ExpiryOK
	}
	expiry := *stock.ExpiryDate
	if !expiry.After(now) {
		return Expired
	}
	if !expiry.After(now.AddDate(0, expiryWarnMonths, 0)) {
		return ExpiringSoon
	}
	return ExpiryOK
}

// NextRunAt returns the next daily run time at 09:00 in the given location.
func NextRunAt(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), runHour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// ExpiryChecker owns the daily scan. Mailer may be a disabled client; flag
// updates still happen, only the notification is skipped.
type ExpiryChecker struct {
	mailer email.Mailer
}

func NewExpiryChecker(mailer email.Mailer) *ExpiryChecker {
	return &ExpiryChecker{mailer: mailer}
}

// Start launches the daily loop. It returns immediately; the loop stops when
// ctx is cancelled.
func (e *ExpiryChecker) Start(ctx context.Context) {
	go func() {
		for {
			wait := time.Until(NextRunAt(time.Now()))
			select {
			case <-ctx.Done():
				return
			case <-time.After(wait):
			}

			runCtx, cancel := context.WithTimeout(ctx, expiryScanTimeout)
			if err := e.RunOnce(runCtx); err != nil {
				log.Printf("Expiry check failed: %v", err)
			}
			cancel()
		}
	}()
}

// RunOnce performs a single scan over all stock that carries an expiry date.
// Flags are reconciled in both directions, so correcting an expiry date on an
// item clears stale flags on the next run. Notification emails are sent once
// per item per state, tracked by the notified date stamps.
func (e *ExpiryChecker) RunOnce(ctx context.Context) error {
	now := time.Now().UTC()

	stocks, err := database.StocksWithExpiry(ctx)
	if err != nil {
		return err
	}

	var notifyExpiring, notifyExpired []models.Stock
	for _, stock := range stocks {
		updated, changed := reconcileFlags(stock, now)
		if updated.IsExpiringSoon && updated.DateExpiringSoonNotified == nil {
			notifyExpiring = append(notifyExpiring, updated)
			updated.DateExpiringSoonNotified = &now
			changed = true
		}
		if updated.IsExpired && updated.DateExpiredNotified == nil {
			notifyExpired = append(notifyExpired, updated)
			updated.DateExpiredNotified = &now
			changed = true
		}
		if changed {
			updated.UpdatedAt = now
			if err := database.ReplaceStock(ctx, updated); err != nil {
				log.Printf("Expiry check: failed to update stock %s: %v", updated.ID.Hex(), err)
			}
		}
	}

	if len(notifyExpiring) == 0 && len(notifyExpired) == 0 {
		return nil
	}

	admins, err := database.AdminEmails(ctx)
	if err != nil {
		return err
	}
	if len(admins) == 0 {
		log.Printf("Expiry check: no admin recipients, skipping notifications")
		return nil
	}

	if len(notifyExpiring) > 0 {
		subject, body := email.ExpiringSoonEmail(notifyExpiring)
		if err := e.mailer.Send(ctx, admins, subject, body); err != nil {
			log.Printf("Expiry check: expiring-soon email failed: %v", err)
		}
	}
	if len(notifyExpired) > 0 {
		subject, body := email.ExpiredEmail(notifyExpired)
		if err := e.mailer.Send(ctx, admins, subject, body); err != nil {
			log.Printf("Expiry check: expired email failed: %v", err)
		}
	}
	return nil
}

// reconcileFlags moves the item's expiry flags to match its current status.
// Leaving a state resets the matching notified stamp so a later re-entry
// notifies again.
func reconcileFlags(stock models.Stock, now time.Time) (models.Stock, bool) {
	status := ClassifyExpiry(stock, now)
	changed := false

	switch status {
	case Expired:
		if !stock.IsExpired {
			stock.IsExpired = true
			stock.DateExpired = &now
			changed = true
		}
		if stock.IsExpiringSoon {
			stock.IsExpiringSoon = false
			changed = true
		}
	case ExpiringSoon:
		if !stock.IsExpiringSoon {
			stock.IsExpiringSoon = true
			changed = true
		}
		if stock.IsExpired {
			stock.IsExpired = false
			stock.DateExpired = nil
			stock.DateExpiredNotified = nil
			changed = true
		}
	default:
		if stock.IsExpiringSoon {
			stock.IsExpiringSoon = false
			stock.DateExpiringSoonNotified = nil
			changed = true
		}
		if stock.IsExpired {
			stock.IsExpired = false
			stock.DateExpired = nil
			stock.DateExpiredNotified = nil
			changed = true
		}
	}
	return stock, changed
}
