// Package scheduler runs the periodic alert scan.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/medistock/medistock/internal/service"
)

// Scheduler periodically evaluates the alert views and logs the findings.
type Scheduler struct {
	cron              *cron.Cron
	alerts            service.AlertService
	spec              string
	lowStockThreshold int32
	expiryHorizonDays int
	logger            *slog.Logger
}

// New creates a scheduler that scans alerts on the given cron spec.
func New(alerts service.AlertService, spec string, lowStockThreshold int32, expiryHorizonDays int, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:              cron.New(),
		alerts:            alerts,
		spec:              spec,
		lowStockThreshold: lowStockThreshold,
		expiryHorizonDays: expiryHorizonDays,
		logger:            logger.With("component", "scheduler"),
	}
}

// Start registers the alert scan and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.scanAlerts); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("Alert scan scheduled", "spec", s.spec)
	return nil
}

// Stop stops the cron loop, waiting for a running scan to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Scheduler stopped")
}

func (s *Scheduler) scanAlerts() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	low, err := s.alerts.LowStock(ctx, s.lowStockThreshold)
	if err != nil {
		s.logger.Error("Low-stock scan failed", "error", err)
		return
	}
	for _, p := range low {
		s.logger.Warn("Low stock", "ID", p.ID, "Name", p.Name, "Stock", p.Stock)
	}

	near, err := s.alerts.NearExpiry(ctx, s.expiryHorizonDays)
	if err != nil {
		s.logger.Error("Near-expiry scan failed", "error", err)
		return
	}
	for _, p := range near {
		s.logger.Warn("Near expiry", "ID", p.ID, "Name", p.Name, "ExpiryDate", p.ExpiryDate)
	}

	s.logger.Info("Alert scan completed", "low_stock", len(low), "near_expiry", len(near))
}
