// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the console's background jobs: keeping the
// category cache warm and pruning old diagnostics events.
package scheduler

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/olegiv/newsdesk-go/internal/cache"
	"github.com/olegiv/newsdesk-go/internal/store"
)

// EventRetention is how long diagnostics events are kept.
const EventRetention = 30 * 24 * time.Hour

// jobTimeout bounds each job run.
const jobTimeout = time.Minute

// Scheduler owns the cron instance and its jobs.
type Scheduler struct {
	db         *sql.DB
	categories *cache.CategoryCache
	cron       *cron.Cron
	logger     *slog.Logger
}

// New creates a scheduler. categories may be nil when the category
// cache is disabled; the refresh job is skipped in that case.
func New(db *sql.DB, categories *cache.CategoryCache, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		db:         db,
		categories: categories,
		cron:       cron.New(),
		logger:     logger,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	if s.categories != nil {
		// Every 10 minutes, so fresh categories appear in dropdowns
		// even when no write on this instance invalidated the cache.
		if _, err := s.cron.AddFunc("*/10 * * * *", s.refreshCategories); err != nil {
			return err
		}
	}

	// Daily at 03:15.
	if _, err := s.cron.AddFunc("15 3 * * *", s.pruneEvents); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) refreshCategories() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := s.categories.Refresh(ctx); err != nil {
		s.logger.Warn("category cache refresh failed", "category", "cache", "error", err)
	}
}

func (s *Scheduler) pruneEvents() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	deleted, err := store.New(s.db).DeleteOldEvents(ctx, EventRetention)
	if err != nil {
		s.logger.Error("event retention cleanup failed", "error", err)
		return
	}
	if deleted > 0 {
		s.logger.Info("pruned old events", "deleted", deleted)
	}
}
