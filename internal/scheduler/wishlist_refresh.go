// Package scheduler runs the periodic background jobs of the
// storefront. Currently that is one job: revalidating the cached
// wishlist so long-lived sessions pick up changes made on other
// devices.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Revalidator drops a cached remote view and refetches it.
type Revalidator interface {
	Revalidate(ctx context.Context)
}

// WishlistRefreshScheduler periodically revalidates the wishlist
// query cache on a cron schedule.
type WishlistRefreshScheduler struct {
	store    Revalidator
	schedule string
	enabled  bool

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	isSyncing  bool
	cancelFunc context.CancelFunc
}

// NewWishlistRefreshScheduler creates a new scheduler instance.
// The schedule uses standard five-field cron syntax.
func NewWishlistRefreshScheduler(store Revalidator, schedule string, enabled bool) *WishlistRefreshScheduler {
	return &WishlistRefreshScheduler{
		store:    store,
		schedule: schedule,
		enabled:  enabled,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if refresh is enabled.
func (s *WishlistRefreshScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.enabled {
		log.Printf("Wishlist refresh scheduler: disabled")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runRefresh()
	})
	if err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Wishlist refresh scheduler: started with schedule '%s'", s.schedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running refresh.
func (s *WishlistRefreshScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Wishlist refresh scheduler: stopped")
}

// RunNow triggers an immediate refresh.
func (s *WishlistRefreshScheduler) RunNow() {
	go s.runRefresh()
}

// IsRunning returns whether the scheduler is active.
func (s *WishlistRefreshScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTime returns when the next refresh will occur.
func (s *WishlistRefreshScheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *WishlistRefreshScheduler) runRefresh() {
	s.mu.Lock()
	if s.isSyncing {
		s.mu.Unlock()
		log.Printf("Wishlist refresh: skipped (already running)")
		return
	}
	s.isSyncing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isSyncing = false
		s.mu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	start := time.Now()
	s.store.Revalidate(ctx)
	log.Printf("Wishlist refresh: revalidated in %v", time.Since(start).Round(time.Millisecond))
}
