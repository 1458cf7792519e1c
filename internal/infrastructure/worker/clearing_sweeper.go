package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"marketplace_escrow/internal/usecase"

	"go.uber.org/zap"
)

// ClearingSweeper periodically releases orders whose clearing period has ended.
type ClearingSweeper struct {
	settlement usecase.ISettlementUseCase
	logger     *zap.Logger

	interval  time.Duration
	batchSize int

	mu        sync.Mutex
	isRunning bool
	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
}

func NewClearingSweeper(settlement usecase.ISettlementUseCase, interval time.Duration, batchSize int, logger *zap.Logger) *ClearingSweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &ClearingSweeper{
		settlement: settlement,
		logger:     logger.Named("worker"),
		interval:   interval,
		batchSize:  batchSize,
	}
}

// Start runs a sweep immediately and then once per interval until Stop or ctx is done.
func (s *ClearingSweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("clearing sweeper is already running")
	}

	s.ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.isRunning = true

	s.logger.Info("[settlement][worker] clearing sweeper started",
		zap.Duration("interval", s.interval),
		zap.Int("batch_size", s.batchSize))

	go s.loop()
	return nil
}

// Stop cancels the loop and waits for an in-flight sweep to finish.
func (s *ClearingSweeper) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	s.cancel()
	done := s.done
	s.mu.Unlock()

	<-done
	s.logger.Info("[settlement][worker] clearing sweeper stopped")
}

func (s *ClearingSweeper) Name() string {
	return "ClearingSweeper"
}

func (s *ClearingSweeper) loop() {
	defer close(s.done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sweep()
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *ClearingSweeper) sweep() {
	res, err := s.settlement.SweepClearing(s.ctx, time.Time{}, s.batchSize)
	if err != nil {
		if s.ctx.Err() == nil {
			s.logger.Error("[settlement][worker] sweep failed", zap.Error(err))
		}
		return
	}
	if res.Scanned > 0 {
		s.logger.Debug("[settlement][worker] sweep finished",
			zap.Int("released", res.Released),
			zap.Int("failed", res.Failed))
	}
}
