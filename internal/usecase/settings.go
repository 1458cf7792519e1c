package usecase

import "time"

// Settings tunes the settlement engine. Zero values fall back to DefaultSettings.
type Settings struct {
	ClearingPeriod       time.Duration
	StornoBlockThreshold float64
	CaptureLease         time.Duration
	RefundLease          time.Duration
	TxMaxAttempts        int
	TxBaseBackoff        time.Duration
	SweepBatchSize       int
}

func DefaultSettings() Settings {
	return Settings{
		ClearingPeriod:       14 * 24 * time.Hour,
		StornoBlockThreshold: 90,
		CaptureLease:         5 * time.Minute,
		RefundLease:          5 * time.Minute,
		TxMaxAttempts:        3,
		TxBaseBackoff:        50 * time.Millisecond,
		SweepBatchSize:       100,
	}
}

func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.ClearingPeriod <= 0 {
		s.ClearingPeriod = d.ClearingPeriod
	}
	if s.StornoBlockThreshold <= 0 {
		s.StornoBlockThreshold = d.StornoBlockThreshold
	}
	if s.CaptureLease <= 0 {
		s.CaptureLease = d.CaptureLease
	}
	if s.RefundLease <= 0 {
		s.RefundLease = d.RefundLease
	}
	if s.TxMaxAttempts <= 0 {
		s.TxMaxAttempts = d.TxMaxAttempts
	}
	if s.TxBaseBackoff <= 0 {
		s.TxBaseBackoff = d.TxBaseBackoff
	}
	if s.SweepBatchSize <= 0 {
		s.SweepBatchSize = d.SweepBatchSize
	}
	return s
}

// Clock returns the current time; tests replace it.
type Clock func() time.Time

func systemClock() time.Time { return time.Now().UTC() }
