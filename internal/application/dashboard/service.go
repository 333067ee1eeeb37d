// Package dashboard resolves timeframe selections for the dashboard header.
package dashboard

import (
	"context"
	"time"

	"github.com/locationgenius/dashboard/internal/application/dashboard/dto"
	"github.com/locationgenius/dashboard/internal/domain/dashboard"
	"github.com/locationgenius/dashboard/internal/shared/biztime"
	"github.com/locationgenius/dashboard/internal/shared/errors"
	"github.com/locationgenius/dashboard/internal/shared/logger"
)

type Service struct {
	now    func() time.Time
	logger logger.Interface
}

// NewService uses the business-timezone clock.
func NewService(logger logger.Interface) *Service {
	return NewServiceWithClock(biztime.Now, logger)
}

func NewServiceWithClock(now func() time.Time, logger logger.Interface) *Service {
	return &Service{
		now:    now,
		logger: logger,
	}
}

// ResolveTimeframe applies the selection to the previously held date.
func (s *Service) ResolveTimeframe(_ context.Context, req dto.ResolveTimeframeRequest) (*dto.TimeframeResponse, error) {
	tf, err := dashboard.ParseTimeframe(req.Selection)
	if err != nil {
		return nil, errors.NewValidationError("invalid timeframe selection", req.Selection)
	}

	now := s.now()
	current := dashboard.Selection{Timeframe: dashboard.TimeframeToday}
	if req.Previous != nil {
		current.Date = req.Previous.In(now.Location())
	}

	next := current.Select(tf, now)
	_, changed := dashboard.Resolve(tf, now)

	resp := &dto.TimeframeResponse{
		Timeframe: next.Timeframe.String(),
		Label:     next.Label(),
		Changed:   changed,
	}
	if !next.Date.IsZero() {
		date := next.Date
		resp.Date = &date
	}

	s.logger.Debugw("resolved dashboard timeframe",
		"timeframe", tf,
		"changed", changed,
	)
	return resp, nil
}

// PickDate applies an explicitly chosen date. Any day other than today
// turns the selection into custom.
func (s *Service) PickDate(_ context.Context, req dto.PickDateRequest) (*dto.TimeframeResponse, error) {
	current := dashboard.TimeframeToday
	if req.Timeframe != "" {
		tf, err := dashboard.ParseTimeframe(req.Timeframe)
		if err != nil {
			return nil, errors.NewValidationError("invalid timeframe selection", req.Timeframe)
		}
		current = tf
	}

	date, err := biztime.ParseDate(req.Date)
	if err != nil {
		return nil, errors.NewValidationError("invalid date, expected YYYY-MM-DD", req.Date)
	}

	now := s.now()
	next := dashboard.Selection{Timeframe: current}.PickDate(date.In(now.Location()), now)

	return &dto.TimeframeResponse{
		Timeframe: next.Timeframe.String(),
		Label:     next.Label(),
		Date:      &next.Date,
		Changed:   true,
	}, nil
}

// ListTimeframes returns the selector options in display order.
func (s *Service) ListTimeframes() []dto.TimeframeOption {
	options := make([]dto.TimeframeOption, 0, len(dashboard.Timeframes))
	for _, tf := range dashboard.Timeframes {
		options = append(options, dto.TimeframeOption{
			Value: tf.String(),
			Label: tf.Label(),
		})
	}
	return options
}
