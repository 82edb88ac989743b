// Package service runs the validation flow: check the identifier, record the
// attempt, and serve history. Store and publisher failures never reach the
// caller; they are logged, counted, and answered with a degraded result.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"validarfc/internal/rfc"
	"validarfc/internal/validation/metrics"
	"validarfc/internal/validation/models"
	"validarfc/pkg/platform/sentinel"
	"validarfc/pkg/requestcontext"
)

// Store is the append-only history log.
type Store interface {
	Append(ctx context.Context, record models.Record) error
	ListPage(ctx context.Context, req models.PageRequest) (*models.Page, error)
}

// Publisher forwards records to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, record models.Record) error
}

// Service validates identifiers and records every attempt.
type Service struct {
	store     Store
	publisher Publisher
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
}

// Option configures optional collaborators.
type Option func(*Service)

// WithPublisher enables event publication after each validation.
func WithPublisher(p Publisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs the service. A nil store is allowed and behaves like a store
// that is permanently unavailable.
func New(store Store, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: logger,
		tracer: otel.Tracer("validarfc/validation"),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Validate normalizes and checks raw, then records the attempt. The returned
// record always reflects the validator's verdict, whether or not it was
// persisted. CreatedAt is the request time from ctx, in UTC.
func (s *Service) Validate(ctx context.Context, raw string) models.Record {
	ctx, span := s.tracer.Start(ctx, "validation.Validate")
	defer span.End()

	normalized, valid := rfc.Validate(raw)
	record := models.Record{
		RFC:       normalized,
		IsValid:   valid,
		CreatedAt: requestcontext.Now(ctx).UTC(),
	}
	span.SetAttributes(attribute.Bool("rfc.valid", valid))
	s.metrics.IncrementValidation(valid)

	if err := s.append(ctx, record); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "history append failed")
		s.metrics.IncrementStoreFailure("append")
		s.metrics.IncrementDegraded("validate")
		s.logger.WarnContext(ctx, "validation not recorded",
			"request_id", requestcontext.RequestID(ctx),
			"rfc", record.RFC,
			"unavailable", errors.Is(err, sentinel.ErrUnavailable),
			"error", err,
		)
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, record); err != nil {
			s.metrics.IncrementPublishFailure()
			s.logger.WarnContext(ctx, "validation event not published",
				"request_id", requestcontext.RequestID(ctx),
				"rfc", record.RFC,
				"error", err,
			)
		}
	}

	return record
}

// History returns one page of records, newest first. The request is clamped
// with PageRequest.Normalize. If the store cannot be read the result is an
// empty page with total 0.
func (s *Service) History(ctx context.Context, req models.PageRequest) *models.Page {
	ctx, span := s.tracer.Start(ctx, "validation.History")
	defer span.End()

	req = req.Normalize()
	span.SetAttributes(
		attribute.Int("page", req.Page),
		attribute.Int("per_page", req.PerPage),
	)

	page, err := s.list(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "history list failed")
		s.metrics.IncrementStoreFailure("list")
		s.metrics.IncrementDegraded("history")
		s.logger.WarnContext(ctx, "history unavailable, serving empty page",
			"request_id", requestcontext.RequestID(ctx),
			"page", req.Page,
			"per_page", req.PerPage,
			"unavailable", errors.Is(err, sentinel.ErrUnavailable),
			"error", err,
		)
		return models.EmptyPage(req)
	}

	if page.Items == nil {
		page.Items = []models.Record{}
	}
	return page
}

func (s *Service) append(ctx context.Context, record models.Record) error {
	if s.store == nil {
		return sentinel.ErrUnavailable
	}
	start := time.Now()
	defer func() { s.metrics.ObserveStoreLatency("append", time.Since(start)) }()
	return s.store.Append(ctx, record)
}

func (s *Service) list(ctx context.Context, req models.PageRequest) (*models.Page, error) {
	if s.store == nil {
		return nil, sentinel.ErrUnavailable
	}
	start := time.Now()
	defer func() { s.metrics.ObserveStoreLatency("list", time.Since(start)) }()

	page, err := s.store.ListPage(ctx, req)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, errors.New("store returned no page")
	}
	return page, nil
}
