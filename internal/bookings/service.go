package bookings

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aura-scheduling/backend/internal/models"
)

// Store is the read side a listing needs besides the visibility paths.
type Store interface {
	BookingsByIDs(ctx context.Context, ids []int, order Order) ([]models.Booking, error)
	RecurringSeries(ctx context.Context, ownerID int) ([]SeriesGroup, error)
	RecurringOccurrences(ctx context.Context, ownerID int) ([]SeriesOccurrence, error)
}

// Options tunes paging and defaults of the listing.
type Options struct {
	DefaultLimit    int
	MaxLimit        int
	DefaultCurrency string
	// ClampPage trims the returned list to the page size. Off by default: the list can then be longer
	// than the limit because every path over-fetches independently.
	ClampPage bool
}

// ListInput is one listing request. Nil Limit and Cursor take their defaults.
type ListInput struct {
	Filters Filters
	Limit   *int
	Cursor  *int
}

// ListResult is the response of a listing.
type ListResult struct {
	Bookings      []EnrichedBooking        `json:"bookings"`
	RecurringInfo []RecurringSeriesSummary `json:"recurringInfo"`
	NextCursor    *int                     `json:"nextCursor"`
}

// Service lists the bookings a viewer may see.
type Service struct {
	paths      []VisibilityPath
	store      Store
	normalizer *Normalizer
	opts       Options
	now        func() time.Time
	logger     *zap.Logger
}

// NewService creates a listing service. paths are merged in the order given.
func NewService(paths []VisibilityPath, store Store, blobs BlobValidator, opts Options, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 10
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = 100
	}
	return &Service{
		paths:      paths,
		store:      store,
		normalizer: NewNormalizer(blobs, opts.DefaultCurrency),
		opts:       opts,
		now:        time.Now,
		logger:     logger,
	}
}

func (s *Service) page(in ListInput) (take, skip int, err error) {
	take, skip = s.opts.DefaultLimit, 0
	if in.Limit != nil {
		take = *in.Limit
	}
	if in.Cursor != nil {
		skip = *in.Cursor
	}
	if take < 1 || take > s.opts.MaxLimit || skip < 0 {
		return 0, 0, ErrInvalidPage
	}
	return take, skip, nil
}

// List runs every visibility path and both recurring aggregates concurrently, merges and enriches the
// results and pages them. Any failed query fails the whole call.
func (s *Service) List(ctx context.Context, viewer Viewer, in ListInput) (*ListResult, error) {
	take, skip, err := s.page(in)
	if err != nil {
		return nil, err
	}
	pred, order, err := Resolve(in.Filters, s.now())
	if err != nil {
		return nil, err
	}
	q := Query{Viewer: viewer, Predicate: pred, Order: order, Take: take + 1, Skip: skip}

	results := make([][]Ref, len(s.paths))
	var (
		groups      []SeriesGroup
		occurrences []SeriesOccurrence
	)
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range s.paths {
		i, p := i, p
		g.Go(func() error {
			refs, err := p.Fetch(gctx, q)
			if err != nil {
				return &QueryError{Op: p.Name(), Err: err}
			}
			results[i] = refs
			return nil
		})
	}
	g.Go(func() error {
		rows, err := s.store.RecurringSeries(gctx, viewer.ID)
		if err != nil {
			return &QueryError{Op: "recurring_series", Err: err}
		}
		groups = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.store.RecurringOccurrences(gctx, viewer.ID)
		if err != nil {
			return &QueryError{Op: "recurring_occurrences", Err: err}
		}
		occurrences = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("list bookings", zap.Int("viewer_id", viewer.ID), zap.Error(err))
		return nil, err
	}

	unique := Dedup(results)
	if s.logger.Core().Enabled(zap.DebugLevel) {
		fields := []zap.Field{zap.Int("viewer_id", viewer.ID), zap.String("status", string(pred.Status)), zap.Int("unique", len(unique))}
		for i, p := range s.paths {
			fields = append(fields, zap.Int(p.Name(), len(results[i])))
		}
		s.logger.Debug("visibility paths fetched", fields...)
	}

	loaded, err := s.store.BookingsByIDs(ctx, ids(unique), order)
	if err != nil {
		err = &QueryError{Op: "enrich", Err: err}
		s.logger.Error("list bookings", zap.Int("viewer_id", viewer.ID), zap.Error(err))
		return nil, err
	}

	enriched := make([]EnrichedBooking, 0, len(loaded))
	for _, b := range loaded {
		eb, err := s.normalizer.Normalize(b, viewer)
		if err != nil {
			s.logger.Error("normalize booking", zap.Int("booking_id", b.ID), zap.Error(err))
			return nil, err
		}
		enriched = append(enriched, eb)
	}

	list, next := Paginate(enriched, take, skip, s.opts.ClampPage)
	return &ListResult{
		Bookings:      list,
		RecurringInfo: AggregateRecurring(groups, occurrences),
		NextCursor:    next,
	}, nil
}

// IsInputError reports whether err was caused by the request rather than the store or stored data.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidStatus) || errors.Is(err, ErrInvalidPage)
}
