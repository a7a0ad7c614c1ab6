package report

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pantry/backend/internal/domain/fiscal"
	"github.com/pantry/backend/internal/domain/ledger"
	"github.com/pantry/backend/internal/domain/reconciliation"
	"github.com/pantry/backend/internal/domain/shared"
	"github.com/pantry/backend/internal/infrastructure/cache"
)

// ReportService produces paginated period reconciliation reports. The
// full report is computed once per period and served from a single-slot
// TTL cache; pagination slices the cached rows.
type ReportService struct {
	reader          ledger.Reader
	calendar        fiscal.Calendar
	aggregator      *reconciliation.Aggregator
	cache           *cache.ReportCache
	defaultPageSize int
	now             func() time.Time
	logger          *zap.Logger
}

// NewReportService creates a new ReportService
func NewReportService(
	reader ledger.Reader,
	calendar fiscal.Calendar,
	reportCache *cache.ReportCache,
	defaultPageSize int,
	logger *zap.Logger,
) *ReportService {
	if defaultPageSize <= 0 {
		defaultPageSize = 50
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		reader:          reader,
		calendar:        calendar,
		aggregator:      reconciliation.NewAggregator(calendar),
		cache:           reportCache,
		defaultPageSize: defaultPageSize,
		now:             time.Now,
		logger:          logger.Named("report"),
	}
}

// Get returns one page of the reconciliation report for the queried
// period. An empty query resolves to the period containing today.
// Pages past the end of the report return empty rows with the real
// total, never an error.
func (s *ReportService) Get(ctx context.Context, q Query) (*Response, error) {
	period, err := s.resolvePeriod(q)
	if err != nil {
		return nil, err
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = s.defaultPageSize
	}

	entry, hit, err := s.full(ctx, period)
	if err != nil {
		return nil, err
	}

	total := len(entry.Rows)
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &Response{
		Period:       period,
		Rows:         entry.Rows[start:end],
		Totals:       entry.Totals,
		Skipped:      entry.Skipped,
		SkippedCount: len(entry.Skipped),
		Total:        total,
		Current:      page,
		PageSize:     pageSize,
		FromCache:    hit,
	}, nil
}

// Full returns the complete unpaginated report for the queried period.
// Used by the export surface.
func (s *ReportService) Full(ctx context.Context, q Query) (*Response, error) {
	period, err := s.resolvePeriod(q)
	if err != nil {
		return nil, err
	}

	entry, hit, err := s.full(ctx, period)
	if err != nil {
		return nil, err
	}

	return &Response{
		Period:       period,
		Rows:         entry.Rows,
		Totals:       entry.Totals,
		Skipped:      entry.Skipped,
		SkippedCount: len(entry.Skipped),
		Total:        len(entry.Rows),
		Current:      1,
		PageSize:     len(entry.Rows),
		FromCache:    hit,
	}, nil
}

// resolvePeriod maps the query to a fiscal period
func (s *ReportService) resolvePeriod(q Query) (fiscal.Period, error) {
	if q.Month != "" {
		anchor, err := time.ParseInLocation("2006-01", q.Month, s.calendar.Location())
		if err != nil {
			return fiscal.Period{}, shared.NewDomainError("INVALID_PERIOD",
				fmt.Sprintf("month must be formatted YYYY-MM, got %q", q.Month))
		}
		// The first of a month is always before the cutover day, so it
		// resolves to the period labeled with that month
		return s.calendar.ResolvePeriod(anchor), nil
	}
	if !q.Anchor.IsZero() {
		return s.calendar.ResolvePeriod(q.Anchor), nil
	}
	return s.calendar.ResolvePeriod(s.now()), nil
}

// full returns the complete report for the period, from cache when fresh
func (s *ReportService) full(ctx context.Context, period fiscal.Period) (*cache.ReportEntry, bool, error) {
	return s.cache.GetOrCompute(period.Label, func() (*cache.ReportEntry, error) {
		return s.compute(ctx, period)
	})
}

// compute aggregates the report from the ledger. The entry window
// covers the previous period too, its net movement seeds the opening
// balances.
func (s *ReportService) compute(ctx context.Context, period fiscal.Period) (*cache.ReportEntry, error) {
	previous := s.calendar.PreviousPeriod(period)

	products, err := s.reader.ListCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUpstreamFailure, err)
	}

	entries, err := s.reader.ListEntries(ctx, ledger.EntryFilter{
		Start: previous.Start,
		End:   period.End,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUpstreamFailure, err)
	}

	result := s.aggregator.Aggregate(period, products, entries)
	if len(result.Skipped) > 0 {
		s.logger.Warn("entries skipped during aggregation",
			zap.String("period", period.Label),
			zap.Int("skipped", len(result.Skipped)),
		)
	}

	return &cache.ReportEntry{
		Rows:    result.Rows,
		Totals:  result.Totals,
		Skipped: result.Skipped,
	}, nil
}
