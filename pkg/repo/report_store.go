package repo

import (
	"context"
	"errors"
	"time"

	"finan/ms-seller-analytics/pkg/model"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"
)

// ErrReportNotFound is returned when a report id is unknown or its TTL
// has elapsed.
var ErrReportNotFound = errors.New("report not found or expired")

type ReportStoreInterface interface {
	Save(ctx context.Context, report model.Report) (model.Report, error)
	Get(ctx context.Context, id string) (model.Report, error)
	Purge(ctx context.Context) int
}

// ReportStore keeps computed reports in memory for later retrieval and
// workbook download. Entries expire after the configured TTL; this is
// request-scoped working storage, not a persistence layer.
type ReportStore struct {
	cache *cache.Cache
}

func NewReportStore(ttl time.Duration) ReportStoreInterface {
	return &ReportStore{
		cache: cache.New(ttl, ttl),
	}
}

func (s *ReportStore) Save(ctx context.Context, report model.Report) (model.Report, error) {
	report.ID = uuid.New().String()
	s.cache.SetDefault(report.ID, report)
	return report, nil
}

func (s *ReportStore) Get(ctx context.Context, id string) (model.Report, error) {
	v, ok := s.cache.Get(id)
	if !ok {
		return model.Report{}, ErrReportNotFound
	}
	report, ok := v.(model.Report)
	if !ok {
		return model.Report{}, ErrReportNotFound
	}
	return report, nil
}

// Purge drops every stored report and reports how many were evicted.
func (s *ReportStore) Purge(ctx context.Context) int {
	n := s.cache.ItemCount()
	s.cache.Flush()
	return n
}
