// Package report serves the dashboard and summary read models and exports the
// summary as a workbook.
package report

import (
	"context"
	"time"

	"github.com/moldshop/erp/internal/domain/report"
	"github.com/moldshop/erp/internal/infrastructure/export"
	"github.com/moldshop/erp/internal/infrastructure/telemetry"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Cache keys
const (
	DashboardCacheKey = "dashboard"
	SummaryCacheKey   = "summary"
)

// XLSXContentType is the media type of exported workbooks
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ResultCache stores computed reports between requests
type ResultCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Invalidate(ctx context.Context) error
}

// Archive keeps a copy of exported workbooks
type Archive interface {
	Put(ctx context.Context, name string, data []byte, contentType string) (string, error)
	DownloadURL(ctx context.Context, key string) (string, time.Time, error)
}

// ExportResult is a rendered workbook and, when archived, where it lives
type ExportResult struct {
	FileName    string
	ContentType string
	Data        []byte
	ArchiveKey  string
	DownloadURL string
	URLExpires  time.Time
}

// ReportService computes the reports
type ReportService struct {
	repo    report.Repository
	cache   ResultCache
	archive Archive
	logger  *zap.Logger
	now     func() time.Time
}

// NewReportService creates a new ReportService. cache and archive may be nil.
func NewReportService(repo report.Repository, cache ResultCache, archive Archive, logger *zap.Logger) *ReportService {
	return &ReportService{
		repo:    repo,
		cache:   cache,
		archive: archive,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Dashboard returns the landing page overview
func (s *ReportService) Dashboard(ctx context.Context) (*report.Dashboard, error) {
	var cached report.Dashboard
	if s.lookup(ctx, DashboardCacheKey, &cached) {
		return &cached, nil
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "report", "dashboard")
	defer span.End()

	d := &report.Dashboard{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { d.TotalProducts, err = s.repo.CountProducts(gctx); return })
	g.Go(func() (err error) { d.LowStock, err = s.repo.CountLowStock(gctx); return })
	g.Go(func() (err error) { d.TotalCustomers, err = s.repo.CountCustomers(gctx); return })
	g.Go(func() (err error) { d.PendingOrders, err = s.repo.CountPendingSalesOrders(gctx); return })
	g.Go(func() (err error) { d.TotalSales, err = s.repo.TotalCompletedSales(gctx); return })
	g.Go(func() (err error) {
		d.RecentOrders, err = s.repo.RecentOrders(gctx, report.RecentOrdersLimit)
		return
	})
	if err := g.Wait(); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if d.RecentOrders == nil {
		d.RecentOrders = []report.RecentOrder{}
	}

	s.store(ctx, DashboardCacheKey, d)
	return d, nil
}

// Summary returns the full report page
func (s *ReportService) Summary(ctx context.Context) (*report.Summary, error) {
	var cached report.Summary
	if s.lookup(ctx, SummaryCacheKey, &cached) {
		return &cached, nil
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "report", "summary")
	defer span.End()

	sum := &report.Summary{GeneratedAt: s.now()}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { sum.InventoryValue, err = s.repo.InventoryValue(gctx); return })
	g.Go(func() (err error) { sum.LowStockItems, err = s.repo.LowStockItems(gctx); return })
	g.Go(func() (err error) {
		sum.TopProducts, err = s.repo.TopProducts(gctx, report.TopProductsLimit)
		return
	})
	g.Go(func() (err error) {
		sum.MonthlySales, err = s.repo.MonthlySales(gctx, report.MonthlySalesLimit)
		return
	})
	g.Go(func() (err error) {
		sum.TopCustomers, err = s.repo.TopCustomers(gctx, report.TopCustomersLimit)
		return
	})
	g.Go(func() (err error) { sum.Production, err = s.repo.ProductionSummary(gctx); return })
	if err := g.Wait(); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	normalizeSummary(sum)

	s.store(ctx, SummaryCacheKey, sum)
	return sum, nil
}

// Export renders the summary as an XLSX workbook and archives a copy when an
// archive is configured. A failed upload is logged and the workbook is still
// returned.
func (s *ReportService) Export(ctx context.Context) (*ExportResult, error) {
	sum, err := s.Summary(ctx)
	if err != nil {
		return nil, err
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "report", "export")
	defer span.End()

	data, err := export.SummaryWorkbook(sum)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	result := &ExportResult{
		FileName:    export.SummaryFileName(sum),
		ContentType: XLSXContentType,
		Data:        data,
	}
	if s.archive == nil {
		return result, nil
	}

	key, err := s.archive.Put(ctx, result.FileName, data, XLSXContentType)
	if err != nil {
		s.logger.Warn("failed to archive report export", zap.String("file", result.FileName), zap.Error(err))
		return result, nil
	}
	result.ArchiveKey = key
	url, expires, err := s.archive.DownloadURL(ctx, key)
	if err != nil {
		s.logger.Warn("failed to sign archive url", zap.String("key", key), zap.Error(err))
		return result, nil
	}
	result.DownloadURL = url
	result.URLExpires = expires
	s.logger.Info("report export archived", zap.String("key", key), zap.Int("bytes", len(data)))
	return result, nil
}

func (s *ReportService) lookup(ctx context.Context, key string, dest any) bool {
	if s.cache == nil {
		return false
	}
	found, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.logger.Warn("report cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return found
}

func (s *ReportService) store(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value); err != nil {
		s.logger.Warn("report cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func normalizeSummary(sum *report.Summary) {
	if sum.LowStockItems == nil {
		sum.LowStockItems = []report.LowStockItem{}
	}
	if sum.TopProducts == nil {
		sum.TopProducts = []report.ProductSales{}
	}
	if sum.MonthlySales == nil {
		sum.MonthlySales = []report.MonthlySales{}
	}
	if sum.TopCustomers == nil {
		sum.TopCustomers = []report.CustomerSpend{}
	}
	if sum.Production.OrdersByStatus == nil {
		sum.Production.OrdersByStatus = map[string]int64{}
	}
}
