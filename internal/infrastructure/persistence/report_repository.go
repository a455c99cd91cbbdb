package persistence

import (
	"context"
	"sort"
	"time"

	"github.com/moldshop/erp/internal/domain/production"
	"github.com/moldshop/erp/internal/domain/report"
	"github.com/moldshop/erp/internal/domain/trade"
	"github.com/moldshop/erp/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormReportRepository runs the read-only aggregation queries
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

func (r *GormReportRepository) count(ctx context.Context, model any, query string, args ...any) (int64, error) {
	q := conn(ctx, r.db).Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}

func (r *GormReportRepository) sum(ctx context.Context, model any, expr, query string, args ...any) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	q := conn(ctx, r.db).Model(model).Select("SUM(" + expr + ")")
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// CountProducts counts all products
func (r *GormReportRepository) CountProducts(ctx context.Context) (int64, error) {
	return r.count(ctx, &models.ProductModel{}, "")
}

// CountLowStock counts products at or below their reorder level
func (r *GormReportRepository) CountLowStock(ctx context.Context) (int64, error) {
	return r.count(ctx, &models.ProductModel{}, "quantity <= reorder_level")
}

// CountCustomers counts all customers
func (r *GormReportRepository) CountCustomers(ctx context.Context) (int64, error) {
	return r.count(ctx, &models.CustomerModel{}, "")
}

// CountPendingSalesOrders counts sales orders awaiting completion
func (r *GormReportRepository) CountPendingSalesOrders(ctx context.Context) (int64, error) {
	return r.count(ctx, &models.SalesOrderModel{}, "status = ?", trade.SalesOrderStatusPending)
}

// TotalCompletedSales sums the totals of completed sales orders
func (r *GormReportRepository) TotalCompletedSales(ctx context.Context) (decimal.Decimal, error) {
	return r.sum(ctx, &models.SalesOrderModel{}, "total_amount", "status = ?", trade.SalesOrderStatusCompleted)
}

// RecentOrders lists the newest sales orders with the customer name
func (r *GormReportRepository) RecentOrders(ctx context.Context, limit int) ([]report.RecentOrder, error) {
	var rows []report.RecentOrder
	err := conn(ctx, r.db).Table("sales_orders AS so").
		Select("so.id, so.order_number, c.name AS customer_name, so.order_date, so.status, so.total_amount").
		Joins("LEFT JOIN customers c ON c.id = so.customer_id").
		Order("so.order_date DESC").Order("so.order_number DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []report.RecentOrder{}
	}
	return rows, nil
}

// InventoryValue is the sum of quantity times unit price over all products
func (r *GormReportRepository) InventoryValue(ctx context.Context) (decimal.Decimal, error) {
	return r.sum(ctx, &models.ProductModel{}, "quantity * unit_price", "")
}

// LowStockItems lists products at or below their reorder level
func (r *GormReportRepository) LowStockItems(ctx context.Context) ([]report.LowStockItem, error) {
	var rows []report.LowStockItem
	err := conn(ctx, r.db).Model(&models.ProductModel{}).
		Select("id, name, sku, quantity, reorder_level").
		Where("quantity <= reorder_level").
		Order("quantity ASC").Order("name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []report.LowStockItem{}
	}
	return rows, nil
}

// TopProducts ranks products by units sold on orders that were not cancelled
func (r *GormReportRepository) TopProducts(ctx context.Context, limit int) ([]report.ProductSales, error) {
	var rows []report.ProductSales
	err := conn(ctx, r.db).Table("sales_order_items AS soi").
		Select("p.id AS product_id, p.name, SUM(soi.quantity) AS total_sold, SUM(soi.subtotal) AS revenue").
		Joins("JOIN products p ON p.id = soi.product_id").
		Joins("JOIN sales_orders so ON so.id = soi.sales_order_id").
		Where("so.status <> ?", trade.SalesOrderStatusCancelled).
		Group("p.id, p.name").
		Order("total_sold DESC").Order("p.name ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []report.ProductSales{}
	}
	return rows, nil
}

// MonthlySales groups completed sales by calendar month (UTC), newest first.
// Grouping happens here so the query is identical on every dialect.
func (r *GormReportRepository) MonthlySales(ctx context.Context, limit int) ([]report.MonthlySales, error) {
	var orders []struct {
		OrderDate   time.Time
		TotalAmount decimal.Decimal
	}
	if err := conn(ctx, r.db).Model(&models.SalesOrderModel{}).
		Select("order_date, total_amount").
		Where("status = ?", trade.SalesOrderStatusCompleted).
		Scan(&orders).Error; err != nil {
		return nil, err
	}

	byMonth := make(map[string]*report.MonthlySales)
	for _, o := range orders {
		month := o.OrderDate.UTC().Format("2006-01")
		m, ok := byMonth[month]
		if !ok {
			m = &report.MonthlySales{Month: month, Revenue: decimal.Zero}
			byMonth[month] = m
		}
		m.OrderCount++
		m.Revenue = m.Revenue.Add(o.TotalAmount)
	}

	out := make([]report.MonthlySales, 0, len(byMonth))
	for _, m := range byMonth {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month > out[j].Month })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// TopCustomers ranks customers by completed order value
func (r *GormReportRepository) TopCustomers(ctx context.Context, limit int) ([]report.CustomerSpend, error) {
	var rows []report.CustomerSpend
	err := conn(ctx, r.db).Table("customers AS c").
		Select("c.id AS customer_id, c.name, COUNT(so.id) AS order_count, SUM(so.total_amount) AS total_spent").
		Joins("JOIN sales_orders so ON so.customer_id = c.id").
		Where("so.status = ?", trade.SalesOrderStatusCompleted).
		Group("c.id, c.name").
		Order("total_spent DESC").Order("c.name ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []report.CustomerSpend{}
	}
	return rows, nil
}

// ProductionSummary aggregates production orders and mold wear
func (r *GormReportRepository) ProductionSummary(ctx context.Context) (report.ProductionSummary, error) {
	summary := report.ProductionSummary{OrdersByStatus: map[string]int64{
		string(production.OrderStatusPlanned):    0,
		string(production.OrderStatusInProgress): 0,
		string(production.OrderStatusCompleted):  0,
	}}

	var byStatus []struct {
		Status string
		Count  int64
	}
	if err := conn(ctx, r.db).Model(&models.ProductionOrderModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		return summary, err
	}
	for _, s := range byStatus {
		summary.OrdersByStatus[s.Status] = s.Count
	}

	var totals struct {
		Produced *int64
		Scrap    *int64
	}
	if err := conn(ctx, r.db).Model(&models.ProductionOrderModel{}).
		Select("SUM(produced_quantity) AS produced, SUM(scrap_quantity) AS scrap").
		Where("status = ?", production.OrderStatusCompleted).
		Scan(&totals).Error; err != nil {
		return summary, err
	}
	if totals.Produced != nil {
		summary.TotalProduced = *totals.Produced
	}
	if totals.Scrap != nil {
		summary.TotalScrap = *totals.Scrap
	}

	var err error
	summary.MoldsNeedMaintenance, err = r.count(ctx, &models.MoldModel{},
		"maintenance_interval > 0 AND shots_since_maintenance >= maintenance_interval")
	if err != nil {
		return summary, err
	}
	summary.PendingInspections, err = r.count(ctx, &models.ProductionOrderModel{},
		"status = ? AND quality_status = ?", production.OrderStatusCompleted, production.QualityStatusPending)
	if err != nil {
		return summary, err
	}
	return summary, nil
}

var _ report.Repository = (*GormReportRepository)(nil)
