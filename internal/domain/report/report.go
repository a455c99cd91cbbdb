// Package report defines the read models served by the dashboard and the
// summary reports. Nothing here mutates state.
package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Limits applied to ranked and recent lists
const (
	RecentOrdersLimit = 5
	TopProductsLimit  = 5
	TopCustomersLimit = 5
	MonthlySalesLimit = 6
)

// Dashboard is the landing page overview
type Dashboard struct {
	TotalProducts  int64           `json:"total_products"`
	LowStock       int64           `json:"low_stock"`
	TotalCustomers int64           `json:"total_customers"`
	PendingOrders  int64           `json:"pending_orders"`
	TotalSales     decimal.Decimal `json:"total_sales"`
	RecentOrders   []RecentOrder   `json:"recent_orders"`
}

// RecentOrder is a sales order row joined with its customer name
type RecentOrder struct {
	ID           uuid.UUID       `json:"id"`
	OrderNumber  string          `json:"order_number"`
	CustomerName string          `json:"customer_name"`
	OrderDate    time.Time       `json:"order_date"`
	Status       string          `json:"status"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}

// LowStockItem is a product at or below its reorder level
type LowStockItem struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	SKU          string    `json:"sku"`
	Quantity     int64     `json:"quantity"`
	ReorderLevel int64     `json:"reorder_level"`
}

// ProductSales ranks products by units sold
type ProductSales struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	TotalSold int64           `json:"total_sold"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// MonthlySales is completed sales revenue for one calendar month
type MonthlySales struct {
	Month      string          `json:"month"` // YYYY-MM
	OrderCount int64           `json:"order_count"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// CustomerSpend ranks customers by completed order value
type CustomerSpend struct {
	CustomerID uuid.UUID       `json:"customer_id"`
	Name       string          `json:"name"`
	OrderCount int64           `json:"order_count"`
	TotalSpent decimal.Decimal `json:"total_spent"`
}

// ProductionSummary aggregates the shop floor
type ProductionSummary struct {
	OrdersByStatus       map[string]int64 `json:"orders_by_status"`
	TotalProduced        int64            `json:"total_produced"`
	TotalScrap           int64            `json:"total_scrap"`
	MoldsNeedMaintenance int64            `json:"molds_need_maintenance"`
	PendingInspections   int64            `json:"pending_inspections"`
}

// Summary is the full report page
type Summary struct {
	GeneratedAt    time.Time         `json:"generated_at"`
	InventoryValue decimal.Decimal   `json:"inventory_value"`
	LowStockItems  []LowStockItem    `json:"low_stock_items"`
	TopProducts    []ProductSales    `json:"top_products"`
	MonthlySales   []MonthlySales    `json:"monthly_sales"`
	TopCustomers   []CustomerSpend   `json:"top_customers"`
	Production     ProductionSummary `json:"production"`
}

// Repository runs the aggregation queries
type Repository interface {
	CountProducts(ctx context.Context) (int64, error)
	CountLowStock(ctx context.Context) (int64, error)
	CountCustomers(ctx context.Context) (int64, error)
	CountPendingSalesOrders(ctx context.Context) (int64, error)
	TotalCompletedSales(ctx context.Context) (decimal.Decimal, error)
	RecentOrders(ctx context.Context, limit int) ([]RecentOrder, error)

	InventoryValue(ctx context.Context) (decimal.Decimal, error)
	LowStockItems(ctx context.Context) ([]LowStockItem, error)
	TopProducts(ctx context.Context, limit int) ([]ProductSales, error)
	MonthlySales(ctx context.Context, limit int) ([]MonthlySales, error)
	TopCustomers(ctx context.Context, limit int) ([]CustomerSpend, error)
	ProductionSummary(ctx context.Context) (ProductionSummary, error)
}
