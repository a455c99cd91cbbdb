package router

import (
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/moldshop/erp/internal/interfaces/http/handler"
)

// Handlers bundles every HTTP handler the server exposes
type Handlers struct {
	Auth            *handler.AuthHandler
	Product         *handler.ProductHandler
	Customer        *handler.CustomerHandler
	Supplier        *handler.SupplierHandler
	Mold            *handler.MoldHandler
	Machine         *handler.MachineHandler
	ProductionOrder *handler.ProductionOrderHandler
	SalesOrder      *handler.SalesOrderHandler
	PurchaseOrder   *handler.PurchaseOrderHandler
	Transaction     *handler.TransactionHandler
	Report          *handler.ReportHandler
	System          *handler.SystemHandler
}

// Guards are the access checks applied to routes
type Guards struct {
	// Authenticated rejects requests without a valid bearer token. Handlers
	// after the first one run once the user is known.
	Authenticated gin.HandlersChain
	// AdminOnly additionally requires the admin role
	AdminOnly gin.HandlerFunc
}

// Mount registers the health check, the public product listing and the
// versioned API on engine
func Mount(engine *gin.Engine, h Handlers, guards Guards) {
	engine.GET("/health", h.System.Health)
	engine.GET("/api/products", slices.Concat(guards.Authenticated, gin.HandlersChain{h.Product.ListForAPI})...)

	r := NewRouter(engine, WithAPIVersion("v1")).Use(guards.Authenticated...)

	r.RegisterPublic(NewDomainGroup("auth", "/auth").
		POST("/login", h.Auth.Login))

	r.Register(NewDomainGroup("session", "/auth").
		GET("/me", h.Auth.Me).
		POST("/logout", h.Auth.Logout))

	r.Register(NewDomainGroup("products", "/products").
		GET("", h.Product.List).
		POST("", h.Product.Create).
		GET("/low-stock", h.Product.LowStock).
		GET("/:id", h.Product.GetByID).
		PUT("/:id", h.Product.Update).
		DELETE("/:id", guards.AdminOnly, h.Product.Delete))

	r.Register(NewDomainGroup("customers", "/customers").
		GET("", h.Customer.List).
		POST("", h.Customer.Create).
		GET("/:id", h.Customer.GetByID).
		PUT("/:id", h.Customer.Update))

	r.Register(NewDomainGroup("suppliers", "/suppliers").
		GET("", h.Supplier.List).
		POST("", h.Supplier.Create).
		GET("/:id", h.Supplier.GetByID).
		PUT("/:id", h.Supplier.Update))

	r.Register(NewDomainGroup("molds", "/molds").
		GET("", h.Mold.List).
		POST("", h.Mold.Create).
		GET("/:id", h.Mold.GetByID).
		PUT("/:id", h.Mold.Update))

	r.Register(NewDomainGroup("machines", "/machines").
		GET("", h.Machine.List).
		POST("", h.Machine.Create).
		GET("/:id", h.Machine.GetByID).
		PUT("/:id", h.Machine.Update))

	r.Register(NewDomainGroup("production-orders", "/production-orders").
		GET("", h.ProductionOrder.List).
		POST("", h.ProductionOrder.Create).
		GET("/:id", h.ProductionOrder.GetByID).
		POST("/:id/start", h.ProductionOrder.Start).
		POST("/:id/complete", h.ProductionOrder.Complete).
		POST("/:id/quality", h.ProductionOrder.InspectQuality))

	r.Register(NewDomainGroup("sales-orders", "/sales-orders").
		GET("", h.SalesOrder.List).
		POST("", h.SalesOrder.Create).
		GET("/:id", h.SalesOrder.GetByID).
		POST("/:id/complete", h.SalesOrder.Complete).
		POST("/:id/cancel", h.SalesOrder.Cancel))

	r.Register(NewDomainGroup("purchase-orders", "/purchase-orders").
		GET("", h.PurchaseOrder.List).
		POST("", h.PurchaseOrder.Create).
		GET("/:id", h.PurchaseOrder.GetByID).
		POST("/:id/receive", h.PurchaseOrder.Receive).
		POST("/:id/cancel", h.PurchaseOrder.Cancel))

	r.Register(NewDomainGroup("transactions", "/transactions").
		GET("", h.Transaction.List).
		GET("/summary", h.Transaction.Summary))

	r.Register(NewDomainGroup("reports", "/reports").
		GET("/dashboard", h.Report.Dashboard).
		GET("/summary", h.Report.Summary).
		GET("/export", h.Report.Export))

	r.Setup()
}
