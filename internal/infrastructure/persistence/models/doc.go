// Package models contains GORM persistence models that map to database tables.
// Domain entities stay free of ORM tags; each model here carries the gorm
// annotations plus ToDomain/FromDomain mappers used by the repositories.
//
// Structure:
//   - base.go: shared id/timestamp/version columns
//   - catalog.go: products
//   - partner.go: customers, suppliers
//   - production.go: molds, machines, production orders
//   - trade.go: sales and purchase orders with their items
//   - finance.go: the transaction ledger
//   - identity.go: users
//   - sequence.go: order number counters
package models
