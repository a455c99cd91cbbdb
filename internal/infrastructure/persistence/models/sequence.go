package models

import "time"

// OrderSequenceModel holds the last issued count per order kind.
type OrderSequenceModel struct {
	Kind      string    `gorm:"type:varchar(20);primary_key"`
	Value     int64     `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderSequenceModel) TableName() string {
	return "order_sequences"
}
