package model

import (
	"time"
)

// OrderModel is the GORM-specific struct for the 'orders' table.
type OrderModel struct {
	ID          string `gorm:"type:varchar(255);primary_key"`
	MedicineID  string `gorm:"type:varchar(255);not null"`
	Quantity    int64  `gorm:"not null"`
	Creator     string `gorm:"type:varchar(255);not null"`
	Seller      string `gorm:"type:varchar(255);not null"`
	Transporter string `gorm:"type:varchar(255)"`
	Status      string `gorm:"type:varchar(32);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderStatusChangeModel is the GORM-specific struct for the
// 'order_status_changes' table: an append-only audit of applied transitions.
type OrderStatusChangeModel struct {
	ID        int64  `gorm:"primary_key;autoIncrement"`
	OrderID   string `gorm:"type:varchar(255);not null;index"`
	Status    string `gorm:"type:varchar(32);not null"`
	Actor     string `gorm:"type:varchar(255);not null"`
	ChangedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderStatusChangeModel) TableName() string {
	return "order_status_changes"
}
