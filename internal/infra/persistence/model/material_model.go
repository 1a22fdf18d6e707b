package model

import (
	"time"
)

// MaterialModel is the GORM-specific struct for the 'raw_materials' table.
// Quantity is the current on-hand stock, kept non-negative by a check
// constraint as a second line of defense behind the use case layer.
type MaterialModel struct {
	ID        string `gorm:"type:varchar(255);primary_key"`
	Quantity  int64  `gorm:"not null;check:quantity >= 0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (MaterialModel) TableName() string {
	return "raw_materials"
}
