package model

import (
	"time"
)

// BatchModel is the GORM-specific struct for the 'batches' table.
// The (medicine_id, batch_id) pair is the natural key.
type BatchModel struct {
	MedicineID   string `gorm:"type:varchar(255);primary_key"`
	BatchID      string `gorm:"type:varchar(255);primary_key"`
	Manufacturer string `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time

	Materials []BatchMaterialModel `gorm:"foreignKey:MedicineID,BatchID;references:MedicineID,BatchID"`
}

// TableName explicitly sets the table name for GORM.
func (BatchModel) TableName() string {
	return "batches"
}

// BatchMaterialModel is the GORM-specific struct for the 'batch_materials'
// table: one consumed material line per row, ordered by position so the
// recipe reads back in request order.
type BatchMaterialModel struct {
	MedicineID string `gorm:"type:varchar(255);primary_key"`
	BatchID    string `gorm:"type:varchar(255);primary_key"`
	Position   int    `gorm:"primary_key;autoIncrement:false"`
	MaterialID string `gorm:"type:varchar(255);not null"`
	Quantity   int64  `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (BatchMaterialModel) TableName() string {
	return "batch_materials"
}
