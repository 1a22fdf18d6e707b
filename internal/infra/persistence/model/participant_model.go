package model

import (
	"time"
)

// ParticipantModel is the GORM-specific struct for the 'participants' table.
// It maps one supply chain identity to its current role.
type ParticipantModel struct {
	Identity  string `gorm:"type:varchar(255);primary_key"`
	Role      string `gorm:"type:varchar(32);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ParticipantModel) TableName() string {
	return "participants"
}

// ChainStateModel is the GORM-specific struct for the 'chain_state' table.
// It holds singleton pointers such as the current owner and the pinned
// supplier, one row per key.
type ChainStateModel struct {
	Key       string `gorm:"type:varchar(64);primary_key"`
	Identity  string `gorm:"type:varchar(255);not null"`
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ChainStateModel) TableName() string {
	return "chain_state"
}

// Keys used in the chain_state table.
const (
	ChainStateOwnerKey    = "owner"
	ChainStateSupplierKey = "supplier"
)
