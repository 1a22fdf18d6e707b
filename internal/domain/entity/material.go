package entity

import "time"

// RawMaterial tracks the cumulative stock of one raw material.
// Existence is tracked by "has ever been restocked", not by balance: a fully
// depleted material remains found with a zero quantity.
type RawMaterial struct {
	ID        string    // Opaque unique material identifier.
	Quantity  int64     // Current balance; never negative.
	CreatedAt time.Time // Timestamp of the first restock.
	UpdatedAt time.Time // Timestamp of the last restock or deduction.
}
