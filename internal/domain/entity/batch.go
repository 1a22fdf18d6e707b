package entity

import "time"

// BatchMaterial is one (material, quantity) consumption line of a batch.
type BatchMaterial struct {
	MaterialID string
	Quantity   int64
}

// Batch is the immutable record of the materials consumed to produce one
// medicine lot. It is keyed by (MedicineID, BatchID) and written exactly once.
type Batch struct {
	MedicineID   string
	BatchID      string
	Materials    []BatchMaterial // Ordered as declared at creation.
	Manufacturer Identity
	CreatedAt    time.Time
}

// Key returns the composite lookup key of the batch.
func (b *Batch) Key() string {
	return BatchKey(b.MedicineID, b.BatchID)
}

// BatchKey builds the composite key for a (medicineID, batchID) pair.
func BatchKey(medicineID, batchID string) string {
	return medicineID + "/" + batchID
}
