package service

// QRCodeService generates traceability QR codes for batch records.
type QRCodeService interface {
	// GenerateBatchQR renders a PNG QR code pointing at the tracking URL of
	// the (medicineID, batchID) pair.
	GenerateBatchQR(medicineID, batchID string) ([]byte, error)
}
