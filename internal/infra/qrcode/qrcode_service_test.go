package qrcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmachain/config"
)

func TestGenerateBatchQR(t *testing.T) {
	cfg := &config.Config{
		QRCode: &config.QRCodeConfig{
			Size:                 128,
			ErrorCorrectionLevel: "M",
			TrackingBaseURL:      "https://track.example.com/batches",
		},
	}

	svc := NewQRCodeService(cfg)

	png, err := svc.GenerateBatchQR("aspirin", "B-001")
	require.NoError(t, err)
	assert.NotEmpty(t, png)

	// PNG magic bytes
	assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47}, png[:4])
}

func TestGenerateBatchQR_DefaultsWithoutConfig(t *testing.T) {
	svc := NewQRCodeService(&config.Config{})

	png, err := svc.GenerateBatchQR("ibuprofen", "B-2026-01")
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}
