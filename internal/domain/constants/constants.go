// Package constants holds shared domain-level constant values.
package constants

// Pub/Sub provider names accepted in configuration.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// BatchQRType tags the payload encoded in batch traceability QR codes.
const BatchQRType = "batch-trace"
