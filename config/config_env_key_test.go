package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeEnvKey_AlignsWithYAMLKeys(t *testing.T) {
	existing := map[string]any{
		"chain": map[string]any{
			"ownerIdentity":    "0xabc",
			"supplierIdentity": "0xdef",
		},
		"pubsub": map[string]any{
			"projectId": "demo",
		},
	}

	assert.Equal(t, "chain.ownerIdentity", canonicalizeEnvKey("CHAIN_OWNERIDENTITY", existing))
	assert.Equal(t, "chain.supplierIdentity", canonicalizeEnvKey("CHAIN_SUPPLIERIDENTITY", existing))
	assert.Equal(t, "pubsub.projectId", canonicalizeEnvKey("PUBSUB_PROJECTID", existing))
}

func TestCanonicalizeEnvKey_FallsBackToLowercase(t *testing.T) {
	assert.Equal(t, "http.port", canonicalizeEnvKey("HTTP_PORT", nil))
}

func TestNormalizeToken(t *testing.T) {
	assert.Equal(t, "owneridentity", normalizeToken("ownerIdentity"))
	assert.Equal(t, "owneridentity", normalizeToken("OWNER_IDENTITY"))
}
