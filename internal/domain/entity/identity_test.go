package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentity_IsZero(t *testing.T) {
	assert.True(t, Identity("").IsZero())
	assert.False(t, Identity("org1-admin").IsZero())
}

func TestIdentity_ComparableAsMapKey(t *testing.T) {
	roles := map[Identity]Role{
		Identity("org1-admin"): RoleAdmin,
	}

	assert.Equal(t, RoleAdmin, roles[Identity("org1-admin")])
	assert.Equal(t, "org1-admin", Identity("org1-admin").String())
}
