package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWipe(t *testing.T) {
	secret := []byte("redis-password")
	Wipe(secret)

	assert.Equal(t, make([]byte, len("redis-password")), secret)
}

func TestWipe_Empty(t *testing.T) {
	assert.NotPanics(t, func() {
		Wipe(nil)
		Wipe([]byte{})
	})
}
