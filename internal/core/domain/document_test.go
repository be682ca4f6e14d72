package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint(t *testing.T) {
	a := Fingerprint("the quick fox")
	b := Fingerprint("the quick fox")
	c := Fingerprint("the slow fox")

	assert.Equal(t, a, b, "identical content must fingerprint identically")
	assert.NotEqual(t, a, c, "different content must fingerprint differently")
	assert.Len(t, a, 64, "fingerprint is hex-encoded SHA-256")
}

func TestFingerprint_Empty(t *testing.T) {
	assert.NotEmpty(t, Fingerprint(""))
}
