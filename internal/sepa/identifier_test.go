package sepa_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gerard76/sepa-king/internal/sepa"
)

func TestRandomIDSource_Format(t *testing.T) {
	var src sepa.RandomIDSource
	for i := 0; i < 100; i++ {
		assert.Regexp(t, messageIDRe, src.MessageID())
	}
}

func TestRandomIDSource_Unique(t *testing.T) {
	var src sepa.RandomIDSource
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := src.MessageID()
		assert.False(t, seen[id], id)
		seen[id] = true
	}
}

func TestFixedIDSource(t *testing.T) {
	src := sepa.FixedIDSource("SEPA-KING/0000000000000000000000")
	assert.Equal(t, "SEPA-KING/0000000000000000000000", src.MessageID())
	assert.Equal(t, src.MessageID(), src.MessageID())
}
