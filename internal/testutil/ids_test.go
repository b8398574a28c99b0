package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstantIDGenerator(t *testing.T) {
	g := NewConstantIDGenerator("action-42")
	assert.Equal(t, "action-42", g.Generate())
	assert.Equal(t, "action-42", g.Generate())
}

func TestConstantIDGenerator_DefaultID(t *testing.T) {
	g := NewConstantIDGenerator("")
	assert.Equal(t, "action-fixed", g.Generate())
}
