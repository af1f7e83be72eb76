package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpen_RejectsInvalidInput(t *testing.T) {
	_, err := Open(nil)
	assert.Error(t, err)
}

func TestHasText(t *testing.T) {
	assert.False(t, HasText(" \n\t "))
	assert.True(t, HasText(" a "))
}
