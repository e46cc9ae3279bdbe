package cardfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSW(t *testing.T) {
	assert.True(t, SWSuccess.OK())
	assert.False(t, SWFileNotFound.OK())

	assert.Equal(t, "9000", SWSuccess.String())
	assert.Equal(t, "6a82", SWFileNotFound.String())
	assert.Equal(t, "0000", SW(0).String())
}
