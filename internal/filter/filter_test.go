package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNames(t *testing.T) {
	t.Parallel()

	names := Names()
	assert.Len(t, names, Count())
	assert.Equal(t, "Normal", names[0])
	assert.Equal(t, "Invert Colors", names[Count()-1])

	for i, name := range names {
		assert.Equal(t, name, Filter(i).String())
		assert.NotEqual(t, "Unknown", name)
	}

	assert.Equal(t, "Unknown", Filter(-1).String())
	assert.Equal(t, "Unknown", Filter(Count()).String())
}
