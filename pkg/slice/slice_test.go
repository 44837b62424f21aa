package slice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReverseInPlace(t *testing.T) {
	s := []int{1, 2, 3, 4}
	ReverseInPlace(s)
	assert.Equal(t, []int{4, 3, 2, 1}, s)

	empty := []int{}
	ReverseInPlace(empty)
	assert.Empty(t, empty)
}

func TestContains(t *testing.T) {
	assert.True(t, Contains([]string{"a", "b"}, "b"))
	assert.False(t, Contains([]string{"a", "b"}, "c"))
	assert.False(t, Contains(nil, 1))
}

func TestInner(t *testing.T) {
	assert.Equal(t, []int{2, 3}, Inner([]int{1, 2, 3, 4}))
	assert.Nil(t, Inner([]int{1, 2}))
	assert.Nil(t, Inner([]int{}))
}
