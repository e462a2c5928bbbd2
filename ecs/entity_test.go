package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityHandleReuse(t *testing.T) {
	w := NewWorld()

	first := CreateEntity(w)
	require.True(t, first.Valid())
	assert.Equal(t, "1.0", first.String())

	require.True(t, DestroyEntity(w, first))
	second := CreateEntity(w)

	assert.Equal(t, first.id(), second.id(), "slot is recycled")
	assert.Equal(t, first.generation()+1, second.generation())
	assert.Equal(t, "1.1", second.String())
	assert.False(t, IsAlive(w, first), "stale handle")
	assert.True(t, IsAlive(w, second))
}

func TestZeroEntityInvalid(t *testing.T) {
	var e Entity
	assert.False(t, e.Valid())
	assert.False(t, IsAlive(NewWorld(), e))
}
