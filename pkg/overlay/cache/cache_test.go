package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/overlay-go/pkg/overlay/models"
)

func sample() *models.Table {
	return &models.Table{
		Name: "a.csv",
		Columns: []models.Column{
			{Name: "t_time", Cells: []interface{}{int64(0), 0.5}},
			{Name: "P", Cells: []interface{}{"bad", nil}},
		},
	}
}

func TestKeyOf(t *testing.T) {
	a := KeyOf("a.csv", []byte("x,y\n1,2\n"))
	assert.Equal(t, a, KeyOf("a.csv", []byte("x,y\n1,2\n")))
	assert.NotEqual(t, a, KeyOf("a.csv", []byte("x,y\n1,3\n")))
	assert.NotEqual(t, a, KeyOf("b.csv", []byte("x,y\n1,2\n")))
	assert.Contains(t, a.String(), "a.csv@")
}

func TestLRUReturnsIsolatedCopies(t *testing.T) {
	c := New(2)
	k := KeyOf("a.csv", []byte("1"))
	orig := sample()
	c.Put(k, orig)

	// Mutating the original after Put does not leak into the cache
	orig.Columns[0].Name = "changed"

	got, ok := c.Get(k)
	require.True(t, ok)
	assert.Equal(t, sample(), got)

	// Mutating a returned copy does not leak either
	got.Columns[1].Cells[0] = 42.0
	again, ok := c.Get(k)
	require.True(t, ok)
	assert.Equal(t, "bad", again.Columns[1].Cells[0])
}

func TestLRUEvictsLeastRecentlyUsed(t *testing.T) {
	c := New(2)
	k1 := KeyOf("1", nil)
	k2 := KeyOf("2", nil)
	k3 := KeyOf("3", nil)

	c.Put(k1, sample())
	c.Put(k2, sample())
	_, _ = c.Get(k1)
	c.Put(k3, sample())

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get(k2)
	assert.False(t, ok)
	_, ok = c.Get(k1)
	assert.True(t, ok)
	_, ok = c.Get(k3)
	assert.True(t, ok)
}

func TestNop(t *testing.T) {
	var c Tables = Nop{}
	k := KeyOf("a", nil)
	c.Put(k, sample())
	_, ok := c.Get(k)
	assert.False(t, ok)
}
