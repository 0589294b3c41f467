// Package cache memoizes parsed tables by file identity.
//
// The cache is an optional optimization: it avoids re-parsing an unchanged
// upload and holds no state that correctness depends on.
package cache

import (
	"container/list"
	"fmt"
	"sync"

	deepcopy "github.com/tiendc/go-deepcopy"
	"github.com/ukaji3/overlay-go/pkg/overlay/models"
	"github.com/zeebo/xxh3"
)

// DefaultCapacity is the number of tables kept by New when capacity <= 0.
const DefaultCapacity = 32

// Key identifies a file by name and content.
type Key struct {
	Name string
	Hash xxh3.Uint128
}

// KeyOf computes the identity of a file.
func KeyOf(name string, data []byte) Key {
	return Key{Name: name, Hash: xxh3.Hash128(data)}
}

// String renders the key for logging.
func (k Key) String() string {
	return fmt.Sprintf("%s@%016x%016x", k.Name, k.Hash.Hi, k.Hash.Lo)
}

// Tables is a read-through table cache.
type Tables interface {
	// Get returns a private copy of the cached table.
	Get(k Key) (*models.Table, bool)
	// Put stores a private copy of t.
	Put(k Key, t *models.Table)
}

// Nop never stores anything.
type Nop struct{}

// Get always misses.
func (Nop) Get(Key) (*models.Table, bool) { return nil, false }

// Put discards t.
func (Nop) Put(Key, *models.Table) {}

// LRU is a bounded, mutex-guarded Tables implementation.
type LRU struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	items    map[Key]*list.Element
}

type entry struct {
	key   Key
	table *models.Table
}

// New creates an LRU holding at most capacity tables.
func New(capacity int) *LRU {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &LRU{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[Key]*list.Element, capacity),
	}
}

// Get returns a deep copy so callers cannot mutate the cached table.
func (c *LRU) Get(k Key) (*models.Table, bool) {
	c.mu.Lock()
	el, ok := c.items[k]
	var src *models.Table
	if ok {
		c.order.MoveToFront(el)
		src = el.Value.(*entry).table
	}
	c.mu.Unlock()
	if !ok {
		return nil, false
	}

	t, err := clone(src)
	if err != nil {
		return nil, false
	}
	return t, true
}

// Put stores a deep copy of t, evicting the least recently used entry.
func (c *LRU) Put(k Key, t *models.Table) {
	cp, err := clone(t)
	if err != nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[k]; ok {
		el.Value.(*entry).table = cp
		c.order.MoveToFront(el)
		return
	}
	c.items[k] = c.order.PushFront(&entry{key: k, table: cp})
	for c.order.Len() > c.capacity {
		last := c.order.Back()
		c.order.Remove(last)
		delete(c.items, last.Value.(*entry).key)
	}
}

// Len returns the number of cached tables.
func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func clone(t *models.Table) (*models.Table, error) {
	if t == nil {
		return nil, nil
	}
	var out models.Table
	if err := deepcopy.Copy(&out, t); err != nil {
		return nil, err
	}
	return &out, nil
}
