package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_PutGet(t *testing.T) {
	m := NewMemory()

	m.Put("market", map[string]float64{"TRY=X": 34.2})

	got, ok := m.Get("market", time.Minute)
	require.True(t, ok)
	assert.Equal(t, map[string]float64{"TRY=X": 34.2}, got)
}

func TestMemory_MissOnAbsentKey(t *testing.T) {
	m := NewMemory()

	_, ok := m.Get("nope", time.Minute)
	assert.False(t, ok)
}

func TestMemory_StaleIsMiss(t *testing.T) {
	m := NewMemory()
	now := time.Unix(1700000000, 0)
	m.now = func() time.Time { return now }

	m.Put("macro", "panel")

	now = now.Add(59 * time.Second)
	_, ok := m.Get("macro", time.Minute)
	assert.True(t, ok)

	// age == ttl is already a miss
	now = now.Add(time.Second)
	_, ok = m.Get("macro", time.Minute)
	assert.False(t, ok)
}

func TestMemory_TTLIsPerRequest(t *testing.T) {
	m := NewMemory()
	now := time.Unix(1700000000, 0)
	m.now = func() time.Time { return now }

	m.Put("erp", 3.2)
	now = now.Add(30 * time.Second)

	_, ok := m.Get("erp", 10*time.Second)
	assert.False(t, ok, "short TTL should treat the entry as stale")

	_, ok = m.Get("erp", time.Minute)
	assert.True(t, ok, "longer TTL should still see the entry")
}

func TestMemory_PutOverwritesTimestamp(t *testing.T) {
	m := NewMemory()
	now := time.Unix(1700000000, 0)
	m.now = func() time.Time { return now }

	m.Put("cds", 302.0)
	now = now.Add(2 * time.Minute)
	m.Put("cds", 311.0)

	got, ok := m.Get("cds", time.Minute)
	require.True(t, ok)
	assert.Equal(t, 311.0, got)
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	m := NewMemory()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%4)
			for j := 0; j < 200; j++ {
				m.Put(key, j)
				m.Get(key, time.Minute)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 4, m.Len())
}
