package eonvm

import (
	"sync"

	"github.com/consensys/gnark/logger"
	"github.com/eon-protocol/eonvm/program"
	"github.com/eon-protocol/eonvm/srs"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

const DEFAULT_KEY_CACHE_SIZE = 64

type fnKey struct {
	program  string
	function string
}

// KeyCache keeps recently used proving keys and every verifying key it has
// seen, indexed by program and function. Concurrent requests for the keys of
// one function share a single synthesis.
type KeyCache struct {
	srs   *srs.Cache
	pks   *lru.Cache[string, *Pk]
	group singleflight.Group

	mu  sync.RWMutex
	vks map[fnKey]*Vk
}

func NewKeyCache(cache *srs.Cache, size int) (*KeyCache, error) {
	if size <= 0 {
		size = DEFAULT_KEY_CACHE_SIZE
	}
	pks, err := lru.New[string, *Pk](size)
	if err != nil {
		return nil, err
	}
	return &KeyCache{srs: cache, pks: pks, vks: map[fnKey]*Vk{}}, nil
}

// Keys returns the proving key of fn, synthesizing it on a miss. The cache is
// keyed by function id and shape, so an edited function gets new keys.
func (c *KeyCache) Keys(fn *program.Function) (*Pk, error) {
	key := fn.ID() + "#" + fn.Fingerprint()
	if pk, ok := c.pks.Get(key); ok {
		return pk, nil
	}
	v, err, _ := c.group.Do(key, func() (any, error) {
		if pk, ok := c.pks.Get(key); ok {
			return pk, nil
		}
		pk, _, err := BuildKeys(fn, c.srs)
		if err != nil {
			return nil, err
		}
		c.pks.Add(key, pk)
		c.Register(fn.Program, fn.Name, pk.Vk())
		return pk, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Pk), nil
}

// Register records vk as the verifying key of program/function, replacing
// any previous one. Transitions proven under a replaced key no longer verify.
func (c *KeyCache) Register(program, function string, vk *Vk) {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := fnKey{program, function}
	if old, ok := c.vks[k]; ok && old != vk {
		if oldID, newID := old.ID(), vk.ID(); !oldID.Equal(&newID) {
			log := logger.Logger()
			log.Warn().Str("program", program).Str("function", function).
				Str("old", oldID.Text(16)).Str("new", newID.Text(16)).
				Msg("verifying key replaced")
		}
	}
	c.vks[k] = vk
}

func (c *KeyCache) Vk(program, function string) (*Vk, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	vk, ok := c.vks[fnKey{program, function}]
	return vk, ok
}

// Export returns the verifying keys of program as a map ordered by function
// name.
func (c *KeyCache) Export(program string) *VkMap {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m := &VkMap{}
	for k, vk := range c.vks {
		if k.program == program {
			m.Set(k.function, vk)
		}
	}
	m.Sort()
	return m
}

// Import registers every key of m under program.
func (c *KeyCache) Import(program string, m *VkMap) {
	for _, e := range m.Entries() {
		c.Register(program, e.Function, e.Vk)
	}
}
