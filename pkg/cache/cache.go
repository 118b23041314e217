// Package cache holds a small TTL+LRU cache for collaborator replies,
// so repeated identical prompts inside the TTL skip the outbound call.
package cache

import (
	"container/list"
	"encoding/hex"
	"hash/fnv"
	"sync"
	"time"
)

type item struct {
	text string
	exp  int64 // unix seconds; 0 = no expiry
}

type entry struct {
	key  string
	item item
	elem *list.Element
}

// Replies is safe for concurrent use.
type Replies struct {
	mu       sync.Mutex
	items    map[string]*entry
	order    *list.List // MRU at front, LRU at back
	maxItems int        // 0 = unlimited
}

func NewReplies(maxItems int) *Replies {
	c := &Replies{
		items:    make(map[string]*entry),
		order:    list.New(),
		maxItems: maxItems,
	}
	go c.janitor(60 * time.Second)
	return c
}

// Get returns the cached reply if present and not expired.
func (c *Replies) Get(key string) (string, bool) {
	if c == nil {
		return "", false
	}
	now := time.Now().Unix()
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.items[key]
	if !ok {
		return "", false
	}
	if e.item.exp != 0 && e.item.exp < now {
		c.removeLocked(key)
		return "", false
	}
	c.order.MoveToFront(e.elem)
	return e.item.text, true
}

// Set stores a reply with TTL. ttl<=0 means no expiry. Empty replies
// are never cached.
func (c *Replies) Set(key, text string, ttl time.Duration) {
	if c == nil || text == "" {
		return
	}
	var exp int64
	if ttl > 0 {
		exp = time.Now().Add(ttl).Unix()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.items[key]; ok {
		e.item = item{text: text, exp: exp}
		c.order.MoveToFront(e.elem)
		return
	}
	e := &entry{key: key, item: item{text: text, exp: exp}}
	e.elem = c.order.PushFront(e)
	c.items[key] = e
	if c.maxItems > 0 && c.order.Len() > c.maxItems {
		c.evictLRULocked()
	}
}

func (c *Replies) Delete(key string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.removeLocked(key)
	c.mu.Unlock()
}

func (c *Replies) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// janitor periodically removes expired items.
func (c *Replies) janitor(interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for range t.C {
		now := time.Now().Unix()
		c.mu.Lock()
		for k, e := range c.items {
			if e.item.exp != 0 && e.item.exp < now {
				c.removeLocked(k)
			}
		}
		c.mu.Unlock()
	}
}

func (c *Replies) removeLocked(key string) {
	if e, ok := c.items[key]; ok {
		c.order.Remove(e.elem)
		delete(c.items, key)
	}
}

func (c *Replies) evictLRULocked() {
	back := c.order.Back()
	if back == nil {
		return
	}
	e := back.Value.(*entry)
	c.order.Remove(back)
	delete(c.items, e.key)
}

// Key builds a compact stable key from parts.
func Key(parts ...string) string {
	h := fnv.New64a()
	for _, p := range parts {
		_, _ = h.Write([]byte{0})
		_, _ = h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}
