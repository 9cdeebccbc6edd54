package jwt

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrBlocked indicates a token that verified fine but was invalidated
// before its natural expiry, e.g. by a logout.
var ErrBlocked = errors.New("jwt: token is blocked")

// Blocklist is an in-memory revocation store. Tokens live in it until
// their "exp" passes, after which the garbage collector drops them,
// expired tokens fail time validation anyway.
//
// Wire it into a Decoder with WithBlocklist. Safe for concurrent use.
type Blocklist struct {
	entries map[string]int64 // token -> expiration unix seconds
	mu      sync.RWMutex
}

// NewBlocklist returns a Blocklist that garbage-collects expired
// entries every "gcEvery" interval. A non-positive interval disables
// the collector; call GC manually then.
func NewBlocklist(gcEvery time.Duration) *Blocklist {
	return NewBlocklistContext(context.Background(), gcEvery)
}

// NewBlocklistContext is NewBlocklist with a context that stops the
// collector goroutine when done.
func NewBlocklistContext(ctx context.Context, gcEvery time.Duration) *Blocklist {
	b := &Blocklist{entries: make(map[string]int64)}

	if gcEvery > 0 {
		go b.runGC(ctx, gcEvery)
	}

	return b
}

// InvalidateToken blocks a verified token until its expiry. Tokens
// without an "exp" claim are blocked for an hour as a safety stop,
// unbounded entries would otherwise pin memory forever.
func (b *Blocklist) InvalidateToken(token []byte, c Claims) {
	if len(token) == 0 {
		return
	}

	expiry := Clock().Add(time.Hour)
	if exp := c.GetExpirationTime(); exp != nil {
		expiry = exp.Time
	}

	b.mu.Lock()
	b.entries[BytesToString(token)] = expiry.Unix()
	b.mu.Unlock()
}

// Del removes a token from the blocklist.
func (b *Blocklist) Del(token []byte) {
	b.mu.Lock()
	delete(b.entries, BytesToString(token))
	b.mu.Unlock()
}

// Has reports whether a token is currently blocked.
func (b *Blocklist) Has(token []byte) bool {
	if len(token) == 0 {
		return false
	}

	b.mu.RLock()
	_, ok := b.entries[BytesToString(token)]
	b.mu.RUnlock()

	return ok
}

// Count returns the number of blocked tokens.
func (b *Blocklist) Count() int {
	b.mu.RLock()
	n := len(b.entries)
	b.mu.RUnlock()

	return n
}

// GC drops entries whose expiry has passed and returns how many were
// removed.
func (b *Blocklist) GC() int {
	now := Clock().Unix()
	removed := 0

	b.mu.Lock()
	for token, expiry := range b.entries {
		if expiry <= now {
			delete(b.entries, token)
			removed++
		}
	}
	b.mu.Unlock()

	return removed
}

func (b *Blocklist) runGC(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			b.GC()
		}
	}
}
