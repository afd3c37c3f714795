package main

import (
	"sync"
	"sync/atomic"

	"github.com/lockbox/sleigh-go/pkg/sleigh"
)

// session is the object behind a sleigh_session handle. The mutex
// serializes foreign calls on one session; a Translator is not safe
// for concurrent use.
type session struct {
	mu sync.Mutex
	tr *sleigh.Translator
}

const sessionShardCount = 64

// sessionShard is one shard of the handle table. Sharding keeps
// sessions on different handles off each other's locks.
type sessionShard struct {
	mu       sync.RWMutex
	sessions map[uint64]*session
}

var (
	sessionShards [sessionShardCount]sessionShard
	sessionSeq    atomic.Uint64
)

func init() {
	for i := range sessionShards {
		sessionShards[i].sessions = make(map[uint64]*session)
	}
	// Handle 0 stays invalid.
	sessionSeq.Store(1)
}

func shardFor(h uint64) *sessionShard {
	return &sessionShards[h%sessionShardCount]
}

// registerSession stores s in the table and returns its handle.
func registerSession(s *session) uint64 {
	h := sessionSeq.Add(1) - 1
	sh := shardFor(h)
	sh.mu.Lock()
	sh.sessions[h] = s
	sh.mu.Unlock()
	return h
}

// lookupSession resolves a handle, or nil when the handle was never
// dealt out or has already been freed.
func lookupSession(h uint64) *session {
	if h == 0 {
		return nil
	}
	sh := shardFor(h)
	sh.mu.RLock()
	s := sh.sessions[h]
	sh.mu.RUnlock()
	return s
}

// releaseSession removes a handle from the table and returns the
// session it named, or nil. The caller owns the session afterwards;
// a second release of the same handle returns nil.
func releaseSession(h uint64) *session {
	if h == 0 {
		return nil
	}
	sh := shardFor(h)
	sh.mu.Lock()
	s := sh.sessions[h]
	delete(sh.sessions, h)
	sh.mu.Unlock()
	return s
}
