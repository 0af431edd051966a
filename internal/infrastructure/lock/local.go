// Package lock serializa las operaciones de stock por insumo.
// LocalLocker sirve para un único proceso; RedisLocker coordina varias réplicas.
package lock

import (
	"context"
	"sort"
	"sync"
)

// LocalLocker bloqueo en proceso con un mutex por clave.
// Cada clave vive en el mapa solo mientras alguien la tiene o la espera.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]*slot
}

type slot struct {
	ch   chan struct{}
	refs int
}

// NewLocalLocker crea un locker en memoria.
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{locks: make(map[string]*slot)}
}

// Lock adquiere todas las claves en orden y devuelve la función que las libera.
// Respeta la cancelación del contexto mientras espera.
func (l *LocalLocker) Lock(ctx context.Context, keys ...string) (func(), error) {
	keys = sortedUnique(keys)
	type heldKey struct {
		key string
		ch  chan struct{}
	}
	held := make([]heldKey, 0, len(keys))
	release := func() {
		for i := len(held) - 1; i >= 0; i-- {
			<-held[i].ch
			l.unref(held[i].key)
		}
	}
	for _, k := range keys {
		ch := l.ref(k)
		select {
		case ch <- struct{}{}:
			held = append(held, heldKey{key: k, ch: ch})
		case <-ctx.Done():
			l.unref(k)
			release()
			return nil, ctx.Err()
		}
	}
	return release, nil
}

// Len cantidad de claves tomadas o en espera.
func (l *LocalLocker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

func (l *LocalLocker) ref(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.locks[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.locks[key] = s
	}
	s.refs++
	return s.ch
}

func (l *LocalLocker) unref(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := l.locks[key]
	s.refs--
	if s.refs == 0 {
		delete(l.locks, key)
	}
}

func sortedUnique(keys []string) []string {
	out := append([]string(nil), keys...)
	sort.Strings(out)
	n := 0
	for i, k := range out {
		if i > 0 && k == out[n-1] {
			continue
		}
		out[n] = k
		n++
	}
	return out[:n]
}
