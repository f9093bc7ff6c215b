package anim

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Slot hands out render-pass tokens for one chart. Taking a new token
// invalidates every token handed out before it.
type Slot struct {
	gen atomic.Uint64
}

// Token identifies one render pass. The zero Token is never invalidated.
type Token struct {
	ID   uuid.UUID
	slot *Slot
	gen  uint64
}

// Next starts a new render pass and invalidates the previous one.
func (s *Slot) Next() Token {
	return Token{ID: uuid.New(), slot: s, gen: s.gen.Add(1)}
}

// Invalidate cancels the current render pass without starting another.
func (s *Slot) Invalidate() {
	s.gen.Add(1)
}

// Valid reports whether no newer pass has started on the token's slot.
func (t Token) Valid() bool {
	return t.slot == nil || t.slot.gen.Load() == t.gen
}

// Short is the first block of the token id, for log lines.
func (t Token) Short() string {
	return t.ID.String()[:8]
}
