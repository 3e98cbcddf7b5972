package deck

import (
	"math/rand/v2"

	"github.com/magefree/mage-tale-go/internal/game/cards"
)

// Option configures a Stack.
type Option func(*Stack)

// WithRand sets the random source used by Shuffle.
func WithRand(rng *rand.Rand) Option {
	return func(s *Stack) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// Stack is a stack of event decks. Only the top deck is active for
// Draw, Shuffle and Size; the base deck is never popped.
// A Stack is not safe for concurrent use.
type Stack struct {
	decks [][]cards.Card
	rng   *rand.Rand
}

// New creates a stack whose base deck is a copy of initial.
func New(initial []cards.Card, opts ...Option) *Stack {
	s := &Stack{
		decks: make([][]cards.Card, 0, 4),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	s.decks = append(s.decks, copyDeck(initial))
	return s
}

// FromState rebuilds a stack from its serialized form, bottom deck first.
// An empty state yields a stack holding one empty base deck.
func FromState(state [][]cards.Card, opts ...Option) *Stack {
	s := New(nil, opts...)
	if len(state) == 0 {
		return s
	}
	s.decks = make([][]cards.Card, 0, len(state))
	for _, d := range state {
		s.decks = append(s.decks, copyDeck(d))
	}
	return s
}

func (s *Stack) active() []cards.Card {
	if len(s.decks) == 0 {
		return nil
	}
	return s.decks[len(s.decks)-1]
}

// Shuffle permutes the active deck in place.
func (s *Stack) Shuffle() {
	d := s.active()
	for i := len(d) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		d[i], d[j] = d[j], d[i]
	}
}

// Draw removes and returns the first card of the active deck.
func (s *Stack) Draw() (cards.Card, bool) {
	if len(s.decks) == 0 {
		return cards.Card{}, false
	}
	top := len(s.decks) - 1
	d := s.decks[top]
	if len(d) == 0 {
		return cards.Card{}, false
	}
	card := d[0]
	s.decks[top] = d[1:]
	return card, true
}

// Size returns the number of cards left in the active deck.
func (s *Stack) Size() int {
	return len(s.active())
}

// Depth returns the number of decks on the stack.
func (s *Stack) Depth() int {
	return len(s.decks)
}

// Push makes a copy of deck the active deck.
func (s *Stack) Push(deck []cards.Card) {
	s.decks = append(s.decks, copyDeck(deck))
}

// Pop discards the active deck and reactivates the one beneath it.
// It does nothing when only the base deck remains.
func (s *Stack) Pop() {
	if len(s.decks) > 1 {
		s.decks = s.decks[:len(s.decks)-1]
	}
}

// State returns a copy of every deck, bottom first.
func (s *Stack) State() [][]cards.Card {
	state := make([][]cards.Card, len(s.decks))
	for i, d := range s.decks {
		state[i] = copyDeck(d)
	}
	return state
}

func copyDeck(d []cards.Card) []cards.Card {
	out := make([]cards.Card, len(d))
	for i, c := range d {
		out[i] = c.Clone()
	}
	return out
}
