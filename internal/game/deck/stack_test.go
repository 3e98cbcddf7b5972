package deck

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/magefree/mage-tale-go/internal/game/cards"
)

func eventCards(ids ...string) []cards.Card {
	out := make([]cards.Card, 0, len(ids))
	for _, id := range ids {
		out = append(out, cards.Card{ID: id, Type: cards.CardTypeEvent})
	}
	return out
}

func ids(cs []cards.Card) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}

func TestStackDrawIsFIFO(t *testing.T) {
	s := New(eventCards("A", "B"))

	if s.Size() != 2 {
		t.Fatalf("expected size 2, got %d", s.Size())
	}

	card, ok := s.Draw()
	if !ok || card.ID != "A" {
		t.Fatalf("expected A first, got %q (ok=%v)", card.ID, ok)
	}
	if s.Size() != 1 {
		t.Fatalf("expected size 1, got %d", s.Size())
	}

	card, ok = s.Draw()
	if !ok || card.ID != "B" {
		t.Fatalf("expected B second, got %q (ok=%v)", card.ID, ok)
	}

	if _, ok := s.Draw(); ok {
		t.Fatal("expected empty deck to draw nothing")
	}
	if s.Size() != 0 {
		t.Fatalf("expected size 0, got %d", s.Size())
	}
}

func TestStackPushPop(t *testing.T) {
	s := New(eventCards("base"))

	s.Push(eventCards("X", "Y"))
	if s.Size() != 2 {
		t.Fatalf("expected pushed deck size 2, got %d", s.Size())
	}
	if s.Depth() != 2 {
		t.Fatalf("expected depth 2, got %d", s.Depth())
	}

	s.Draw()
	s.Draw()
	if s.Size() != 0 {
		t.Fatalf("expected nested deck exhausted, got %d", s.Size())
	}

	s.Pop()
	if s.Size() != 1 {
		t.Fatalf("expected base deck restored with size 1, got %d", s.Size())
	}
	card, _ := s.Draw()
	if card.ID != "base" {
		t.Fatalf("expected base card, got %s", card.ID)
	}
}

func TestStackPopKeepsBaseDeck(t *testing.T) {
	s := New(eventCards("A", "B", "C"))

	s.Pop()
	s.Pop()
	if s.Depth() != 1 {
		t.Fatalf("expected base deck to remain, depth %d", s.Depth())
	}
	if s.Size() != 3 {
		t.Fatalf("expected size unchanged at 3, got %d", s.Size())
	}
}

func TestStackShuffleIsPermutation(t *testing.T) {
	names := make([]string, 10)
	for i := range names {
		names[i] = fmt.Sprintf("card_%d", i)
	}
	s := New(eventCards(names...))

	s.Shuffle()
	got := ids(s.State()[0])

	sorted := append([]string(nil), got...)
	sort.Strings(sorted)
	want := append([]string(nil), names...)
	sort.Strings(want)
	for i := range want {
		if sorted[i] != want[i] {
			t.Fatalf("shuffle changed card multiset: %v", got)
		}
	}

	same := true
	for i := range names {
		if got[i] != names[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("expected shuffled order to differ from original: %v", got)
	}
}

func TestStackShuffleSeeded(t *testing.T) {
	deckA := New(eventCards("1", "2", "3", "4", "5"), WithRand(rand.New(rand.NewPCG(7, 7))))
	deckB := New(eventCards("1", "2", "3", "4", "5"), WithRand(rand.New(rand.NewPCG(7, 7))))

	deckA.Shuffle()
	deckB.Shuffle()

	a, b := ids(deckA.State()[0]), ids(deckB.State()[0])
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("expected same seed to give same order: %v vs %v", a, b)
		}
	}
}

func TestStackShuffleOnlyActiveDeck(t *testing.T) {
	s := New(eventCards("1", "2", "3", "4", "5", "6"))
	s.Push(eventCards("X"))
	s.Shuffle()

	base := ids(s.State()[0])
	for i, id := range []string{"1", "2", "3", "4", "5", "6"} {
		if base[i] != id {
			t.Fatalf("base deck must not be shuffled while nested deck is active: %v", base)
		}
	}
}

func TestStackStateRoundTrip(t *testing.T) {
	s := New(eventCards("A", "B", "C"))
	s.Draw()
	s.Push(eventCards("X", "Y"))

	restored := FromState(s.State())
	if restored.Depth() != 2 {
		t.Fatalf("expected depth 2, got %d", restored.Depth())
	}
	if restored.Size() != 2 {
		t.Fatalf("expected active size 2, got %d", restored.Size())
	}
	restored.Pop()
	if got := ids(restored.State()[0]); len(got) != 2 || got[0] != "B" || got[1] != "C" {
		t.Fatalf("expected base deck [B C], got %v", got)
	}

	// state is a copy
	state := s.State()
	state[1][0].ID = "mutated"
	if card, _ := s.Draw(); card.ID != "X" {
		t.Fatalf("expected stack to be unaffected by state mutation, got %s", card.ID)
	}
}

func TestStackFromEmptyState(t *testing.T) {
	s := FromState(nil)
	if s.Depth() != 1 {
		t.Fatalf("expected an empty base deck, got depth %d", s.Depth())
	}
	if s.Size() != 0 {
		t.Fatalf("expected size 0, got %d", s.Size())
	}
	if _, ok := s.Draw(); ok {
		t.Fatal("expected draw on empty stack to return nothing")
	}
	s.Shuffle()
	s.Pop()
	if s.Depth() != 1 {
		t.Fatalf("expected pop to keep the base deck, got depth %d", s.Depth())
	}
}
