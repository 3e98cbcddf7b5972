package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/magefree/mage-tale-go/internal/game/cards"
	"gopkg.in/yaml.v3"
)

// ErrInvalidCatalog is returned when catalog content is structurally broken.
var ErrInvalidCatalog = errors.New("invalid catalog")

//go:embed default.yaml
var defaultYAML []byte

// File is the on-disk catalog layout.
//
// Example:
//
//	cards:
//	  - id: evt_river
//	    type: EVENT
//	    name: "A Glimmer in the River"
//	    options:
//	      - description: "Reach for it"
//	        outcome_id: grab_glimmer
//	      - description: "Rest"
//	        outcome_id: rest
//	outcomes:
//	  - id: rest
//	    success:
//	      narration: "You rest."
//	      attributes: [{key: hp, value: 10}]
//	items:
//	  - id: item_sword_rusty
//	    type: ITEM
//	    item_type: EQUIPMENT
type File struct {
	Cards    []cards.Card `yaml:"cards"`
	Outcomes []Outcome    `yaml:"outcomes"`
	Items    []cards.Item `yaml:"items"`
}

var _ Catalog = (*Static)(nil)

// Static is an immutable in-memory catalog.
type Static struct {
	cards     map[string]cards.Card
	cardOrder []string
	outcomes  map[string]Outcome
	items     map[string]cards.Item
}

// NewStatic indexes the file contents. Duplicate identifiers and malformed
// cards are rejected with ErrInvalidCatalog.
func NewStatic(f File) (*Static, error) {
	s := &Static{
		cards:    make(map[string]cards.Card, len(f.Cards)),
		outcomes: make(map[string]Outcome, len(f.Outcomes)),
		items:    make(map[string]cards.Item, len(f.Items)),
	}
	for _, c := range f.Cards {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
		}
		if _, dup := s.cards[c.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate card %s", ErrInvalidCatalog, c.ID)
		}
		s.cards[c.ID] = c.Clone()
		s.cardOrder = append(s.cardOrder, c.ID)
	}
	for _, o := range f.Outcomes {
		if o.ID == "" {
			return nil, fmt.Errorf("%w: outcome with empty id", ErrInvalidCatalog)
		}
		if _, dup := s.outcomes[o.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate outcome %s", ErrInvalidCatalog, o.ID)
		}
		s.outcomes[o.ID] = o.Clone()
	}
	for _, it := range f.Items {
		if it.Type == "" {
			it.Type = cards.CardTypeItem
		}
		if it.Type != cards.CardTypeItem {
			return nil, fmt.Errorf("%w: item %s has card type %s", ErrInvalidCatalog, it.ID, it.Type)
		}
		if err := it.Card.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
		}
		if _, dup := s.items[it.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate item %s", ErrInvalidCatalog, it.ID)
		}
		s.items[it.ID] = it.Clone()
	}
	return s, nil
}

// LoadFile reads and indexes a catalog YAML file.
func LoadFile(path string) (*Static, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %q: %w", path, err)
	}
	defer f.Close()

	s, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("catalog: load %q: %w", path, err)
	}
	return s, nil
}

// LoadFromReader parses catalog YAML from r. Unknown keys are rejected.
func LoadFromReader(r io.Reader) (*Static, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("catalog: decode yaml: %w", err)
	}
	return NewStatic(f)
}

var loadDefault = sync.OnceValues(func() (*Static, error) {
	return LoadFromReader(bytes.NewReader(defaultYAML))
})

// Default returns the built-in sample catalog.
func Default() (*Static, error) {
	return loadDefault()
}

// Outcome implements Catalog. The returned outcome is a copy.
func (s *Static) Outcome(id string) (Outcome, bool) {
	o, ok := s.outcomes[id]
	if !ok {
		return Outcome{}, false
	}
	return o.Clone(), true
}

// Item implements Catalog. The returned item is a copy.
func (s *Static) Item(id string) (cards.Item, bool) {
	it, ok := s.items[id]
	if !ok {
		return cards.Item{}, false
	}
	return it.Clone(), true
}

// Card returns the card template with the given id.
func (s *Static) Card(id string) (cards.Card, bool) {
	c, ok := s.cards[id]
	if !ok {
		return cards.Card{}, false
	}
	return c.Clone(), true
}

// Cards returns every card in file order.
func (s *Static) Cards() []cards.Card {
	out := make([]cards.Card, 0, len(s.cardOrder))
	for _, id := range s.cardOrder {
		out = append(out, s.cards[id].Clone())
	}
	return out
}

// CardsOfType returns the cards of type t in file order.
func (s *Static) CardsOfType(t cards.CardType) []cards.Card {
	var out []cards.Card
	for _, id := range s.cardOrder {
		if c := s.cards[id]; c.Type == t {
			out = append(out, c.Clone())
		}
	}
	return out
}

// EventCards returns the event cards in file order.
func (s *Static) EventCards() []cards.Card {
	return s.CardsOfType(cards.CardTypeEvent)
}

// OutcomeIDs returns the outcome identifiers in sorted order.
func (s *Static) OutcomeIDs() []string {
	ids := make([]string, 0, len(s.outcomes))
	for id := range s.outcomes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ItemIDs returns the item identifiers in sorted order.
func (s *Static) ItemIDs() []string {
	ids := make([]string, 0, len(s.items))
	for id := range s.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
