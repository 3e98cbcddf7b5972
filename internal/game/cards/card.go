package cards

import "fmt"

// CardType is the discriminator for card templates.
type CardType string

const (
	CardTypeCharacter CardType = "CHARACTER"
	CardTypeAction    CardType = "ACTION"
	CardTypeItem      CardType = "ITEM"
	CardTypeEvent     CardType = "EVENT"
)

// Rarity is the display tier of a card.
type Rarity int

const (
	RarityCommon Rarity = iota
	RarityRare
	RarityEpic
	RarityLegendary
)

func (r Rarity) String() string {
	switch r {
	case RarityCommon:
		return "COMMON"
	case RarityRare:
		return "RARE"
	case RarityEpic:
		return "EPIC"
	case RarityLegendary:
		return "LEGENDARY"
	default:
		return "UNKNOWN"
	}
}

// EventOptionCount is the number of options every event card exposes.
const EventOptionCount = 2

// Option is one of the two choices on an event card.
type Option struct {
	Description string `json:"description" yaml:"description"`
	OutcomeID   string `json:"outcome_id" yaml:"outcome_id"`
}

// Card is an immutable card template. Type-specific fields are left zero
// for card types that do not use them.
type Card struct {
	ID           string   `json:"id" yaml:"id"`
	Type         CardType `json:"type" yaml:"type"`
	Name         string   `json:"name" yaml:"name"`
	Description  string   `json:"description,omitempty" yaml:"description"`
	Illustration string   `json:"illustration,omitempty" yaml:"illustration"`
	Rarity       Rarity   `json:"rarity,omitempty" yaml:"rarity"`

	// Character cards
	Gender string         `json:"gender,omitempty" yaml:"gender"`
	Data   map[string]int `json:"data,omitempty" yaml:"data"`

	// Action cards
	ActionKey string `json:"action_key,omitempty" yaml:"action_key"`

	// Event cards
	Options []Option `json:"options,omitempty" yaml:"options"`
}

// Image returns the illustration path, falling back to "<id>.png".
func (c Card) Image() string {
	if c.Illustration != "" {
		return c.Illustration
	}
	return c.ID + ".png"
}

// IsEvent reports whether the card is an event card.
func (c Card) IsEvent() bool {
	return c.Type == CardTypeEvent
}

// Validate checks the structural rules for the card's type.
func (c Card) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("card has empty id")
	}
	switch c.Type {
	case CardTypeEvent:
		if len(c.Options) != EventOptionCount {
			return fmt.Errorf("event card %s has %d options, want %d", c.ID, len(c.Options), EventOptionCount)
		}
		for i, opt := range c.Options {
			if opt.OutcomeID == "" {
				return fmt.Errorf("event card %s option %d has no outcome", c.ID, i)
			}
		}
	case CardTypeCharacter, CardTypeAction, CardTypeItem:
	default:
		return fmt.Errorf("card %s has unknown type %q", c.ID, c.Type)
	}
	return nil
}

// Clone returns a deep copy of the card.
func (c Card) Clone() Card {
	cpy := c
	if c.Data != nil {
		cpy.Data = make(map[string]int, len(c.Data))
		for k, v := range c.Data {
			cpy.Data[k] = v
		}
	}
	if c.Options != nil {
		cpy.Options = append([]Option(nil), c.Options...)
	}
	return cpy
}
