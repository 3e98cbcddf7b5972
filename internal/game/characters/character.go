package characters

import (
	"fmt"
	"sort"

	"github.com/magefree/mage-tale-go/internal/game/attributes"
	"github.com/magefree/mage-tale-go/internal/game/cards"
)

// Kind distinguishes the player from non-player characters.
type Kind int

const (
	KindNPC Kind = iota
	KindPlayer
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "PLAYER"
	case KindNPC:
		return "NPC"
	default:
		return "UNKNOWN"
	}
}

// ParseKind converts the String form back into a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "PLAYER":
		return KindPlayer, nil
	case "NPC":
		return KindNPC, nil
	default:
		return KindNPC, fmt.Errorf("unknown character kind %q", s)
	}
}

// Character is a live character instance created from a character card.
// Equipped is always a subset of Inventory.
type Character struct {
	ID         string
	Name       string
	Kind       Kind
	Card       cards.Card
	Attributes *attributes.Table
	Inventory  map[string]cards.Item
	Equipped   map[string]cards.Item
}

func newCharacter(id, name string, kind Kind, card cards.Card) *Character {
	c := &Character{
		ID:         id,
		Name:       name,
		Kind:       kind,
		Card:       card.Clone(),
		Attributes: attributes.NewTable(),
		Inventory:  make(map[string]cards.Item),
		Equipped:   make(map[string]cards.Item),
	}
	if card.Type == cards.CardTypeCharacter {
		for k, v := range card.Data {
			c.Attributes.Set(k, v)
		}
	}
	return c
}

// IsPlayer reports whether the character is the player.
func (c *Character) IsPlayer() bool {
	return c.Kind == KindPlayer
}

// HasItem reports whether the item is in the inventory.
func (c *Character) HasItem(itemID string) bool {
	_, ok := c.Inventory[itemID]
	return ok
}

// IsEquipped reports whether the item is in the equipped set.
func (c *Character) IsEquipped(itemID string) bool {
	_, ok := c.Equipped[itemID]
	return ok
}

// InventoryIDs returns inventory item IDs in sorted order.
func (c *Character) InventoryIDs() []string {
	return sortedKeys(c.Inventory)
}

// EquippedIDs returns equipped item IDs in sorted order.
func (c *Character) EquippedIDs() []string {
	return sortedKeys(c.Equipped)
}

// Meets reports whether every requirement holds against the character's attributes.
// Evaluation stops at the first failing requirement.
func (c *Character) Meets(requirements []cards.Requirement) bool {
	for _, req := range requirements {
		if c.Attributes.Get(req.Attribute) < req.Value {
			return false
		}
	}
	return true
}

func sortedKeys(items map[string]cards.Item) []string {
	ids := make([]string, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
