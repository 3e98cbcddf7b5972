package characters

import (
	"errors"
	"fmt"

	"github.com/magefree/mage-tale-go/internal/game/cards"
	"github.com/magefree/mage-tale-go/internal/game/rules"
	"github.com/oklog/ulid/v2"
)

var (
	// ErrPlayerExists is returned when a second player is created under EnforceSinglePlayer.
	ErrPlayerExists = errors.New("a player character already exists; only one player is allowed")
	// ErrCharacterNotFound is returned by item operations on an unknown character.
	ErrCharacterNotFound = errors.New("character not found")
	// ErrItemNotFound is returned when the item is not held (or not equipped).
	ErrItemNotFound = errors.New("item not found")
	// ErrNotEquippable is returned when equipping an item that is not gear.
	ErrNotEquippable = errors.New("item cannot be equipped")
	// ErrNotUsable is returned when using an item that is not a consumable.
	ErrNotUsable = errors.New("item cannot be used")
	// ErrRequirementsNotMet is returned when attribute requirements fail.
	ErrRequirementsNotMet = errors.New("requirements not met")
)

// Policy selects the directory's behaviour.
type Policy struct {
	// EnforceSinglePlayer rejects a second KindPlayer character.
	EnforceSinglePlayer bool
	// EmitChangeEvents publishes attribute and item events on the bus.
	EmitChangeEvents bool
	// MaterializeDefaults stores 0 for unset keys when they are first read.
	MaterializeDefaults bool
}

// DefaultPolicy emits change events and allows the player to be replaced.
func DefaultPolicy() Policy {
	return Policy{EmitChangeEvents: true}
}

// Directory creates and owns all characters, and routes every attribute
// and inventory mutation through the event bus.
// A Directory is not safe for concurrent use.
type Directory struct {
	bus        *rules.EventBus
	policy     Policy
	characters map[string]*Character
	order      []string
	playerID   string
}

// NewDirectory creates an empty directory publishing on bus.
func NewDirectory(bus *rules.EventBus, policy Policy) *Directory {
	if bus == nil {
		bus = rules.NewEventBus()
	}
	return &Directory{
		bus:        bus,
		policy:     policy,
		characters: make(map[string]*Character),
	}
}

// Policy returns the directory's policy.
func (d *Directory) Policy() Policy {
	return d.policy
}

// Bus returns the event bus the directory publishes on.
func (d *Directory) Bus() *rules.EventBus {
	return d.bus
}

// nextID returns a ULID; ids made by one process sort in creation order.
func (d *Directory) nextID() string {
	return ulid.Make().String()
}

// CreateCharacter builds a character from card, stores it and returns it.
// Numeric fields of a character card's data seed the attribute table.
func (d *Directory) CreateCharacter(card cards.Card, name string, kind Kind) (*Character, error) {
	if kind == KindPlayer && d.policy.EnforceSinglePlayer && d.playerID != "" {
		return nil, ErrPlayerExists
	}
	id := d.nextID()
	c := newCharacter(id, name, kind, card)
	d.characters[id] = c
	d.order = append(d.order, id)
	if kind == KindPlayer && d.playerID == "" {
		d.playerID = id
	}
	return c, nil
}

// Restore replaces the directory contents with chars, keeping their order.
func (d *Directory) Restore(chars []*Character) error {
	characters := make(map[string]*Character, len(chars))
	order := make([]string, 0, len(chars))
	playerID := ""
	for _, c := range chars {
		if c == nil || c.ID == "" {
			return fmt.Errorf("restore: character with empty id")
		}
		if _, dup := characters[c.ID]; dup {
			return fmt.Errorf("restore: duplicate character %s", c.ID)
		}
		if c.IsPlayer() {
			if playerID != "" && d.policy.EnforceSinglePlayer {
				return ErrPlayerExists
			}
			if playerID == "" {
				playerID = c.ID
			}
		}
		characters[c.ID] = c
		order = append(order, c.ID)
	}
	d.characters = characters
	d.order = order
	d.playerID = playerID
	return nil
}

// Get returns the character with the given id.
func (d *Directory) Get(id string) (*Character, bool) {
	c, ok := d.characters[id]
	return c, ok
}

// Player returns the first character created with KindPlayer.
func (d *Directory) Player() (*Character, bool) {
	if d.playerID == "" {
		return nil, false
	}
	return d.Get(d.playerID)
}

// All returns every character in creation order.
func (d *Directory) All() []*Character {
	result := make([]*Character, 0, len(d.order))
	for _, id := range d.order {
		result = append(result, d.characters[id])
	}
	return result
}

// Len returns the number of characters.
func (d *Directory) Len() int {
	return len(d.characters)
}

// GetAttribute returns the attribute value, or 0 for an unknown character or unset key.
func (d *Directory) GetAttribute(id, key string) int {
	c, ok := d.characters[id]
	if !ok {
		return 0
	}
	if d.policy.MaterializeDefaults {
		return c.Attributes.Materialize(key)
	}
	return c.Attributes.Get(key)
}

// SetAttribute writes an attribute value. Writing the current value, or
// writing to an unknown character, does nothing and publishes nothing.
// Otherwise AttributeWillChange is published, the value is committed and
// AttributeDidChange is published with the same payload.
func (d *Directory) SetAttribute(id, key string, value int) {
	c, ok := d.characters[id]
	if !ok {
		return
	}
	old := d.GetAttribute(id, key)
	if old == value {
		return
	}

	d.publish(rules.NewAttributeEvent(rules.EventAttributeWillChange, id, key, old, value))
	c.Attributes.Set(key, value)
	d.publish(rules.NewAttributeEvent(rules.EventAttributeDidChange, id, key, old, value))
}

// AddItem puts item into the inventory, replacing any item with the same id,
// and publishes ItemWasGained.
func (d *Directory) AddItem(id string, item cards.Item) {
	c, ok := d.characters[id]
	if !ok {
		return
	}
	item = item.Clone()
	c.Inventory[item.ID] = item
	if _, equipped := c.Equipped[item.ID]; equipped {
		c.Equipped[item.ID] = item
	}
	d.publish(rules.NewItemEvent(rules.EventItemWasGained, id, item))
}

// RemoveItem deletes the item from the inventory and publishes ItemWasLost.
// An equipped item is unequipped first. Returns false if the item was not held.
func (d *Directory) RemoveItem(id, itemID string) bool {
	c, ok := d.characters[id]
	if !ok {
		return false
	}
	item, held := c.Inventory[itemID]
	if !held {
		return false
	}
	if _, equipped := c.Equipped[itemID]; equipped {
		delete(c.Equipped, itemID)
		d.publish(rules.NewItemEvent(rules.EventItemWasUnequipped, id, item))
	}
	delete(c.Inventory, itemID)
	d.publish(rules.NewItemEvent(rules.EventItemWasLost, id, item))
	return true
}

// Equip moves an held equipment or artifact item into the equipped set.
// Equipping an already equipped item is a no-op.
func (d *Directory) Equip(id, itemID string) error {
	c, ok := d.characters[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrCharacterNotFound, id)
	}
	item, held := c.Inventory[itemID]
	if !held {
		return fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}
	if c.IsEquipped(itemID) {
		return nil
	}
	if !item.Equippable() {
		return fmt.Errorf("%w: %s is %s", ErrNotEquippable, itemID, item.ItemType)
	}
	if !c.Meets(item.Requirements) {
		return fmt.Errorf("%w: equip %s", ErrRequirementsNotMet, itemID)
	}
	c.Equipped[itemID] = item
	d.publish(rules.NewItemEvent(rules.EventItemWasEquipped, id, item))
	return nil
}

// Unequip removes the item from the equipped set, keeping it in the inventory.
func (d *Directory) Unequip(id, itemID string) error {
	c, ok := d.characters[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrCharacterNotFound, id)
	}
	item, equipped := c.Equipped[itemID]
	if !equipped {
		return fmt.Errorf("%w: %s is not equipped", ErrItemNotFound, itemID)
	}
	delete(c.Equipped, itemID)
	d.publish(rules.NewItemEvent(rules.EventItemWasUnequipped, id, item))
	return nil
}

// UseItem consumes one use of a function item. ItemWillBeUsed and
// ItemWasUsed are published around the use; an item with no uses left is
// removed from the inventory. An item with Uses unset counts as single use.
func (d *Directory) UseItem(id, itemID string) error {
	c, ok := d.characters[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrCharacterNotFound, id)
	}
	item, held := c.Inventory[itemID]
	if !held {
		return fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}
	if !item.Usable() {
		return fmt.Errorf("%w: %s is %s", ErrNotUsable, itemID, item.ItemType)
	}
	if !c.Meets(item.Requirements) {
		return fmt.Errorf("%w: use %s", ErrRequirementsNotMet, itemID)
	}

	d.publish(rules.NewItemEvent(rules.EventItemWillBeUsed, id, item))
	remaining := item.Uses - 1
	if item.Uses <= 0 {
		remaining = 0
	}
	item.Uses = remaining
	c.Inventory[itemID] = item
	d.publish(rules.NewItemEvent(rules.EventItemWasUsed, id, item))

	if remaining == 0 {
		d.RemoveItem(id, itemID)
	}
	return nil
}

func (d *Directory) publish(event rules.Event) {
	if !d.policy.EmitChangeEvents {
		return
	}
	d.bus.Publish(event)
}
