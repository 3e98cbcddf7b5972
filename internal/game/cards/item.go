package cards

// ItemType is the subtype of an item card.
type ItemType string

const (
	// ItemTypeEffect triggers automatically on acquisition (blessings, curses).
	ItemTypeEffect ItemType = "EFFECT"
	// ItemTypeFunction is an active-use consumable (potions, talismans).
	ItemTypeFunction ItemType = "FUNCTION"
	// ItemTypeEquipment is passive-effect gear.
	ItemTypeEquipment ItemType = "EQUIPMENT"
	// ItemTypeArtifact is equipment used as a crafting station.
	ItemTypeArtifact ItemType = "ARTIFACT"
	// ItemTypeGongfa is a cultivation technique to be studied.
	ItemTypeGongfa ItemType = "GONGFA"
	// ItemTypeSkill is an ability learned from a gongfa.
	ItemTypeSkill ItemType = "SKILL"
	// ItemTypeFormation is an activatable field effect.
	ItemTypeFormation ItemType = "FORMATION"
)

// Requirement is an attribute threshold: the attribute must be at least Value.
type Requirement struct {
	Attribute string `json:"attribute" yaml:"attribute"`
	Value     int    `json:"value" yaml:"value"`
}

// Item is an item card held in a character's inventory.
type Item struct {
	Card     `yaml:",inline"`
	ItemType ItemType `json:"item_type" yaml:"item_type"`

	Uses          int           `json:"uses,omitempty" yaml:"uses"`
	Durability    int           `json:"durability,omitempty" yaml:"durability"`
	MaxDurability int           `json:"max_durability,omitempty" yaml:"max_durability"`
	Requirements  []Requirement `json:"requirements,omitempty" yaml:"requirements"`
	PerTurnCosts  []Requirement `json:"per_turn_costs,omitempty" yaml:"per_turn_costs"`
	IsComplete    bool          `json:"is_complete,omitempty" yaml:"is_complete"`
	Progress      int           `json:"progress,omitempty" yaml:"progress"`
}

// Equippable reports whether the item can be placed in the equipped set.
func (i Item) Equippable() bool {
	return i.ItemType == ItemTypeEquipment || i.ItemType == ItemTypeArtifact
}

// Usable reports whether the item is an active-use consumable.
func (i Item) Usable() bool {
	return i.ItemType == ItemTypeFunction
}

// Clone returns a deep copy of the item.
func (i Item) Clone() Item {
	cpy := i
	cpy.Card = i.Card.Clone()
	if i.Requirements != nil {
		cpy.Requirements = append([]Requirement(nil), i.Requirements...)
	}
	if i.PerTurnCosts != nil {
		cpy.PerTurnCosts = append([]Requirement(nil), i.PerTurnCosts...)
	}
	return cpy
}
