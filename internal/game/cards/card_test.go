package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventCard() Card {
	return Card{
		ID:   "evt",
		Type: CardTypeEvent,
		Name: "Fork",
		Options: []Option{
			{Description: "left", OutcomeID: "a"},
			{Description: "right", OutcomeID: "b"},
		},
	}
}

func TestCardImageFallback(t *testing.T) {
	c := Card{ID: "char_wanderer"}
	assert.Equal(t, "char_wanderer.png", c.Image())

	c.Illustration = "art/wanderer.jpg"
	assert.Equal(t, "art/wanderer.jpg", c.Image())
}

func TestCardValidate(t *testing.T) {
	require.NoError(t, eventCard().Validate())
	require.NoError(t, Card{ID: "hero", Type: CardTypeCharacter}.Validate())

	tests := []struct {
		name string
		card func() Card
	}{
		{"empty id", func() Card { c := eventCard(); c.ID = ""; return c }},
		{"one option", func() Card { c := eventCard(); c.Options = c.Options[:1]; return c }},
		{"missing outcome", func() Card { c := eventCard(); c.Options[1].OutcomeID = ""; return c }},
		{"unknown type", func() Card { return Card{ID: "x", Type: "SPELL"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.card().Validate())
		})
	}
}

func TestCardCloneIsIndependent(t *testing.T) {
	orig := eventCard()
	orig.Data = map[string]int{"hp": 10}

	cpy := orig.Clone()
	cpy.Data["hp"] = 1
	cpy.Options[0].OutcomeID = "changed"

	assert.Equal(t, 10, orig.Data["hp"])
	assert.Equal(t, "a", orig.Options[0].OutcomeID)
}

func TestItemKinds(t *testing.T) {
	assert.True(t, Item{ItemType: ItemTypeEquipment}.Equippable())
	assert.True(t, Item{ItemType: ItemTypeArtifact}.Equippable())
	assert.False(t, Item{ItemType: ItemTypeFunction}.Equippable())

	assert.True(t, Item{ItemType: ItemTypeFunction}.Usable())
	assert.False(t, Item{ItemType: ItemTypeSkill}.Usable())
}

func TestItemCloneIsIndependent(t *testing.T) {
	orig := Item{
		Card:         Card{ID: "pill", Type: CardTypeItem},
		ItemType:     ItemTypeFunction,
		Requirements: []Requirement{{Attribute: "strength", Value: 3}},
	}
	cpy := orig.Clone()
	cpy.Requirements[0].Value = 99

	assert.Equal(t, 3, orig.Requirements[0].Value)
}

func TestRarityString(t *testing.T) {
	assert.Equal(t, "COMMON", RarityCommon.String())
	assert.Equal(t, "LEGENDARY", RarityLegendary.String())
	assert.Equal(t, "UNKNOWN", Rarity(42).String())
}
