package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/magefree/mage-tale-go/internal/game/cards"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	o, ok := c.Outcome("grab_glimmer")
	require.True(t, ok)
	require.Len(t, o.Requirements, 1)
	assert.Equal(t, cards.Requirement{Attribute: "strength", Value: 10}, o.Requirements[0])
	assert.Equal(t, []string{"item_sword_rusty"}, o.Success.ItemsGained)
	assert.Equal(t, []AttributeChange{{Key: "hp", Value: -5}}, o.Failure.Attributes)

	sword, ok := c.Item("item_sword_rusty")
	require.True(t, ok)
	assert.Equal(t, "Rusty Sword", sword.Name)
	assert.Equal(t, cards.ItemTypeEquipment, sword.ItemType)
	assert.True(t, sword.Equippable())

	events := c.EventCards()
	require.NotEmpty(t, events)
	for _, e := range events {
		assert.Len(t, e.Options, cards.EventOptionCount)
	}

	hero, ok := c.Card("char_wanderer")
	require.True(t, ok)
	assert.Equal(t, 5, hero.Data["strength"])

	assert.Empty(t, Validate(c))
}

func TestOutcomeSelect(t *testing.T) {
	o := Outcome{
		Success: Result{Narration: "yes"},
		Failure: Result{Narration: "no"},
	}
	assert.Equal(t, "yes", o.Select(true).Narration)
	assert.Equal(t, "no", o.Select(false).Narration)
}

func TestOutcomeIsCopied(t *testing.T) {
	c, err := NewStatic(File{Outcomes: []Outcome{{
		ID:           "climb",
		Requirements: []cards.Requirement{{Attribute: "strength", Value: 3}},
		Success: Result{
			Attributes:  []AttributeChange{{Key: "stamina", Value: -1}},
			ItemsGained: []string{"rope"},
		},
		Failure: Result{ItemsLost: []string{"boots"}},
	}}})
	require.NoError(t, err)

	o, ok := c.Outcome("climb")
	require.True(t, ok)
	o.Requirements[0].Value = 99
	o.Success.Attributes[0].Value = 99
	o.Success.ItemsGained[0] = "mutated"
	o.Failure.ItemsLost[0] = "mutated"

	again, _ := c.Outcome("climb")
	assert.Equal(t, 3, again.Requirements[0].Value)
	assert.Equal(t, -1, again.Success.Attributes[0].Value)
	assert.Equal(t, []string{"rope"}, again.Success.ItemsGained)
	assert.Equal(t, []string{"boots"}, again.Failure.ItemsLost)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	_, err := LoadFromReader(strings.NewReader("outcomes:\n  - id: a\n    sucess:\n      narration: typo\n"))
	require.Error(t, err)
}

func TestLoadRejectsDuplicates(t *testing.T) {
	doc := `
outcomes:
  - id: a
  - id: a
`
	_, err := LoadFromReader(strings.NewReader(doc))
	assert.ErrorIs(t, err, ErrInvalidCatalog)
}

func TestLoadRejectsMalformedEvent(t *testing.T) {
	doc := `
cards:
  - id: evt_one_option
    type: EVENT
    options:
      - description: only
        outcome_id: a
`
	_, err := LoadFromReader(strings.NewReader(doc))
	assert.ErrorIs(t, err, ErrInvalidCatalog)
}

func TestLoadEmptyDocument(t *testing.T) {
	c, err := LoadFromReader(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, c.Cards())
	_, ok := c.Outcome("anything")
	assert.False(t, ok)
}

func TestItemDefaultsToItemCardType(t *testing.T) {
	doc := `
items:
  - id: pill
    name: Qi Pill
    item_type: FUNCTION
    uses: 3
`
	c, err := LoadFromReader(strings.NewReader(doc))
	require.NoError(t, err)
	pill, ok := c.Item("pill")
	require.True(t, ok)
	assert.Equal(t, cards.CardTypeItem, pill.Type)
	assert.Equal(t, 3, pill.Uses)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, defaultYAML, 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"forest_1", "grab_glimmer", "rest", "town_1"}, c.OutcomeIDs())
	assert.Equal(t, []string{"item_sword_rusty"}, c.ItemIDs())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateFindsDanglingReferences(t *testing.T) {
	doc := `
cards:
  - id: evt_broken
    type: EVENT
    options:
      - {description: a, outcome_id: exists}
      - {description: b, outcome_id: missing}
outcomes:
  - id: exists
    success:
      narration: ok
      items_gained: [ghost_item]
    failure:
      narration: bad
      items_lost: [other_ghost]
`
	c, err := LoadFromReader(strings.NewReader(doc))
	require.NoError(t, err)

	findings := Validate(c)
	require.Len(t, findings, 3)
	assert.Equal(t, "evt_broken", findings[0].Subject)
	assert.Contains(t, findings[0].String(), `"missing"`)
	assert.Contains(t, findings[1].Message, "ghost_item")
	assert.Contains(t, findings[2].Message, "other_ghost")
}
