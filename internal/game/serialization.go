package game

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/magefree/mage-tale-go/internal/game/attributes"
	"github.com/magefree/mage-tale-go/internal/game/cards"
	"github.com/magefree/mage-tale-go/internal/game/characters"
	"github.com/magefree/mage-tale-go/internal/game/deck"
	"go.uber.org/zap"
)

// SnapshotVersion is the schema version written by Snapshot.
const SnapshotVersion = 1

var (
	// ErrUnsupportedVersion is returned when loading a snapshot with an unknown schema version.
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")
	// ErrChecksumMismatch is returned when a snapshot's checksum does not match its contents.
	ErrChecksumMismatch = errors.New("snapshot checksum mismatch")
	// ErrInvalidSnapshot is returned when a snapshot is malformed.
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)

// ItemEntry is one inventory or equipped slot in list form.
type ItemEntry struct {
	Key   string     `json:"key"`
	Value cards.Item `json:"value"`
}

// CharacterRecord is a character in list form.
type CharacterRecord struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Kind       string            `json:"kind"`
	Card       cards.Card        `json:"card"`
	Attributes []attributes.Pair `json:"attributes"`
	Inventory  []ItemEntry       `json:"inventory"`
	Equipped   []ItemEntry       `json:"equipped"`
}

// DeckState is the deck stack, bottom deck first.
type DeckState struct {
	Decks [][]cards.Card `json:"decks"`
}

// Snapshot is the complete saved state of a controller. Deck is nil when no
// session has been started.
type Snapshot struct {
	Version      int               `json:"version"`
	SessionID    string            `json:"session_id,omitempty"`
	PlayerID     string            `json:"player_id,omitempty"`
	CurrentEvent *cards.Card       `json:"current_event,omitempty"`
	Deck         *DeckState        `json:"deck,omitempty"`
	Characters   []CharacterRecord `json:"characters"`
	Checksum     string            `json:"checksum"`
}

// ComputeChecksum returns the SHA-256 of the snapshot's deterministic representation.
func (s *Snapshot) ComputeChecksum() string {
	sum := sha256.Sum256([]byte(s.buildDeterministicRepresentation()))
	return hex.EncodeToString(sum[:])
}

// VerifyChecksum reports whether the stored checksum matches the contents.
func (s *Snapshot) VerifyChecksum() bool {
	return s.Checksum == s.ComputeChecksum()
}

// buildDeterministicRepresentation renders every field except the checksum.
// List fields are already sorted (or ordered by meaning) when the snapshot is
// taken. Cards and items are written as JSON so every content field is covered.
func (s *Snapshot) buildDeterministicRepresentation() string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "SNAPSHOT:%d|%s|%s\n", s.Version, s.SessionID, s.PlayerID)
	if s.CurrentEvent != nil {
		fmt.Fprintf(&buf, "EVENT:%s\n", canonical(s.CurrentEvent))
	}
	if s.Deck != nil {
		fmt.Fprintf(&buf, "DECKS:%d\n", len(s.Deck.Decks))
		for i, d := range s.Deck.Decks {
			fmt.Fprintf(&buf, "DECK:%d:%d\n", i, len(d))
			for _, card := range d {
				fmt.Fprintf(&buf, "  CARD:%s\n", canonical(card))
			}
		}
	}
	for _, c := range s.Characters {
		fmt.Fprintf(&buf, "CHARACTER:%s|%s|%s|%s\n", c.ID, c.Name, c.Kind, canonical(c.Card))
		for _, p := range c.Attributes {
			fmt.Fprintf(&buf, "  ATTR:%s=%d\n", p.Key, p.Value)
		}
		for _, e := range c.Inventory {
			fmt.Fprintf(&buf, "  ITEM:%s|%s\n", e.Key, canonical(e.Value))
		}
		for _, e := range c.Equipped {
			fmt.Fprintf(&buf, "  EQUIPPED:%s|%s\n", e.Key, canonical(e.Value))
		}
	}
	return buf.String()
}

// canonical encodes v as compact JSON. encoding/json writes struct fields in
// declaration order and map keys sorted, so equal values encode equally.
func canonical(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("!%v", err)
	}
	return string(data)
}

// Encode renders the snapshot as indented JSON text.
func (s *Snapshot) Encode() (string, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	return string(data), nil
}

// DecodeSnapshot parses snapshot text and checks its version and checksum.
func DecodeSnapshot(text string) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal([]byte(text), &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if s.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, s.Version)
	}
	if !s.VerifyChecksum() {
		return nil, ErrChecksumMismatch
	}
	return &s, nil
}

// Snapshot captures the controller's full state.
func (c *Controller) Snapshot() *Snapshot {
	s := &Snapshot{
		Version:    SnapshotVersion,
		SessionID:  c.sessionID,
		PlayerID:   c.playerID,
		Characters: make([]CharacterRecord, 0, c.directory.Len()),
	}
	if c.current != nil {
		ev := c.current.Clone()
		s.CurrentEvent = &ev
	}
	if c.deck != nil {
		s.Deck = &DeckState{Decks: c.deck.State()}
	}
	for _, ch := range c.directory.All() {
		s.Characters = append(s.Characters, CharacterRecord{
			ID:         ch.ID,
			Name:       ch.Name,
			Kind:       ch.Kind.String(),
			Card:       ch.Card.Clone(),
			Attributes: ch.Attributes.Pairs(),
			Inventory:  itemEntries(ch.Inventory, ch.InventoryIDs()),
			Equipped:   itemEntries(ch.Equipped, ch.EquippedIDs()),
		})
	}
	s.Checksum = s.ComputeChecksum()
	return s
}

func itemEntries(items map[string]cards.Item, ids []string) []ItemEntry {
	entries := make([]ItemEntry, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, ItemEntry{Key: id, Value: items[id].Clone()})
	}
	return entries
}

// SaveState returns the controller's state as text accepted by LoadState.
func (c *Controller) SaveState() (string, error) {
	s := c.Snapshot()
	text, err := s.Encode()
	if err != nil {
		return "", err
	}
	c.logger.Info("state saved",
		zap.Int("version", s.Version),
		zap.String("session_id", s.SessionID),
		zap.Int("characters", len(s.Characters)),
	)
	return text, nil
}

// LoadState replaces the controller's state with the saved text. Empty text,
// or a JSON null, false, 0 or "" value, returns the controller to the
// no-session state. On error the current state is left unchanged.
func (c *Controller) LoadState(text string) error {
	trimmed := strings.TrimSpace(text)
	if isEmptyState(trimmed) {
		c.reset()
		c.logger.Info("state cleared")
		return nil
	}
	s, err := DecodeSnapshot(trimmed)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	return c.Restore(s)
}

func isEmptyState(text string) bool {
	switch text {
	case "", "null", "false", "0", `""`:
		return true
	}
	return false
}

// Restore replaces the controller's state with s.
func (c *Controller) Restore(s *Snapshot) error {
	if s == nil {
		c.reset()
		return nil
	}
	if s.Version != SnapshotVersion {
		return fmt.Errorf("load state: %w: %d", ErrUnsupportedVersion, s.Version)
	}

	chars := make([]*characters.Character, 0, len(s.Characters))
	for _, rec := range s.Characters {
		ch, err := restoreCharacter(rec)
		if err != nil {
			return fmt.Errorf("load state: %w", err)
		}
		chars = append(chars, ch)
	}
	dir := characters.NewDirectory(c.bus, c.policy)
	if err := dir.Restore(chars); err != nil {
		return fmt.Errorf("load state: %w: %v", ErrInvalidSnapshot, err)
	}
	if s.PlayerID != "" {
		if _, ok := dir.Get(s.PlayerID); !ok {
			return fmt.Errorf("load state: %w: player %s not in snapshot", ErrInvalidSnapshot, s.PlayerID)
		}
	}

	var stack *deck.Stack
	if s.Deck != nil {
		if len(s.Deck.Decks) == 0 {
			return fmt.Errorf("load state: %w: deck stack has no decks", ErrInvalidSnapshot)
		}
		stack = deck.FromState(s.Deck.Decks, c.deckOptions()...)
	}

	c.directory = dir
	c.deck = stack
	c.playerID = s.PlayerID
	c.sessionID = s.SessionID
	c.current = nil
	if s.CurrentEvent != nil {
		ev := s.CurrentEvent.Clone()
		c.current = &ev
	}

	c.logger.Info("state loaded",
		zap.Int("version", s.Version),
		zap.String("session_id", s.SessionID),
		zap.Int("characters", len(chars)),
		zap.Bool("has_deck", stack != nil),
	)
	return nil
}

func restoreCharacter(rec CharacterRecord) (*characters.Character, error) {
	kind, err := characters.ParseKind(rec.Kind)
	if err != nil {
		return nil, fmt.Errorf("%w: character %s: %v", ErrInvalidSnapshot, rec.ID, err)
	}
	ch := &characters.Character{
		ID:         rec.ID,
		Name:       rec.Name,
		Kind:       kind,
		Card:       rec.Card.Clone(),
		Attributes: attributes.FromPairs(rec.Attributes),
		Inventory:  make(map[string]cards.Item, len(rec.Inventory)),
		Equipped:   make(map[string]cards.Item, len(rec.Equipped)),
	}
	for _, e := range rec.Inventory {
		ch.Inventory[e.Key] = e.Value.Clone()
	}
	for _, e := range rec.Equipped {
		if !ch.HasItem(e.Key) {
			return nil, fmt.Errorf("%w: character %s has %s equipped but not in inventory", ErrInvalidSnapshot, rec.ID, e.Key)
		}
		ch.Equipped[e.Key] = e.Value.Clone()
	}
	return ch, nil
}
