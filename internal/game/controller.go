package game

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/magefree/mage-tale-go/internal/game/cards"
	"github.com/magefree/mage-tale-go/internal/game/catalog"
	"github.com/magefree/mage-tale-go/internal/game/characters"
	"github.com/magefree/mage-tale-go/internal/game/deck"
	"github.com/magefree/mage-tale-go/internal/game/rules"
	"go.uber.org/zap"
)

var (
	// ErrNoCurrentEvent is returned by ResolveChoice when no event is pending.
	ErrNoCurrentEvent = errors.New("no current event is active")
	// ErrInvalidChoice is returned by ResolveChoice for an out-of-range option index.
	ErrInvalidChoice = errors.New("invalid choice index")
	// ErrNotInitialized is returned by GetDeckManager before a session exists.
	ErrNotInitialized = errors.New("deck manager is not initialized")
)

// Observer receives controller lifecycle notifications.
type Observer interface {
	SessionStarted()
	EventDrawn(drawn bool)
	ChoiceResolved(res Resolution)
}

// Resolution describes what ResolveChoice did.
type Resolution struct {
	EventID   string
	OutcomeID string
	Passed    bool
	Narration string

	Applied     []catalog.AttributeChange
	ItemsGained []string
	ItemsLost   []string

	// Skipped is set when the outcome or the player could not be found and
	// the pending event was cleared without effect.
	Skipped  bool
	Reason   string
	Warnings []string
}

// Option configures a Controller.
type Option func(*Controller)

// WithPolicy sets the character directory policy.
func WithPolicy(p characters.Policy) Option {
	return func(c *Controller) {
		c.policy = p
	}
}

// WithRand sets the random source handed to every deck stack.
func WithRand(rng *rand.Rand) Option {
	return func(c *Controller) {
		c.rng = rng
	}
}

// WithObserver registers an observer for session, draw and resolution notifications.
func WithObserver(o Observer) Option {
	return func(c *Controller) {
		c.observer = o
	}
}

// Controller drives a single narrative session: it owns the character
// directory and the deck stack, and resolves the player's choices against
// the catalog. A Controller is not safe for concurrent use.
type Controller struct {
	bus      *rules.EventBus
	catalog  catalog.Catalog
	logger   *zap.Logger
	policy   characters.Policy
	rng      *rand.Rand
	observer Observer

	directory *characters.Directory
	deck      *deck.Stack
	playerID  string
	current   *cards.Card
	sessionID string
}

// NewController creates a controller in the no-session state.
func NewController(bus *rules.EventBus, cat catalog.Catalog, logger *zap.Logger, opts ...Option) *Controller {
	if bus == nil {
		bus = rules.NewEventBus()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Controller{
		bus:     bus,
		catalog: cat,
		logger:  logger,
		policy:  characters.DefaultPolicy(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.directory = characters.NewDirectory(bus, c.policy)
	return c
}

func (c *Controller) deckOptions() []deck.Option {
	if c.rng == nil {
		return nil
	}
	return []deck.Option{deck.WithRand(c.rng)}
}

// Bus returns the event bus shared with the character directory.
func (c *Controller) Bus() *rules.EventBus {
	return c.bus
}

// SessionID returns the identifier of the current session, or "" before one starts.
func (c *Controller) SessionID() string {
	return c.sessionID
}

// StartNewGame creates the player character, builds and shuffles the deck
// stack from initialDeck and clears any pending event. Calling it again
// replaces the player and the deck; earlier characters stay in the directory.
func (c *Controller) StartNewGame(playerCard cards.Card, playerName string, initialDeck []cards.Card) error {
	player, err := c.directory.CreateCharacter(playerCard, playerName, characters.KindPlayer)
	if err != nil {
		return fmt.Errorf("start new game: %w", err)
	}

	c.playerID = player.ID
	c.deck = deck.New(initialDeck, c.deckOptions()...)
	c.deck.Shuffle()
	c.current = nil
	c.sessionID = uuid.New().String()

	c.logger.Info("session started",
		zap.String("session_id", c.sessionID),
		zap.String("player_id", c.playerID),
		zap.String("player_name", playerName),
		zap.Int("deck_size", c.deck.Size()),
	)
	if c.observer != nil {
		c.observer.SessionStarted()
	}
	return nil
}

// DrawNextEvent draws the next card from the active deck and makes it the
// pending event. It reports false when no session exists or the deck is
// exhausted; in the latter case the pending event is cleared.
func (c *Controller) DrawNextEvent() (cards.Card, bool) {
	if c.deck == nil {
		return cards.Card{}, false
	}

	card, ok := c.deck.Draw()
	if ok {
		c.current = &card
	} else {
		c.current = nil
	}

	c.logger.Debug("drew event",
		zap.Bool("drawn", ok),
		zap.String("event_id", card.ID),
		zap.Int("remaining", c.deck.Size()),
	)
	if c.observer != nil {
		c.observer.EventDrawn(ok)
	}
	return card, ok
}

// ResolveChoice applies the outcome behind option index of the pending event
// to the player and clears the pending event.
//
// A missing outcome or player clears the pending event without effect; the
// returned Resolution has Skipped set and no error is returned.
func (c *Controller) ResolveChoice(index int) (Resolution, error) {
	if c.current == nil {
		return Resolution{}, fmt.Errorf("cannot resolve choice: %w", ErrNoCurrentEvent)
	}
	event := c.current
	if index < 0 || index >= len(event.Options) {
		return Resolution{}, fmt.Errorf("%w: %d", ErrInvalidChoice, index)
	}
	defer func() { c.current = nil }()

	res := Resolution{
		EventID:   event.ID,
		OutcomeID: event.Options[index].OutcomeID,
	}

	var (
		outcome catalog.Outcome
		found   bool
	)
	if c.catalog != nil {
		outcome, found = c.catalog.Outcome(res.OutcomeID)
	}
	player, hasPlayer := c.GetPlayerCharacter()
	switch {
	case !found:
		res.Skipped = true
		res.Reason = fmt.Sprintf("outcome %q not found", res.OutcomeID)
	case !hasPlayer:
		res.Skipped = true
		res.Reason = "no player character"
	}
	if res.Skipped {
		c.logger.Warn("choice skipped",
			zap.String("event_id", res.EventID),
			zap.String("outcome_id", res.OutcomeID),
			zap.String("reason", res.Reason),
		)
		c.notifyResolved(res)
		return res, nil
	}

	res.Passed = c.meets(player.ID, outcome.Requirements)
	result := outcome.Select(res.Passed)
	res.Narration = result.Narration
	c.apply(player.ID, result, &res)

	c.logger.Info("choice resolved",
		zap.String("event_id", res.EventID),
		zap.String("outcome_id", res.OutcomeID),
		zap.Int("option", index),
		zap.Bool("passed", res.Passed),
		zap.String("narration", res.Narration),
	)
	for _, w := range res.Warnings {
		c.logger.Warn("outcome content warning",
			zap.String("outcome_id", res.OutcomeID),
			zap.String("warning", w),
		)
	}
	c.notifyResolved(res)
	return res, nil
}

// meets reads attributes through the directory so its policy decides
// whether unset keys are materialized.
func (c *Controller) meets(playerID string, requirements []cards.Requirement) bool {
	for _, req := range requirements {
		if c.directory.GetAttribute(playerID, req.Attribute) < req.Value {
			return false
		}
	}
	return true
}

func (c *Controller) apply(playerID string, result catalog.Result, res *Resolution) {
	for _, delta := range result.Attributes {
		current := c.directory.GetAttribute(playerID, delta.Key)
		c.directory.SetAttribute(playerID, delta.Key, current+delta.Value)
		res.Applied = append(res.Applied, delta)
	}
	for _, itemID := range result.ItemsGained {
		item, ok := c.catalog.Item(itemID)
		if !ok {
			res.Warnings = append(res.Warnings, fmt.Sprintf("item %q not found", itemID))
			continue
		}
		c.directory.AddItem(playerID, item)
		res.ItemsGained = append(res.ItemsGained, itemID)
	}
	for _, itemID := range result.ItemsLost {
		if c.directory.RemoveItem(playerID, itemID) {
			res.ItemsLost = append(res.ItemsLost, itemID)
		}
	}
}

func (c *Controller) notifyResolved(res Resolution) {
	if c.observer != nil {
		c.observer.ChoiceResolved(res)
	}
}

// GetPlayerCharacter returns the session's player character.
func (c *Controller) GetPlayerCharacter() (*characters.Character, bool) {
	if c.playerID == "" {
		return nil, false
	}
	return c.directory.Get(c.playerID)
}

// GetCurrentEvent returns the pending event card.
func (c *Controller) GetCurrentEvent() (cards.Card, bool) {
	if c.current == nil {
		return cards.Card{}, false
	}
	return *c.current, true
}

// GetDeckManager returns the deck stack, or ErrNotInitialized before a session starts.
func (c *Controller) GetDeckManager() (*deck.Stack, error) {
	if c.deck == nil {
		return nil, ErrNotInitialized
	}
	return c.deck, nil
}

// GetCharacterManager returns the character directory.
func (c *Controller) GetCharacterManager() *characters.Directory {
	return c.directory
}

func (c *Controller) reset() {
	c.directory = characters.NewDirectory(c.bus, c.policy)
	c.deck = nil
	c.playerID = ""
	c.current = nil
	c.sessionID = ""
}
