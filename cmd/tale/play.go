package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"github.com/magefree/mage-tale-go/internal/game"
	"github.com/magefree/mage-tale-go/internal/game/cards"
	"github.com/magefree/mage-tale-go/internal/game/cultivation"
	"github.com/magefree/mage-tale-go/internal/game/rules"
	"github.com/magefree/mage-tale-go/internal/observe"
	"github.com/spf13/cobra"
)

const defaultPlayerCard = "char_wanderer"

type playOptions struct {
	name     string
	cardID   string
	loadPath string
	savePath string
}

func newPlayCmd() *cobra.Command {
	opts := &playOptions{}
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a session in the terminal",
		Long:  `Draws event cards one at a time. Answer 0 or 1 to choose an option, q to stop.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.name, "name", "Wanderer", "player character name")
	cmd.Flags().StringVar(&opts.cardID, "card", defaultPlayerCard, "character card id for the player")
	cmd.Flags().StringVar(&opts.loadPath, "load", "", "resume from a saved state file")
	cmd.Flags().StringVar(&opts.savePath, "save", "", "write the state to this file when the session ends")
	return cmd
}

func runPlay(cmd *cobra.Command, opts *playOptions) error {
	cfg, logger, cat, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	bus := rules.NewEventBus()
	ctrlOpts := []game.Option{game.WithPolicy(cfg.Directory.Policy())}
	if cfg.Deck.Seed != 0 {
		ctrlOpts = append(ctrlOpts, game.WithRand(rand.New(rand.NewPCG(cfg.Deck.Seed, cfg.Deck.Seed))))
	}
	if cfg.Metrics.Enabled {
		m := observe.DefaultMetrics()
		defer observe.Attach(bus, m)()
		ctrlOpts = append(ctrlOpts, game.WithObserver(m))
	}
	ctrl := game.NewController(bus, cat, logger, ctrlOpts...)

	if opts.loadPath != "" {
		data, err := os.ReadFile(opts.loadPath)
		if err != nil {
			return fmt.Errorf("read save: %w", err)
		}
		if err := ctrl.LoadState(string(data)); err != nil {
			return err
		}
	} else {
		card, ok := cat.Card(opts.cardID)
		if !ok || card.Type != cards.CardTypeCharacter {
			return fmt.Errorf("character card %q not found in catalog", opts.cardID)
		}
		if err := ctrl.StartNewGame(card, opts.name, cat.EventCards()); err != nil {
			return err
		}
	}

	s := &session{
		ctrl: ctrl,
		in:   bufio.NewScanner(cmd.InOrStdin()),
		out:  cmd.OutOrStdout(),
	}
	defer s.watch(bus)()

	if err := s.loop(); err != nil {
		return err
	}
	s.summary()

	if opts.savePath != "" {
		text, err := ctrl.SaveState()
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.savePath, []byte(text), 0o644); err != nil {
			return fmt.Errorf("write save: %w", err)
		}
		fmt.Fprintf(s.out, "Saved to %s\n", opts.savePath)
	}
	return nil
}

// session is the terminal stand-in for the rendering layer.
type session struct {
	ctrl *game.Controller
	in   *bufio.Scanner
	out  io.Writer
}

func (s *session) watch(bus *rules.EventBus) rules.Unsubscribe {
	unsubs := []rules.Unsubscribe{
		bus.Subscribe(rules.EventAttributeDidChange, func(e rules.Event) {
			fmt.Fprintf(s.out, "  %s: %d -> %d\n", e.Attribute, e.From, e.To)
		}),
		bus.Subscribe(rules.EventItemWasGained, func(e rules.Event) {
			fmt.Fprintf(s.out, "  + %s\n", e.Item.Name)
		}),
		bus.Subscribe(rules.EventItemWasLost, func(e rules.Event) {
			fmt.Fprintf(s.out, "  - %s\n", e.Item.Name)
		}),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

func (s *session) loop() error {
	for {
		event, pending := s.ctrl.GetCurrentEvent()
		if !pending {
			var ok bool
			if event, ok = s.ctrl.DrawNextEvent(); !ok {
				fmt.Fprintln(s.out, "The road ends here.")
				return nil
			}
		}
		s.show(event)

		choice, quit := s.read()
		if quit {
			return nil
		}
		res, err := s.ctrl.ResolveChoice(choice)
		if errors.Is(err, game.ErrInvalidChoice) {
			fmt.Fprintf(s.out, "Choose 0 or 1 (%v)\n", err)
			continue
		}
		if err != nil {
			return err
		}
		s.report(res)
	}
}

func (s *session) show(event cards.Card) {
	fmt.Fprintf(s.out, "\n== %s ==\n", event.Name)
	if event.Description != "" {
		fmt.Fprintln(s.out, event.Description)
	}
	for i, opt := range event.Options {
		fmt.Fprintf(s.out, "[%d] %s\n", i, opt.Description)
	}
	fmt.Fprint(s.out, "> ")
}

// read returns the chosen index, or quit on "q" or end of input.
// Unparseable input is passed on as -1 so the controller rejects it.
func (s *session) read() (int, bool) {
	if !s.in.Scan() {
		return 0, true
	}
	line := strings.TrimSpace(s.in.Text())
	if line == "q" {
		return 0, true
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return -1, false
	}
	return n, false
}

func (s *session) report(res game.Resolution) {
	if res.Skipped {
		fmt.Fprintln(s.out, "Nothing happens.")
		return
	}
	if res.Narration != "" {
		fmt.Fprintln(s.out, res.Narration)
	}
}

func (s *session) summary() {
	player, ok := s.ctrl.GetPlayerCharacter()
	if !ok {
		return
	}
	fmt.Fprintf(s.out, "\n%s\n", player.Name)
	for _, p := range player.Attributes.Pairs() {
		fmt.Fprintf(s.out, "  %s: %d\n", p.Key, p.Value)
	}
	if stage, root, ok := cultivation.Describe(player.Attributes); ok {
		fmt.Fprintf(s.out, "  %s, %s\n", stage, root)
	}
	for _, id := range player.InventoryIDs() {
		marker := ""
		if player.IsEquipped(id) {
			marker = " (equipped)"
		}
		fmt.Fprintf(s.out, "  item: %s%s\n", player.Inventory[id].Name, marker)
	}
}
