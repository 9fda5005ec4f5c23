package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/peterkuimelis/cardclash/internal/app"
	"github.com/peterkuimelis/cardclash/internal/battle"
	"github.com/peterkuimelis/cardclash/internal/game"
	"github.com/peterkuimelis/cardclash/internal/log"
	"github.com/peterkuimelis/cardclash/internal/player"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	cmd := os.Args[1]
	switch cmd {
	case "battle":
		err = runBattle(ctx, os.Args[2:])
	case "stats":
		err = runStats(ctx, os.Args[2:])
	case "history":
		err = runHistory(ctx, os.Args[2:])
	case "cards":
		err = runCards(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}

	var vErr *battle.ValidationError
	switch {
	case errors.As(err, &vErr):
		fmt.Fprintf(os.Stderr, "Cannot battle: %v\n", vErr)
		os.Exit(2)
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  cardclash battle  [--deck1 N] [--deck2 N] [--p1 NAME] [--p2 NAME] [--json] [--config FILE]")
	fmt.Println("  cardclash stats   --player NAME [--config FILE]")
	fmt.Println("  cardclash history --player NAME [--config FILE]")
	fmt.Println("  cardclash cards   [--rarity R] [--config FILE]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  battle   Simulate a battle between two decks from the deck file")
	fmt.Println("  stats    Show a player's win/loss statistics")
	fmt.Println("  history  List a player's recorded battles")
	fmt.Println("  cards    List the card catalog")
}

func openApp(fs *flag.FlagSet, args []string) (*app.App, error) {
	configFile := fs.String("config", "cardclash.toml", "path to config file")
	fs.Parse(args)
	return app.Open(*configFile)
}

func runBattle(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("battle", flag.ExitOnError)
	deck1 := fs.Int("deck1", 1, "deck number for player 1 (from the deck file)")
	deck2 := fs.Int("deck2", 2, "deck number for player 2 (from the deck file)")
	name1 := fs.String("p1", "Player 1", "player 1 username")
	name2 := fs.String("p2", "Player 2", "player 2 username")
	asJSON := fs.Bool("json", false, "print the result as JSON instead of the narration")
	a, err := openApp(fs, args)
	if err != nil {
		return err
	}
	defer a.Close()

	p1, err := loadProfile(a, *name1, *deck1)
	if err != nil {
		return err
	}
	p2, err := loadProfile(a, *name2, *deck2)
	if err != nil {
		return err
	}

	narration := log.NewMemoryLogger()
	result, status, err := a.Manager.StartBattle(ctx, p1, p2, battle.WithEventLogger(narration))
	if err != nil {
		return err
	}

	if *asJSON {
		return printJSON(map[string]any{"status": status, "result": result})
	}
	fmt.Print(log.FormatAll(narration.Events()))
	fmt.Println()
	fmt.Printf("%s: %s %d HP, %s %d HP after %d turns\n",
		status, result.Player1, result.Player1Health, result.Player2, result.Player2Health, result.Turns)
	return nil
}

func loadProfile(a *app.App, name string, deck int) (*player.Profile, error) {
	deckName, cards, err := game.DeckByNumber(a.Config.Decks.Path, deck, a.Catalog)
	if err != nil {
		return nil, err
	}
	p, err := player.WithDeck(name, cards)
	if err != nil {
		return nil, fmt.Errorf("deck %q: %w", deckName, err)
	}
	return p, nil
}

func runStats(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	name := fs.String("player", "", "player username")
	a, err := openApp(fs, args)
	if err != nil {
		return err
	}
	defer a.Close()
	if *name == "" {
		return errors.New("--player is required")
	}

	stats, err := a.Manager.Stats(ctx, *name)
	if err != nil {
		return err
	}
	return printJSON(stats)
}

func runHistory(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	name := fs.String("player", "", "player username")
	a, err := openApp(fs, args)
	if err != nil {
		return err
	}
	defer a.Close()
	if *name == "" {
		return errors.New("--player is required")
	}

	recs, err := a.Manager.History(ctx, *name)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tPLAYER 1\tPLAYER 2\tWINNER\tTURNS\tHEALTH")
	for _, r := range recs {
		winner := "draw"
		if r.Winner != nil {
			winner = *r.Winner
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d/%d\n",
			r.Timestamp.Local().Format("2006-01-02 15:04"), r.Player1, r.Player2, winner,
			r.Turns, r.Player1Health, r.Player2Health)
	}
	return tw.Flush()
}

func runCards(args []string) error {
	fs := flag.NewFlagSet("cards", flag.ExitOnError)
	rarity := fs.String("rarity", "", "only list cards of this rarity")
	a, err := openApp(fs, args)
	if err != nil {
		return err
	}
	defer a.Close()

	cards := a.Catalog.All()
	if *rarity != "" {
		r, err := game.ParseRarity(*rarity)
		if err != nil {
			return err
		}
		cards = a.Catalog.ByRarity(r)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tRARITY\tTYPE\tATK\tDEF\tCOST\tABILITY")
	for _, c := range cards {
		ability := "-"
		if ab := c.Ability; ab != nil {
			ability = fmt.Sprintf("%s %d", ab.Kind, ab.Value)
			if ab.Name != "" {
				ability = fmt.Sprintf("%s %q %d for %d turns", ab.Kind, ab.Name, ab.Value, ab.Duration)
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			c.ID, c.Name, c.Rarity, c.Type, c.Attack, c.Defense, c.Cost, ability)
	}
	return tw.Flush()
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
