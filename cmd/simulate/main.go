package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"

	"catalyst/internal/app"
	"catalyst/internal/bot"
	"catalyst/internal/catalog"
	"catalyst/internal/config"
	"catalyst/internal/domain"

	"github.com/joho/godotenv"
)

// simulate runs a full bot-vs-bot match on the local engine. Useful for
// balancing the catalog and eyeballing the event stream without a Nakama
// server.
func main() {
	seed := flag.Int64("seed", 0, "rng seed, 0 picks a random one")
	matches := flag.Int("matches", 1, "number of matches to play")
	verbose := flag.Bool("v", false, "log every event")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg, err := config.FromEnv(environMap())
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Printf("catalog %s unavailable, using built-in set: %v", cfg.CatalogPath, err)
		cat = catalog.Default()
	}

	if *seed == 0 {
		*seed = rand.Int63()
	}
	log.Printf("seed=%d matches=%d", *seed, *matches)

	wins := map[domain.Winner]int{}
	for i := 0; i < *matches; i++ {
		rng := rand.New(rand.NewSource(*seed + int64(i)))
		result, err := playMatch(rng, cfg, cat, *verbose)
		if err != nil {
			log.Fatalf("match %d: %v", i+1, err)
		}
		wins[result.Winner]++
		log.Printf("match %d: winner=%s reason=%s score %d-%d",
			i+1, result.Winner, result.Reason, result.Player1Score, result.Player2Score)
	}

	log.Printf("totals: player1=%d player2=%d draw=%d",
		wins[domain.WinnerPlayer1], wins[domain.WinnerPlayer2], wins[domain.WinnerDraw])
}

func playMatch(rng *rand.Rand, cfg config.Config, cat *catalog.Catalog, verbose bool) (*domain.Result, error) {
	service := app.NewService(rng, app.Options{
		MaxTurns:          cfg.MaxTurns,
		SituationHandSize: cfg.SituationHandSize,
	})

	p1ID := bot.GetBotIdentity(0)
	p2ID := bot.GetBotIdentity(1)

	agents := map[string]*bot.Agent{}
	for _, id := range []bot.Identity{p1ID, p2ID} {
		agent, err := bot.NewAgent(id.UserID)
		if err != nil {
			return nil, fmt.Errorf("agent %s: %w", id.UserID, err)
		}
		agents[id.UserID] = agent
	}

	game, _, err := service.StartMatch("simulate",
		app.PlayerInfo{UserID: p1ID.UserID, Username: p1ID.Username},
		app.PlayerInfo{UserID: p2ID.UserID, Username: p2ID.Username},
		cat.BuildSituationDeck(), cat.BuildEnergyDeck())
	if err != nil {
		return nil, err
	}

	// A generous step cap guards against strategy bugs looping a turn.
	for steps := 0; !game.IsOver(); steps++ {
		if steps > 10000 {
			return nil, fmt.Errorf("match did not converge after %d steps", steps)
		}

		actorID := game.Player(game.CurrentPlayer).UserID
		move, err := agents[actorID].Play(game)
		if err != nil {
			return nil, fmt.Errorf("%s in phase %s: %w", actorID, game.Phase, err)
		}

		events, err := service.HandleAction(game, actorID, move)
		if err != nil {
			return nil, fmt.Errorf("%s rejected %s in phase %s: %w", actorID, move.Type, game.Phase, err)
		}
		if verbose {
			for _, ev := range events {
				log.Printf("  turn %d [%s] %s %+v", game.CurrentTurn, actorID, ev.Kind, ev.Payload)
			}
		}
	}

	return game.Result, nil
}

func environMap() map[string]string {
	env := map[string]string{}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env
}
