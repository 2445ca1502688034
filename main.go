/* main.go
 * The "main" method for running the bot. Loads the configuration, connects the optional tournament archive and runs
 * the Discord bot alongside the status server until interrupted
 * Usage: go run . -test=false -addr=":8080"
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tournament-assistant/api/api"
	"tournament-assistant/api/store"
	"tournament-assistant/bot"
	"tournament-assistant/web"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

// config is everything main needs to start the bot
type config struct {
	DiscordToken   string
	ArchiveEnabled bool
	MongoURI       string
	MongoDB        string
	StatusAddr     string
	LockTimeout    time.Duration
	AllowedOrigins []string
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using the environment")
	}

	cfg, err := loadConfig(os.Args[1:], os.Getenv)
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	var archive store.Interface
	if cfg.ArchiveEnabled {
		mongoStore, err := store.NewStore(cfg.MongoDB, cfg.MongoURI)
		if err != nil {
			log.Fatalf("failed to connect to the tournament archive: %v", err)
		}
		defer func() {
			if err := mongoStore.Close(context.Background()); err != nil {
				log.Println("failed to close the tournament archive:", err)
			}
		}()
		archive = mongoStore
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	apiPtr := api.NewAPI(archive, cfg.LockTimeout)
	discordBot, err := bot.NewBot(cfg.DiscordToken, apiPtr, reg)
	if err != nil {
		log.Fatalf("failed to initialize bot: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return discordBot.Run(gCtx)
	})
	if cfg.StatusAddr != "" {
		g.Go(func() error {
			return web.Start(gCtx, web.Config{
				Addr:           cfg.StatusAddr,
				API:            apiPtr,
				Gatherer:       reg,
				AllowedOrigins: cfg.AllowedOrigins,
			})
		})
	}

	if err := g.Wait(); err != nil {
		log.Printf("shutting down: %v", err)
	}
}

// loadConfig reads the flags and environment variables
// Preconditions: Receives the command line arguments without the program name and a function to read the environment
// Postconditions: Returns the configuration, or an error describing the first invalid value
func loadConfig(args []string, getenv func(string) string) (config, error) {
	flags := flag.NewFlagSet("tournament-assistant", flag.ContinueOnError)
	testPtr := flags.String("test", "false", "Use main or test bot: takes true or false as argument")
	addrPtr := flags.String("addr", getenv("STATUS_ADDR"), "Address for the status server, empty to disable it")
	lockTimeoutPtr := flags.Duration("lockTimeout", 0, "How long a command waits for a tournament, 0 for the default")
	if err := flags.Parse(args); err != nil {
		return config{}, err
	}

	useTestBot, err := convertStrToBool(*testPtr)
	if err != nil {
		return config{}, fmt.Errorf("invalid \"test\" flag, should be true or false: %w", err)
	}

	cfg := config{
		StatusAddr:     *addrPtr,
		LockTimeout:    *lockTimeoutPtr,
		MongoURI:       getenv("MONGO_URI"),
		MongoDB:        envOrDefault(getenv, "MONGO_DB", "tournaments"),
		AllowedOrigins: splitList(getenv("STATUS_ALLOWED_ORIGINS")),
	}
	if useTestBot {
		cfg.DiscordToken = getenv("DISCORD_BETA_TOKEN")
	} else {
		cfg.DiscordToken = getenv("DISCORD_PROD_TOKEN")
	}
	if cfg.DiscordToken == "" {
		return config{}, fmt.Errorf("no discord token set for the selected bot")
	}

	if archive := getenv("ARCHIVE_ENABLED"); archive != "" {
		cfg.ArchiveEnabled, err = convertStrToBool(archive)
		if err != nil {
			return config{}, fmt.Errorf("invalid ARCHIVE_ENABLED: %w", err)
		}
	}
	if cfg.ArchiveEnabled && cfg.MongoURI == "" {
		return config{}, fmt.Errorf("MONGO_URI is required when the archive is enabled")
	}
	return cfg, nil
}
