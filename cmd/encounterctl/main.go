// Package main provides encounterctl, a command-line client for the
// encounter engine daemon.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/cory-johannsen/initiative/internal/client"
	"github.com/cory-johannsen/initiative/internal/config"
	"github.com/cory-johannsen/initiative/internal/game/difficulty"
	"github.com/cory-johannsen/initiative/internal/gameserver/enginev1"
	"github.com/cory-johannsen/initiative/internal/notify"
	"github.com/cory-johannsen/initiative/internal/observability"
	"github.com/cory-johannsen/initiative/internal/preferences"
	"github.com/cory-johannsen/initiative/internal/storage/redis"
	"github.com/cory-johannsen/initiative/internal/view"
)

// app carries what every subcommand needs.
type app struct {
	client *client.Client
	dice   *view.DiceView
	prefs  *preferences.Store
	// prefsPath is where preference updates are saved.
	prefsPath string
	logger    *zap.Logger
}

type command struct {
	usage string
	run   func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"new":        {"new", runNew},
	"show":       {"show [id]", runShow},
	"next":       {"next", runNext},
	"undo":       {"undo", runUndo},
	"redo":       {"redo", runRedo},
	"damage":     {"damage [-type damage|halfDamage|doubleDamage|kill] <id> [amount]", runDamage},
	"heal":       {"heal [-type heal|setHp|setTempHp] <id> <amount>", runHeal},
	"action":     {"action <id> <standard|reaction|bonus|legendary:N> <on|off>", runAction},
	"condition":  {"condition [-duration ...] [-amount N] [-unit ...] [-for 1h30m] [-instigator id] [-custom name] <id> <name>...", runCondition},
	"roll":       {"roll <expr>", runRoll},
	"history":    {"history [-clear]", runHistory},
	"prefs":      {"prefs [key=value]...", runPrefs},
	"difficulty": {"difficulty [-rules srd51|srd52]", runDifficulty},
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: encounterctl [-config path] <command> [args]\n\ncommands:\n")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %s\n", commands[name].usage)
	}
	flag.PrintDefaults()
}

func main() {
	configPath := flag.String("config", "", "path to configuration file; empty uses defaults and INITIATIVE_ environment")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}
	cmd, ok := commands[flag.Arg(0)]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n", flag.Arg(0))
		usage()
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging, "encounterctl")
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	conn, err := client.Dial(cfg.Engine.Addr())
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer conn.Close()

	box := &notify.Box{}
	unsubscribe := box.Subscribe(func(m *notify.Message) {
		if m != nil {
			fmt.Fprintf(os.Stderr, "[%s] %s: %s\n", strings.ToUpper(string(m.Severity)), m.Title, m.Content)
		}
	})
	defer unsubscribe()

	c := client.New(enginev1.NewEngineClient(conn), box, logger)

	var store view.HistoryStore
	if cfg.Redis.Enabled {
		rdb := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		store = redis.NewRollHistory(rdb, cfg.Redis.HistoryKey, cfg.Redis.HistoryLimit)
	}

	base := preferences.Defaults()
	base.RulesVersion = difficulty.RulesVersion(cfg.Rules.Version)
	p, err := preferences.Load(cfg.Client.PreferencesPath, base)
	if err != nil {
		log.Fatalf("loading preferences: %v", err)
	}
	prefs, err := preferences.NewStore(p)
	if err != nil {
		log.Fatalf("preferences %s: %v", cfg.Client.PreferencesPath, err)
	}

	a := &app{
		client:    c,
		dice:      view.NewDiceView(c, store),
		prefs:     prefs,
		prefsPath: cfg.Client.PreferencesPath,
		logger:    logger,
	}

	ctx := context.Background()
	if cfg.Engine.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Engine.CallTimeout)
		defer cancel()
	}

	if err := cmd.run(ctx, a, flag.Args()[1:]); err != nil {
		// Engine failures were already reported through the notification box.
		if _, notified := box.Current(); !notified {
			fmt.Fprintf(os.Stderr, "encounterctl %s: %v\n", flag.Arg(0), err)
		}
		os.Exit(1)
	}
}
