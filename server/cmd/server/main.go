package main

import (
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/automoto/teerace/config"
	"github.com/automoto/teerace/server/core"
	"github.com/automoto/teerace/shared/leveldata"
	"github.com/automoto/teerace/shared/protocol"
	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "", "Path to a TOML config file (empty = defaults)")
	writeConfig := flag.String("write-config", "", "Write the default config to this path and exit")
	port := flag.Uint("port", 0, "Server port (overrides config)")
	mode := flag.String("mode", "", "Game mode: dm, race or hprace (overrides config)")
	mapName := flag.String("map", "", "Map name (overrides config)")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if *writeConfig != "" {
		if err := config.SaveDefault(*writeConfig); err != nil {
			log.Fatalf("write config: %v", err)
		}
		log.Infof("wrote default config to %s", *writeConfig)
		return
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("load config: %v", err)
		}
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *mode != "" {
		cfg.Server.Mode = config.GameMode(*mode)
	}
	if *mapName != "" {
		cfg.Server.Map = *mapName
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	if level, err := logrus.ParseLevel(cfg.Server.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.Warnf("unknown log level %q, using info", cfg.Server.LogLevel)
	}

	if cfg.Server.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:     cfg.Server.SentryDSN,
			Release: cfg.Server.Version,
		}); err != nil {
			log.Warnf("sentry init: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("register components: %v", err)
	}

	level, err := core.LoadServerLevel(cfg.Server.MapsDir, cfg.Server.Map, log)
	if err != nil {
		dir := filepath.Clean(cfg.Server.MapsDir)
		if _, names, listErr := leveldata.LoadAllLevels(os.DirFS(filepath.Dir(dir)), filepath.Base(dir)); listErr == nil {
			log.WithField("available", names).Error("map not found")
		}
		log.Fatalf("%v", err)
	}

	server, err := core.NewServer(cfg, level, log)
	if err != nil {
		log.Fatalf("create server: %v", err)
	}

	var registration *core.Registration
	if cfg.Server.MasterURL != "" {
		registration = core.NewRegistration(cfg.Server, server, log)
		registration.Start()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGUSR1, syscall.SIGUSR2)
	go func() {
		for sig := range sigChan {
			switch sig {
			case syscall.SIGUSR1:
				server.TogglePause()
				continue
			case syscall.SIGUSR2:
				server.RestartRound()
				continue
			}
			log.Info("shutting down server")
			if registration != nil {
				registration.Stop()
			}
			server.Stop()
			sentry.Flush(2 * time.Second)
			os.Exit(0)
		}
	}()

	log.Infof("starting %q on port %d (mode %s, map %s, %d ticks/s)",
		cfg.Server.Name, cfg.Server.Port, cfg.Server.Mode, cfg.Server.Map, cfg.Server.TickRate)
	if err := server.Start(cfg.Server.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
