package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"SketchBoard/internal/config"
	boardnet "SketchBoard/internal/net"
	"SketchBoard/internal/sketch"
	"SketchBoard/internal/state"
	"SketchBoard/internal/ui"
)

const discoverTimeout = 3 * time.Second

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	receive := flag.String("receive", "", "run as an image receiver storing into this directory")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *receive != "" {
		runReceiver(cfg, *receive)
		return
	}
	runBoard(cfg)
}

func runBoard(cfg config.Config) {
	log.Println("Starting SketchBoard")
	if cfg.User == "" {
		cfg.User = state.NewUserID()
	}
	log.Printf("Drawing as %s, saving below %s", cfg.User, cfg.SaveDir)

	ui.RunApp(cfg, relayFor(cfg))
}

// relayFor resolves the configured relay into something the surface can send to.
func relayFor(cfg config.Config) sketch.Relay {
	switch cfg.Relay {
	case "":
		return nil
	case config.RelayDiscover:
		ctx, cancel := context.WithTimeout(context.Background(), discoverTimeout)
		defer cancel()
		url, err := boardnet.Discover(ctx, discoverTimeout)
		if err != nil {
			log.Printf("[MDNS] Receiver discovery failed, saving locally only: %v", err)
			return nil
		}
		return boardnet.NewRelay(url)
	default:
		return boardnet.NewRelay(cfg.Relay)
	}
}

func runReceiver(cfg config.Config, dir string) {
	log.Println("Starting as RECEIVER")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	server, err := boardnet.Advertise(cfg.ReceivePort)
	if err != nil {
		log.Printf("[MDNS] Not advertising: %v", err)
	} else {
		defer server.Shutdown()
	}

	log.Printf("Point relays at %s", boardnet.ReceiverURL(boardnet.LocalIP(), cfg.ReceivePort))

	receiver := boardnet.NewReceiver(dir)
	receiver.OnImage = func(path string) {
		log.Printf("[RELAY] New sketch %s", path)
	}
	if err := receiver.ListenAndServe(ctx, cfg.ReceivePort); err != nil {
		log.Fatalf("Receiver stopped: %v", err)
	}
}
