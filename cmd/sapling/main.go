package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/akmonengine/sapling"
	"github.com/akmonengine/sapling/config"
	"github.com/akmonengine/sapling/log"
	"github.com/akmonengine/sapling/scene"
	"golang.org/x/sync/errgroup"
)

func main() {
	frames := flag.Int("frames", 0, "number of frames to simulate, overrides the scene file when > 0")
	level := flag.String("level", "info", "log level: debug, info, warn or error")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] scene.yaml [scene.json ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	lvl, err := log.ParseLevel(*level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := log.New(lvl)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, logger, flag.Args(), *frames); err != nil {
		logger.Error("simulation failed", log.Err(err))
		logger.Sync()
		os.Exit(1)
	}
}

// run simulates every scene file concurrently and stops at the first failure
func run(ctx context.Context, logger log.Log, paths []string, frames int) error {
	group, ctx := errgroup.WithContext(ctx)
	for _, path := range paths {
		group.Go(func() error {
			return simulate(ctx, logger.With(log.String("file", path)), path, frames)
		})
	}

	return group.Wait()
}

func simulate(ctx context.Context, logger log.Log, path string, frames int) error {
	cfg, err := config.LoadFile(path)
	if err != nil {
		return err
	}
	if frames > 0 {
		cfg.Frames = frames
	}

	s, err := cfg.Build(logger)
	if err != nil {
		return err
	}

	events := &s.World().Events
	for _, eventType := range []sapling.EventType{sapling.COLLISION_ENTER, sapling.TRIGGER_ENTER, sapling.TRIGGER_EXIT} {
		events.Subscribe(eventType, func(event sapling.Event) {
			a, b := event.Bodies()
			logger.Info(event.Type().String(),
				log.Uint64("frame", s.Frames()),
				log.String("a", a.Name),
				log.String("b", b.Name))
		})
	}

	logger.Info("simulation started",
		log.String("scene", cfg.Name),
		log.Int("frames", cfg.Frames),
		log.Float64("dt", cfg.DT))

	for i := 0; i < cfg.Frames; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.Update(cfg.DT)
		s.Draw()
	}

	report(logger, s)

	return nil
}

// report logs the final position and velocity of every body in the scene
func report(logger log.Log, s *scene.Scene) {
	tree := s.Tree()
	tree.Walk(s.Root(), func(id scene.NodeID, depth int) bool {
		body, err := s.Body(id)
		if err != nil {
			return true
		}
		position := body.Position()
		logger.Info("body",
			log.String("name", body.Name),
			log.Int("depth", depth),
			log.Bool("enabled", tree.Enabled(id)),
			log.Any("position", [3]float64(position)),
			log.Any("velocity", [3]float64(body.Velocity)))
		return true
	})

	logger.Info("simulation finished",
		log.String("scene", s.Name()),
		log.Uint64("frames", s.Frames()))
}
