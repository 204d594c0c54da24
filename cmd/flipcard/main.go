package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/flipcard/constant"
	"github.com/lixenwraith/flipcard/core"
	"github.com/lixenwraith/flipcard/engine"
	"github.com/lixenwraith/flipcard/input"
	"github.com/lixenwraith/flipcard/network"
	"github.com/lixenwraith/flipcard/render"
	"github.com/lixenwraith/flipcard/system"
)

func main() {
	// Panic Recovery: Ensure terminal is reset even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	if err := loadEnvFiles(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "flipcard: %v\n", err)
		os.Exit(2)
	}

	settings, err := loadSettings(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "flipcard: %v\n", err)
		os.Exit(2)
	}

	if err := run(settings); err != nil {
		fmt.Fprintf(os.Stderr, "flipcard: %v\n", err)
		os.Exit(1)
	}
}

func run(s Settings) error {
	logger, closeLog, err := setupLogging(s)
	if err != nil {
		return err
	}
	defer closeLog()
	core.SetCrashLogger(logger)

	atlas, err := s.LoadAtlas()
	if err != nil {
		return err
	}

	game, err := engine.NewGame(s.GameConfig(),
		engine.WithLogger(logger),
		engine.WithRand(s.Rand()),
	)
	if err != nil {
		return err
	}
	system.Install(game)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info().Str("mode", s.Mode).Int("rows", s.Rows).Int("cols", s.Cols).Int("pairs", s.Pairs).Msg("starting")

	switch s.Mode {
	case ModeServe:
		err = runServe(ctx, s, game, logger)
	default:
		err = runTerminal(ctx, game, atlas)
	}
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	logger.Info().Err(err).Msg("stopped")
	return err
}

// runTerminal plays on the local terminal until quit
func runTerminal(ctx context.Context, game *engine.Game, atlas *render.Atlas) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	// Normal exit terminal cleanup
	defer screen.Fini()
	core.SetCrashScreen(screen)
	defer core.SetCrashScreen(nil)

	screen.EnableMouse()
	screen.HideCursor()

	renderer := render.NewTerminalRenderer(screen, atlas, game.Status)
	game.AddNotifier(renderer)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	router := input.NewRouter(game,
		func() render.Viewport { return renderer.Viewport(game.Layout) },
		screen.Sync,
		cancel,
	)
	core.Go(func() { router.Poll(ctx, screen) })

	game.Start()
	driver := engine.NewDriver(game, engine.NewMonotonicTimeProvider(), constant.FrameUpdateInterval, renderer)
	return driver.Run(ctx)
}

// runServe exposes the board over HTTP until interrupted
func runServe(ctx context.Context, s Settings, game *engine.Game, logger zerolog.Logger) error {
	srv := network.NewServer(s.NetworkConfig(), game, logger)
	game.AddNotifier(srv)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	serveErr := make(chan error, 1)
	core.Go(func() {
		serveErr <- srv.ListenAndServe(ctx)
		cancel()
	})

	game.Start()
	driver := engine.NewDriver(game, engine.NewMonotonicTimeProvider(), constant.FrameUpdateInterval, srv)
	runErr := driver.Run(ctx)

	cancel()
	if err := <-serveErr; err != nil {
		return err
	}
	return runErr
}
