package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"

	"github.com/nicky-ayoub/ebitcompare/internal/compare"
	"github.com/nicky-ayoub/ebitcompare/internal/config"
	"github.com/nicky-ayoub/ebitcompare/internal/logger"
	"github.com/nicky-ayoub/ebitcompare/internal/service"
	"github.com/nicky-ayoub/ebitcompare/internal/ui"
)

type Game struct {
	cfg *config.Config
	log *zap.Logger

	pairState  *ui.PairState
	surface    *ui.Surface
	controller *compare.Controller
	gestures   *ui.GestureDispatcher

	ImageService *service.ImageService
	watcher      *service.Watcher

	// Logical screen size from the last Layout call
	screenW, screenH int
	boundsDirty      bool

	showInfo bool
}

func newGame(cfg *config.Config, log *zap.Logger, pair service.Pair) (*Game, error) {
	policy, err := compare.ParseClampPolicy(cfg.View.ClampPolicy)
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:          cfg,
		log:          log,
		pairState:    ui.NewPairState(pair),
		surface:      ui.NewSurface(float64(cfg.Input.HandleWidth)),
		ImageService: service.NewImageService(),
	}
	g.controller = compare.NewController(g.surface, compare.Options{
		MinScale:         cfg.View.MinScale,
		MaxScale:         cfg.View.MaxScale,
		WheelSensitivity: cfg.Input.WheelSensitivity,
		Policy:           policy,
		Logger:           log,
	})
	g.gestures = ui.NewGestureDispatcher(g.controller, g.surface, cfg.Input.WheelLineHeight)
	return g, nil
}

func (g *Game) Update() error {
	input := ui.PollInput()

	if input.Quit {
		return ebiten.Termination
	}
	if input.ToggleFullscreen {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	if input.ToggleInfo {
		g.showInfo = !g.showInfo
	}

	// Upload images finished by the loaders or the watcher. Texture
	// creation has to happen on the game loop goroutine.
	if g.surface.Sync(g.pairState) {
		g.controller.SetAspectRatio(g.pairState.AspectRatio())
	}

	if g.boundsDirty {
		g.surface.SetBounds(compare.Bounds{Width: float64(g.screenW), Height: float64(g.screenH)})
		g.controller.Refresh()
		g.boundsDirty = false
	}

	if input.ResetView {
		g.controller.Reset()
	}

	g.gestures.Dispatch(input)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.Draw(screen)

	if !g.pairState.Ready() {
		ebitenutil.DebugPrint(screen, "Loading...\n"+g.pairState.Dump())
		return
	}
	if g.showInfo {
		st := g.controller.State()
		ebitenutil.DebugPrint(screen, fmt.Sprintf("%sSlider: %.1f%%\nZoom: %.2fx\nMode: %s",
			g.pairState.Dump(),
			st.SliderPercent,
			st.Scale,
			st.Mode))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	// A 1:1 logical-to-window mapping keeps pointer coordinates in
	// container pixels.
	if outsideWidth != g.screenW || outsideHeight != g.screenH {
		g.screenW, g.screenH = outsideWidth, outsideHeight
		g.boundsDirty = true
	}
	return outsideWidth, outsideHeight
}

// loadSide decodes the image of one side and stores it in the pair state.
// It runs on loader goroutines and on the watcher's goroutine.
func (g *Game) loadSide(side ui.Side, path string) error {
	img, err := g.ImageService.Load(path)
	if err != nil {
		g.pairState.SetError(side, err)
		return err
	}
	g.pairState.SetLoaded(side, img)
	g.log.Info("image loaded",
		zap.Stringer("side", side),
		zap.String("path", path),
		zap.Int("width", img.Info.Width),
		zap.Int("height", img.Info.Height),
	)
	for k, v := range img.Info.EXIFData {
		g.log.Debug("exif", zap.Stringer("side", side), zap.String(k, v))
	}
	return nil
}

// startLoaders loads both images in the background.
func (g *Game) startLoaders() {
	for _, side := range []ui.Side{ui.Before, ui.After} {
		go func(side ui.Side) {
			path := g.pairState.Path(side)
			if err := g.loadSide(side, path); err != nil {
				g.log.Error("loading image failed", zap.Stringer("side", side), zap.String("path", path), zap.Error(err))
			}
		}(side)
	}
}

// startWatcher reloads an image whenever its file changes.
func (g *Game) startWatcher() error {
	paths := []string{g.pairState.Path(ui.Before), g.pairState.Path(ui.After)}
	w, err := service.NewWatcher(paths, func(path string) error {
		side, ok := g.pairState.SideForPath(path)
		if !ok {
			return nil
		}
		return g.loadSide(side, path)
	}, g.log)
	if err != nil {
		return err
	}
	if g.cfg.Watch.MaxRetries > 0 {
		w.MaxRetries = uint64(g.cfg.Watch.MaxRetries)
	}
	if err := w.Start(); err != nil {
		w.Stop()
		return err
	}
	g.watcher = w
	return nil
}

func main() {
	configPath := flag.String("config", "", "Path to a YAML or TOML config file")
	dirFlag := flag.String("dir", ".", "Directory holding a before/after pair, used when no images are given")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error); overrides the config file")
	policyFlag := flag.String("policy", "", "Pan clamp policy (coverage or centered); overrides the config file")
	noWatch := flag.Bool("no-watch", false, "Do not reload images when they change on disk")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [before after | dir]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(2)
		}
		cfg = loaded
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *policyFlag != "" {
		cfg.View.ClampPolicy = *policyFlag
	}
	if *noWatch {
		cfg.Watch.Enabled = false
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(2)
	}
	defer log.Sync()

	pair, err := service.NewPairService().Resolve(flag.Args(), *dirFlag)
	if err != nil {
		if errors.Is(err, service.ErrPairNotFound) {
			flag.Usage()
		}
		log.Fatal("Failed to resolve images", zap.Error(err))
	}
	log.Info("comparing", zap.String("before", pair.Before), zap.String("after", pair.After))

	game, err := newGame(cfg, log, pair)
	if err != nil {
		log.Fatal("Failed to initialize viewer", zap.Error(err))
	}

	game.startLoaders()
	if cfg.Watch.Enabled {
		if err := game.startWatcher(); err != nil {
			log.Warn("File watching disabled", zap.Error(err))
		} else {
			defer game.watcher.Stop()
		}
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Error("Game loop exited", zap.Error(err))
	}
}
