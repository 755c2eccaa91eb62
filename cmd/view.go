package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/achilleasa/pathview/asset/model"
	"github.com/achilleasa/pathview/config"
	"github.com/achilleasa/pathview/display"
	"github.com/achilleasa/pathview/input"
	"github.com/achilleasa/pathview/platform/glfw"
	"github.com/achilleasa/pathview/renderer"
	"github.com/achilleasa/pathview/scene"
	"github.com/achilleasa/pathview/viewer"
	"github.com/urfave/cli"
)

// Open an interactive window for the configured model.
func View(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	setupLogging(ctx, cfg.LogLevel)

	m, err := model.Read(cfg.Model)
	if err != nil {
		fmt.Fprintf(os.Stdout, "FATAL ERROR: %s\n", err)
		return cli.NewExitError("Can't load the right model! The model may not exist!", 1)
	}

	// The world scale controls how far the camera moves for any given
	// user interaction
	cam, err := scene.NewCameraFrame(cfg.InitialCamera(m), m.WorldScale())
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	r, err := renderer.NewPreview(m, cfg.RendererOptions())
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	defer r.Close()

	window, err := glfw.NewWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	surface := display.NewSurface(glfw.TextureUploader{})
	if err = surface.SetScreenshotOptions(cfg.Screenshot.Dir, cfg.Screenshot.Format); err != nil {
		window.Close()
		return cli.NewExitError(err.Error(), 1)
	}

	translator := input.NewTranslator(input.Targets{
		Camera:  cam,
		Scene:   r,
		Capture: surface,
		Window:  window,
	}, cfg.Settings(), cfg.Input.MouseSensitivity)
	loop := viewer.NewLoop(window, viewer.NewDriver(cam, translator, surface, r), cfg.Window.Title)

	if cfg.Watch {
		stop := watchModel(cfg.Model, loop, r)
		defer stop()
	}

	printBindings(os.Stdout)
	if err = loop.Run(); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	displayFrameStats(r.Stats())
	return nil
}

// Reload the model on the loop goroutine whenever the model file changes.
// Returns a function that stops watching.
func watchModel(path string, loop *viewer.Loop, r *renderer.Preview) func() {
	if strings.Contains(path, "://") {
		logger.Warningf("cannot watch remote model %s", path)
		return func() {}
	}

	watcher, err := model.NewWatcher(path)
	if err != nil {
		logger.Warningf("cannot watch model %s: %s", path, err)
		return func() {}
	}
	logger.Noticef("watching %s for changes", path)

	go func() {
		for {
			select {
			case changed, ok := <-watcher.Changes:
				if !ok {
					return
				}
				loop.Post(func() {
					m, err := model.Read(changed)
					if err != nil {
						logger.Errorf("could not reload model: %s", err)
						return
					}
					r.SetModel(m)
					logger.Noticef("reloaded %s", m)
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warningf("model watcher: %s", err)
			}
		}
	}()

	return func() { watcher.Close() }
}

// Load the configuration file (if any) and apply command line overrides.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := ctx.GlobalString("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}

	if path := ctx.GlobalString("model"); path != "" {
		cfg.Model = path
	}
	if ctx.GlobalBool("watch") {
		cfg.Watch = true
	}
	return cfg, nil
}

func printBindings(w io.Writer) {
	for _, binding := range input.Bindings {
		fmt.Fprintf(w, "Press '%s' to %s\n", binding.Keys, binding.Description)
	}
}
