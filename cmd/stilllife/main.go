package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"stilllife/app"
	"stilllife/config"
	"stilllife/core"
	"stilllife/internal/opengl"
	"stilllife/platform"
	"stilllife/scene"
)

type options struct {
	configPath string
	textureDir string
	width      int
	height     int
	exportPath string
	logLevel   string
}

func parseFlags(args []string) (options, map[string]bool, error) {
	var o options
	fs := flag.NewFlagSet("stilllife", flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", "", "path to a JSON config file")
	fs.StringVar(&o.textureDir, "textures", "", "directory holding the texture images")
	fs.IntVar(&o.width, "width", 0, "initial window width")
	fs.IntVar(&o.height, "height", 0, "initial window height")
	fs.StringVar(&o.exportPath, "export", "", "write the scene to a .glb file and exit")
	fs.StringVar(&o.logLevel, "log-level", "", "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return o, nil, err
	}
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return o, set, nil
}

func parseLevel(name string) (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(strings.ToUpper(name)))
	return level, err
}

// loadConfig reads the config file if one is given and applies flags that
// were set on the command line.
func loadConfig(o options, set map[string]bool) (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return nil, err
		}
	}
	if set["textures"] {
		cfg.Textures.Dir = o.textureDir
	}
	if set["width"] {
		cfg.Window.Width = o.width
	}
	if set["height"] {
		cfg.Window.Height = o.height
	}
	if set["log-level"] {
		cfg.LogLevel = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func sources(cfg *config.Config) (app.Sources, error) {
	files, err := cfg.TextureFiles()
	if err != nil {
		return app.Sources{}, err
	}
	geometry, err := cfg.GeometryOverrides()
	if err != nil {
		return app.Sources{}, err
	}
	return app.Sources{
		TextureDir:    cfg.Textures.Dir,
		TextureFiles:  files,
		GeometryFiles: geometry,
		Texture:       scene.TextureOptions{MaxSize: cfg.Textures.MaxSize},
	}, nil
}

func export(cfg *config.Config, src app.Sources, path string) error {
	uris := make(map[scene.TextureID]string, len(src.TextureFiles))
	for id, file := range src.TextureFiles {
		uris[id] = filepath.ToSlash(filepath.Join(src.TextureDir, file))
	}
	return scene.ExportGLTF(path, cfg.Descriptor(), uris, src.GeometryFiles)
}

func view(cfg *config.Config, src app.Sources) error {
	window, err := platform.NewWindow(platform.WindowConfig{
		Width:        cfg.Window.Width,
		Height:       cfg.Window.Height,
		Title:        cfg.Window.Title,
		Resizable:    cfg.Window.Resizable,
		VSync:        cfg.Window.VSync,
		CaptureMouse: cfg.Window.CaptureMouse,
	})
	if err != nil {
		return err
	}
	defer window.Destroy()

	device, err := opengl.NewDevice()
	if err != nil {
		return err
	}
	defer device.Destroy()

	a, err := app.New(window, device, cfg, src)
	if err != nil {
		return err
	}
	a.Run()
	return nil
}

func run(args []string) int {
	o, set, err := parseFlags(args)
	if err != nil {
		return 2
	}

	level := slog.LevelInfo
	if set["log-level"] {
		if level, err = parseLevel(o.logLevel); err != nil {
			fmt.Fprintf(os.Stderr, "invalid -log-level %q\n", o.logLevel)
			return 2
		}
	}
	core.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	log := core.Logger()

	cfg, err := loadConfig(o, set)
	if err != nil {
		log.Error("configuration failed", "err", err)
		return 1
	}
	if !set["log-level"] && cfg.LogLevel != "" {
		if level, err := parseLevel(cfg.LogLevel); err == nil {
			core.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			log = core.Logger()
		} else {
			log.Warn("ignoring log_level from config", "value", cfg.LogLevel)
		}
	}

	src, err := sources(cfg)
	if err != nil {
		log.Error("configuration failed", "err", err)
		return 1
	}

	if o.exportPath != "" {
		if err := export(cfg, src, o.exportPath); err != nil {
			log.Error("export failed", "err", err)
			return 1
		}
		return 0
	}

	if err := view(cfg, src); err != nil {
		log.Error("viewer failed", "err", err)
		return 1
	}
	log.Info("exiting")
	return 0
}

func main() {
	os.Exit(run(os.Args[1:]))
}
