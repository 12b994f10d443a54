package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/once-upon-a-lever/audio"
	"github.com/lixenwraith/once-upon-a-lever/catalog"
	"github.com/lixenwraith/once-upon-a-lever/config"
	"github.com/lixenwraith/once-upon-a-lever/engine"
	"github.com/lixenwraith/once-upon-a-lever/event"
	"github.com/lixenwraith/once-upon-a-lever/narrative"
	"github.com/lixenwraith/once-upon-a-lever/render"
	"github.com/lixenwraith/once-upon-a-lever/replay"
	"github.com/lixenwraith/once-upon-a-lever/store"
	"github.com/lixenwraith/once-upon-a-lever/system"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "once: %v\n", err)
		return 2
	}
	if err := cfg.ApplyFlags(flag.NewFlagSet("once", flag.ContinueOnError), args); err != nil {
		fmt.Fprintf(os.Stderr, "once: %v\n", err)
		return 2
	}

	if logFile := setupLogging(cfg.LogPath, cfg.Debug); logFile != nil {
		defer logFile.Close()
	}

	// Audio degrades to silence without a device
	sound := audio.NewSoundManager()
	if err := sound.Initialize(); err != nil {
		log.Printf("[audio] disabled: %v", err)
		sound = nil
	} else {
		defer sound.Cleanup()
	}

	a, err := newApp(cfg, log.Default(), sound)
	if err != nil {
		fmt.Fprintf(os.Stderr, "once: %v\n", err)
		return 1
	}
	defer a.close()

	if err := runScreen(a); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		return 1
	}
	if a.finished() {
		fmt.Println("The End.")
	}
	return 0
}

// runScreen owns the terminal for the length of the loop
func runScreen(a *app) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	// Panic Recovery: restore the terminal before printing the crash
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mONCE CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseDragEvents)
	screen.HideCursor()

	a.loop(screen)
	return nil
}

// newApp loads content, opens persistence and wires the game; nothing here touches the terminal
func newApp(cfg config.Config, logger *log.Logger, sound *audio.SoundManager) (*app, error) {
	cat, err := catalog.LoadAuto(cfg.CatalogPath, logger)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	layout, err := catalog.LoadLayoutAuto(cfg.LayoutPath, logger)
	if err != nil {
		return nil, fmt.Errorf("load layout: %w", err)
	}

	ctx := engine.NewGameContext(logger, layout.Positions(), cfg.Settings(), engine.NewPausableClock(nil))
	a := &app{
		ctx:    ctx,
		writer: narrative.NewTypewriter(ctx),
		menu:   &menuLoader{},
		dt:     cfg.TickInterval,
		sound:  sound,
		settings: store.Settings{
			Master: cfg.MasterVolume,
			Music:  cfg.MusicVolume,
			SFX:    cfg.SFXVolume,
			Muted:  cfg.Mute,
		},
	}

	bg, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var handlers []event.Handler
	if cfg.DBPath != "" {
		st, err := store.Open(cfg.DBPath)
		if err != nil {
			logger.Printf("[store] persistence disabled: %v", err)
		} else {
			a.store = st
			handlers = append(handlers, store.NewProgressRecorder(st, logger))
			if a.settings, err = st.LoadSettings(bg, a.settings); err != nil {
				logger.Printf("[store] settings: %v", err)
			}
			if cfg.Mute {
				a.settings.Muted = true
			}
		}
	}

	ctx.IsMuted.Store(a.settings.Muted)
	if sound != nil {
		sound.SetVolumes(audio.Volumes{Master: a.settings.Master, Music: a.settings.Music, SFX: a.settings.SFX})
		sound.SetMuted(a.settings.Muted)
		sound.StartMusic()
		handlers = append(handlers, audio.NewAudioSystem(sound, &ctx.IsMuted))
	}

	curtains := narrative.NewCurtainPair(ctx)
	fader := narrative.NewFader()
	game, err := system.Build(ctx, cat, layout, system.Collaborators{
		Narrator: a.writer,
		Curtain:  curtains,
		Fader:    fader,
		Loader:   a.menu,
	}, system.Options{GraphPath: cfg.GraphPath, Handlers: handlers})
	if err != nil {
		a.closeStore()
		return nil, err
	}
	a.game = game
	a.curtains = curtains
	a.fader = fader

	if cfg.ReplayPath != "" {
		if a.player, err = replay.Load(cfg.ReplayPath); err != nil {
			a.closeStore()
			return nil, err
		}
		logger.Printf("[replay] %d records from %s", a.player.Len(), cfg.ReplayPath)
	}
	if cfg.RecordPath != "" {
		if a.rec, err = replay.Create(cfg.RecordPath); err != nil {
			a.closeStore()
			return nil, err
		}
	}

	// A replay starts from the first scene so recorded input lines up
	if a.store != nil {
		if cfg.Resume && a.player == nil {
			if scene, ok, err := a.store.LastProgress(bg); err != nil {
				logger.Printf("[store] progress: %v", err)
			} else if ok {
				game.Scene.SetStartScene(scene)
			}
		}
		if _, err := a.store.StartSession(bg, game.Scene.SceneIndex()); err != nil {
			logger.Printf("[store] %v", err)
		}
	}
	game.Scene.Start()
	return a, nil
}

// loop runs input and fixed-step ticks on one goroutine until quit or the story ends
func (a *app) loop(screen tcell.Screen) {
	orchestrator := render.NewRenderOrchestrator(screen)

	type rendererDef struct {
		renderer render.SystemRenderer
		priority render.RenderPriority
	}
	for _, def := range []rendererDef{
		{render.NewStageRenderer(a.game), render.PriorityBoard},
		{render.NewFigureRenderer(a.game), render.PriorityFigures},
		{render.NewItemRenderer(a.game), render.PriorityItems},
		{render.NewCurtainRenderer(a.curtains), render.PriorityCurtain},
		{render.NewNarrationRenderer(a.writer), render.PriorityText},
		{render.NewStatusBarRenderer(a.game), render.PriorityUI},
		{render.NewFadeRenderer(a.fader), render.PriorityFade},
	} {
		orchestrator.Register(def.renderer, def.priority)
	}

	events := make(chan tcell.Event, 256)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := screen.PollEvent()
			// nil after Fini
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(a.dt)
	defer ticker.Stop()

	var mouse render.MouseTracker
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				orchestrator.Resize(ev.Size())
			case *tcell.EventMouse:
				g, at := mouse.Translate(ev, orchestrator.Viewport())
				a.pointer(g, at)
			case *tcell.EventKey:
				name, exit := keyName(ev)
				if exit {
					return
				}
				a.key(name)
			}

		case <-ticker.C:
			a.tick()
			orchestrator.RenderFrame(render.RenderContext{
				View:     orchestrator.Viewport(),
				Frame:    a.ctx.FrameNumber.Load(),
				IsPaused: a.ctx.Clock.IsPaused(),
				IsMuted:  a.ctx.IsMuted.Load(),
			})
			if a.finished() {
				return
			}
		}
	}
}

// keyName maps a terminal key to a loop key name; exit is set for quit keys
func keyName(ev *tcell.EventKey) (name string, exit bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return "", true
	case tcell.KeyEnter:
		return keyConfirm, false
	case tcell.KeyRight:
		return keyNext, false
	case tcell.KeyLeft:
		return keyPrev, false
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return "", true
		case ' ':
			return keySkip, false
		default:
			return string(ev.Rune()), false
		}
	}
	return "", false
}
