package system

import (
	"log"
)

// Narrator reveals scene text progressively
type Narrator interface {
	Reveal(text string)
	SkipToEnd()
	IsTyping() bool
}

// Curtain covers the scene between attempts
type Curtain interface {
	Close()
	Open()
	InTransit() bool
}

// Fader fades the whole view in and out
type Fader interface {
	FadeIn()
	FadeOut()
	InTransit() bool
}

// Visibility reports whether an item is available in the current scene
type Visibility func(name string) bool

// Paginator switches the palette page
type Paginator interface {
	SwitchTo(index int, visible Visibility)
	Restore(visible Visibility)
	Current() int
}

// SceneLoader leaves the story for another top-level scene
type SceneLoader interface {
	LoadScene(name string)
}

// Collaborators are the presentation handles the scene controller drives
// Nil fields are replaced with inert implementations
type Collaborators struct {
	Narrator  Narrator
	Curtain   Curtain
	Fader     Fader
	Paginator Paginator
	Loader    SceneLoader
}

type nopNarrator struct{}

func (nopNarrator) Reveal(string) {}
func (nopNarrator) SkipToEnd()    {}
func (nopNarrator) IsTyping() bool {
	return false
}

type nopTransition struct{}

func (nopTransition) Close()          {}
func (nopTransition) Open()           {}
func (nopTransition) FadeIn()         {}
func (nopTransition) FadeOut()        {}
func (nopTransition) InTransit() bool { return false }

type nopLoader struct {
	log *log.Logger
}

func (l nopLoader) LoadScene(name string) {
	l.log.Printf("[scene] no loader, %q not loaded", name)
}

// withDefaults fills missing collaborators and logs each substitution
func (c Collaborators) withDefaults(logger *log.Logger) Collaborators {
	if c.Narrator == nil {
		logger.Printf("[config] no narrator, text is not shown")
		c.Narrator = nopNarrator{}
	}
	if c.Curtain == nil {
		logger.Printf("[config] no curtain, transitions are instant")
		c.Curtain = nopTransition{}
	}
	if c.Fader == nil {
		logger.Printf("[config] no fader")
		c.Fader = nopTransition{}
	}
	if c.Loader == nil {
		logger.Printf("[config] no scene loader")
		c.Loader = nopLoader{log: logger}
	}
	return c
}
