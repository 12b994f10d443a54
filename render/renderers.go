package render

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/once-upon-a-lever/component"
	"github.com/lixenwraith/once-upon-a-lever/constant"
	"github.com/lixenwraith/once-upon-a-lever/narrative"
	"github.com/lixenwraith/once-upon-a-lever/system"
	"github.com/lixenwraith/once-upon-a-lever/vmath"
)

const (
	itemLabelWidth   = 6
	figureLabelWidth = 10
	leverLength      = 1.0
)

// label draws s centered on scene point p
func label(buf *RenderBuffer, view Viewport, p vmath.Vec2, s string, fg RGB, bold bool) {
	x, y := view.WorldToCell(p)
	x -= runewidth.StringWidth(s) / 2
	for _, r := range s {
		buf.SetFgOnly(x, y, r, fg, bold)
		x += max(runewidth.RuneWidth(r), 1)
	}
}

// ===== STAGE =====

// StageRenderer draws the floor, drop slots, levers, rope and page arrows
type StageRenderer struct {
	game *system.Game
}

func NewStageRenderer(game *system.Game) *StageRenderer {
	return &StageRenderer{game: game}
}

func (r *StageRenderer) Render(ctx RenderContext, buf *RenderBuffer) {
	view := ctx.View
	for y := view.OriginY; y < view.OriginY+StageHeight; y++ {
		for x := view.OriginX; x < view.OriginX+StageWidth; x++ {
			buf.SetBgOnly(x, y, RGBStage)
		}
	}

	for _, it := range r.game.Roster.All() {
		if it.Page == r.game.Pages.Current() {
			label(buf, view, it.Rest, "·", RGBSlot, false)
		}
	}

	for _, g := range r.game.Gates.All() {
		label(buf, view, g.Slot, "[    ]", RGBSlotGate, false)

		// 0° points up, GateMaxAngle points down
		theta := -g.Angle * math.Pi / 180
		handle := vmath.V2Add(g.Pivot, vmath.V2(leverLength*math.Sin(theta), leverLength*math.Cos(theta)))
		color := RGBLever
		if g.Activated {
			color = RGBLeverActive
		}
		if !g.Enabled() {
			color = color.Scale(0.6)
		}
		label(buf, view, g.Pivot, "o", color, false)
		label(buf, view, handle, "◆", color, true)
	}

	tr := r.game.Trigger
	ax, ay := view.WorldToCell(tr.Anchor)
	_, hy := view.WorldToCell(tr.Handle())
	for y := ay; y < hy; y++ {
		buf.SetFgOnly(ax, y, '│', RGBRope, false)
	}
	rope := RGBRope
	if !tr.Enabled() {
		rope = rope.Scale(0.6)
	}
	buf.SetFgOnly(ax, hy, '●', rope, true)

	pages := r.game.Pages
	if pages.Count() > 1 {
		arrow := RGBArrow
		if !r.game.Ctx.InputEnabled() {
			arrow = RGBArrowOff
		}
		label(buf, view, pages.PrevArrow, "◀", arrow, true)
		label(buf, view, pages.NextArrow, "▶", arrow, true)
	}
}

// ===== FIGURES =====

// FigureRenderer draws story figures brought on stage, by draw order
type FigureRenderer struct {
	game    *system.Game
	figures []*component.Item
}

func NewFigureRenderer(game *system.Game) *FigureRenderer {
	return &FigureRenderer{game: game}
}

func (r *FigureRenderer) Render(ctx RenderContext, buf *RenderBuffer) {
	r.figures = r.figures[:0]
	for _, it := range r.game.Roster.All() {
		if s := it.Secondary; s != nil && (s.Displaced() || s.InTransit()) {
			r.figures = append(r.figures, it)
		}
	}
	sort.SliceStable(r.figures, func(i, j int) bool {
		return r.figures[i].Secondary.Order < r.figures[j].Secondary.Order
	})
	for _, it := range r.figures {
		s := it.Secondary
		name := runewidth.Truncate(strings.ToUpper(it.Name), figureLabelWidth, "…")
		if s.Mirrored {
			name = "◂" + name
		} else {
			name += "▸"
		}
		label(buf, ctx.View, s.Pos, name, RGBFigure, true)
	}
}

// ===== ITEMS =====

// ItemRenderer draws active palette items, held ones on top
type ItemRenderer struct {
	game  *system.Game
	items []*component.Item
}

func NewItemRenderer(game *system.Game) *ItemRenderer {
	return &ItemRenderer{game: game}
}

func (r *ItemRenderer) Render(ctx RenderContext, buf *RenderBuffer) {
	r.items = r.items[:0]
	for _, it := range r.game.Roster.All() {
		if it.Active() {
			r.items = append(r.items, it)
		}
	}
	sort.SliceStable(r.items, func(i, j int) bool {
		return r.items[i].Order < r.items[j].Order
	})
	for _, it := range r.items {
		color := RGBItem
		switch it.State() {
		case component.ItemDragging:
			color = RGBItemHeld
		case component.ItemLocked:
			color = RGBItemLocked
		}
		name := runewidth.Truncate(it.Name, itemLabelWidth, "…")
		label(buf, ctx.View, it.Pos, "["+name+"]", color, it.Dragging())
	}
}

// ===== CURTAIN =====

// CurtainRenderer fills the stage outside the two curtain edges
type CurtainRenderer struct {
	curtains *narrative.CurtainPair
}

func NewCurtainRenderer(c *narrative.CurtainPair) *CurtainRenderer {
	return &CurtainRenderer{curtains: c}
}

func (r *CurtainRenderer) Render(ctx RenderContext, buf *RenderBuffer) {
	view := ctx.View
	left, _ := view.WorldToCell(vmath.V2(r.curtains.LeftX, 0))
	right, _ := view.WorldToCell(vmath.V2(r.curtains.RightX, 0))
	for y := view.OriginY; y < view.OriginY+StageHeight; y++ {
		for x := view.OriginX; x < view.OriginX+StageWidth; x++ {
			if x > left && x < right {
				continue
			}
			fold := RGBCurtain
			if x%3 == 0 {
				fold = RGBCurtainFold
			}
			buf.Set(x, y, ' ', RGBText, fold, BlendReplace, 1)
		}
	}
}

// ===== NARRATION =====

// NarrationRenderer draws the typewriter's revealed text below the stage
type NarrationRenderer struct {
	tw *narrative.Typewriter
}

func NewNarrationRenderer(tw *narrative.Typewriter) *NarrationRenderer {
	return &NarrationRenderer{tw: tw}
}

func (r *NarrationRenderer) Render(ctx RenderContext, buf *RenderBuffer) {
	view := ctx.View
	lines := Wrap(r.tw.Visible(), StageWidth-2)
	if len(lines) > constant.TextRows {
		lines = lines[len(lines)-constant.TextRows:]
	}
	for i, line := range lines {
		buf.Text(view.OriginX+1, view.TextTop()+i, line, RGBText)
	}
}

// Wrap splits text into lines no wider than width cells, breaking at spaces
func Wrap(text string, width int) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		line, lineWidth := "", 0
		for _, word := range strings.Fields(para) {
			w := runewidth.StringWidth(word)
			switch {
			case lineWidth == 0:
				line, lineWidth = word, w
			case lineWidth+1+w <= width:
				line += " " + word
				lineWidth += 1 + w
			default:
				lines = append(lines, line)
				line, lineWidth = word, w
			}
		}
		lines = append(lines, line)
	}
	return lines
}

// ===== STATUS =====

// StatusBarRenderer draws scene, phase, page and pull counters on the last row
type StatusBarRenderer struct {
	game *system.Game
}

func NewStatusBarRenderer(game *system.Game) *StatusBarRenderer {
	return &StatusBarRenderer{game: game}
}

func (r *StatusBarRenderer) Render(ctx RenderContext, buf *RenderBuffer) {
	view := ctx.View
	row := view.StatusRow()
	bg := RGBStatusBg
	if ctx.IsPaused {
		bg = RGBPausedBg
	}
	for x := 0; x < view.ScreenWidth; x++ {
		buf.Set(x, row, ' ', RGBStatusText, bg, BlendReplace, 1)
	}

	sc := r.game.Scene
	text := fmt.Sprintf(" scene %d/%d  %s  page %s  pulls %d",
		min(sc.SceneIndex()+1, r.game.Catalog.Len()), r.game.Catalog.Len(),
		sc.Phase(), r.game.Pages.Name(), sc.Pulls())
	if ctx.IsPaused {
		text += "  PAUSED"
	}
	if ctx.IsMuted {
		text += "  muted"
	}
	buf.Text(0, row, text, RGBStatusText)
}

// ===== FADE =====

// FadeRenderer darkens the whole frame by the fader's alpha
type FadeRenderer struct {
	fader *narrative.Fader
}

func NewFadeRenderer(f *narrative.Fader) *FadeRenderer {
	return &FadeRenderer{fader: f}
}

func (r *FadeRenderer) IsVisible() bool {
	return r.fader.Alpha > 0
}

func (r *FadeRenderer) Render(_ RenderContext, buf *RenderBuffer) {
	buf.Darken(r.fader.Alpha)
}
