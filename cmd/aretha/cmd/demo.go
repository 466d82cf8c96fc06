package cmd

import (
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/go-aretha/aretha/pkg/animation"
	"github.com/go-aretha/aretha/pkg/gestures"
	"github.com/go-aretha/aretha/pkg/graphics"
	"github.com/go-aretha/aretha/pkg/widgets"
)

// Terminal cells are mapped to toggle units so that the touch slop and
// durations from aretha.yaml keep their usual meaning.
const (
	cellWidth   = 10.0
	cellHeight  = 20.0
	trackCols   = 30
	trackRows   = 3
	handleCols  = 6
	demoStateID = "demo"
)

func init() {
	RegisterCommand(&Command{
		Name:  "demo",
		Short: "Run an interactive toggle in the terminal",
		Long: `Run an interactive toggle in the terminal.

Drag the handle with the mouse, click it to flip the value, or press
space to toggle with animation. Press q or Escape to quit. The value is
restored from and saved to the state database under the given id.`,
		Usage: "aretha demo [--id ID]",
		Run:   runDemo,
	})
}

type demoOptions struct {
	id string
}

func parseDemoArgs(args []string) (demoOptions, error) {
	opts := demoOptions{id: demoStateID}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--id":
			if i+1 >= len(args) || args[i+1] == "" {
				return opts, fmt.Errorf("--id requires a value")
			}
			opts.id = args[i+1]
			i++
		default:
			return opts, fmt.Errorf("unknown demo flag %q", args[i])
		}
	}
	return opts, nil
}

// demoParent records host requests for the status line.
type demoParent struct {
	interceptDisallowed bool
	invalidations       int
}

func (p *demoParent) RequestDisallowInterceptTouchEvent(disallow bool) {
	p.interceptDisallowed = disallow
}

func (p *demoParent) Invalidate() {
	p.invalidations++
}

func runDemo(args []string) error {
	opts, err := parseDemoArgs(args)
	if err != nil {
		return err
	}
	attrs, err := resolveAttributes()
	if err != nil {
		return err
	}
	store, err := openStore(attrs)
	if err != nil {
		return err
	}
	defer store.Close()

	parent := &demoParent{}
	view := widgets.NewToggleView(parent, attrs)
	defer view.Dispose()
	if saved, ok, err := store.Load(opts.id); err != nil {
		return err
	} else if ok {
		view.RestoreState(saved)
	}

	rest := graphics.Size{Width: (trackCols - handleCols) * cellWidth, Height: trackRows * cellHeight}
	view.SetHandle(graphics.Size{Width: handleCols * cellWidth, Height: trackRows * cellHeight})
	view.SetOffView(rest)
	view.SetOnView(rest)
	view.Layout(graphics.Size{Width: trackCols * cellWidth, Height: trackRows * cellHeight})

	app := tview.NewApplication()
	status := tview.NewTextView().SetDynamicColors(true)
	box := tview.NewBox()
	var originX, originY int
	var pointerID int64
	var last graphics.Offset
	down := false

	box.SetDrawFunc(func(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
		originX, originY = x+2, y+1
		drawToggle(screen, view, originX, originY)
		return x, y, width, height
	})

	box.SetMouseCapture(func(action tview.MouseAction, event *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
		mx, my := event.Position()
		pos := graphics.Offset{
			X: (float64(mx-originX) + 0.5) * cellWidth,
			Y: (float64(my-originY) + 0.5) * cellHeight,
		}
		var phase gestures.PointerPhase
		switch action {
		case tview.MouseLeftDown:
			if !view.HitTest(pos) {
				return action, event
			}
			pointerID++
			last = pos
			down = true
			phase = gestures.PointerPhaseDown
		case tview.MouseMove:
			if !down {
				return action, event
			}
			phase = gestures.PointerPhaseMove
		case tview.MouseLeftUp:
			if !down {
				return action, event
			}
			down = false
			phase = gestures.PointerPhaseUp
		default:
			return action, event
		}
		view.HandlePointer(gestures.PointerEvent{
			PointerID: pointerID,
			Position:  pos,
			Delta:     graphics.Offset{X: pos.X - last.X, Y: pos.Y - last.Y},
			Phase:     phase,
		})
		last = pos
		return tview.MouseConsumed, nil
	})

	updateStatus := func() {
		c := view.Controller()
		status.SetText(fmt.Sprintf(
			"[::b]%s[::-]  value: %s  phase: %s  offset: %.1f  radius: %g  intercept: %t\n[gray]drag or click the handle, space toggles, q quits",
			opts.id, onOff(c.IsOn()), c.Phase(), c.ScrollOffset(), c.ClipRadius(), parent.interceptDisallowed))
	}
	updateStatus()
	view.OnChanged(func(bool) { updateStatus() })

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(box, trackRows+2, 0, true).
		AddItem(status, 2, 0, false).
		AddItem(tview.NewBox(), 0, 1, false)
	flex.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch {
		case event.Key() == tcell.KeyEscape, event.Rune() == 'q':
			app.Stop()
			return nil
		case event.Rune() == ' ':
			view.Toggle()
			updateStatus()
			return nil
		}
		return event
	})

	done := make(chan struct{})
	go func() {
		frames := time.NewTicker(16 * time.Millisecond)
		defer frames.Stop()
		for {
			select {
			case <-done:
				return
			case <-frames.C:
				if animation.HasActiveTickers() {
					app.QueueUpdateDraw(func() {
						animation.StepTickers()
						updateStatus()
					})
				}
			}
		}
	}()

	err = app.SetRoot(flex, true).EnableMouse(true).Run()
	close(done)
	if err != nil {
		return err
	}
	return store.Save(opts.id, view.SaveState())
}

// drawToggle paints view with its top-left cell at (x, y).
func drawToggle(screen tcell.Screen, view *widgets.ToggleView, x, y int) {
	trackStyle := tcell.StyleDefault.Background(toCellColor(view.TrackColor())).Foreground(tcell.ColorWhite)
	thumbStyle := tcell.StyleDefault.Background(toCellColor(view.ThumbColor)).Foreground(tcell.ColorBlack)
	handle, hasHandle := view.ChildFrame(widgets.RoleHandle)

	for row := 0; row < trackRows; row++ {
		for col := 0; col < trackCols; col++ {
			center := graphics.Offset{
				X: (float64(col) + 0.5) * cellWidth,
				Y: (float64(row) + 0.5) * cellHeight,
			}
			style := trackStyle
			if hasHandle && handle.Contains(center) {
				style = thumbStyle
			}
			screen.SetContent(x+col, y+row, ' ', nil, style)
		}
	}

	drawLabel(screen, view, widgets.RoleOn, "ON", trackStyle, x, y)
	drawLabel(screen, view, widgets.RoleOff, "OFF", trackStyle, x, y)
}

// drawLabel centers text in the visible part of the child for role.
func drawLabel(screen tcell.Screen, view *widgets.ToggleView, role widgets.ChildRole, text string, style tcell.Style, x, y int) {
	frame, ok := view.ChildFrame(role)
	if !ok {
		return
	}
	visible := graphics.Rect{
		Left:   math.Max(frame.Left, 0),
		Top:    frame.Top,
		Right:  math.Min(frame.Right, trackCols*cellWidth),
		Bottom: frame.Bottom,
	}
	if visible.Width() < float64(len(text))*cellWidth {
		return
	}
	center := visible.Center()
	col := int(center.X/cellWidth) - len(text)/2
	row := int(center.Y / cellHeight)
	for i, r := range text {
		screen.SetContent(x+col+i, y+row, r, nil, style)
	}
}

func toCellColor(c graphics.Color) tcell.Color {
	r, g, b := c.RGB8()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
