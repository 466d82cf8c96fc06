package cmd

import (
	"fmt"
	"io"
	"os"
	"sync"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-aretha/aretha/pkg/animation"
	"github.com/go-aretha/aretha/pkg/config"
	"github.com/go-aretha/aretha/pkg/gestures"
	"github.com/go-aretha/aretha/pkg/graphics"
	"github.com/go-aretha/aretha/pkg/widgets"
)

// frameInterval is the simulated time between animation frames.
const frameInterval = 16 * time.Millisecond

func init() {
	RegisterCommand(&Command{
		Name:  "simulate",
		Short: "Replay a gesture script",
		Long: `Replay a YAML gesture script against a toggle and print the handle
trajectory.

The script lays out a toggle and feeds it pointer events, programmatic
changes, and simulated frame time:

  track: {width: 300, height: 40}
  handle: {width: 60, height: 40}
  steps:
    - {pointer: down, x: 30, y: 20}
    - {pointer: move, x: 230, y: 20}
    - {pointer: up, x: 230, y: 20}
    - {wait: 250ms}
    - {set: true, animate: true}
    - {wait: 250ms}
    - {toggle: true}

Toggle attributes come from aretha.yaml in the configuration directory.`,
		Usage: "aretha simulate SCRIPT.yaml",
		Run:   runSimulate,
	})
}

// Script is a recorded sequence of toggle inputs.
type Script struct {
	Track  ScriptSize   `yaml:"track"`
	Handle ScriptSize   `yaml:"handle"`
	Steps  []ScriptStep `yaml:"steps"`
}

// ScriptSize is a width/height pair.
type ScriptSize struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ScriptStep is one input. Exactly one of Pointer, Wait, Set or Toggle is
// expected per step.
type ScriptStep struct {
	Pointer string  `yaml:"pointer,omitempty"`
	X       float64 `yaml:"x,omitempty"`
	Y       float64 `yaml:"y,omitempty"`
	Wait    string  `yaml:"wait,omitempty"`
	Set     *bool   `yaml:"set,omitempty"`
	Animate bool    `yaml:"animate,omitempty"`
	Toggle  bool    `yaml:"toggle,omitempty"`
}

// Sample is the toggle state observed after a step or frame.
type Sample struct {
	Elapsed time.Duration
	Label   string
	Phase   string
	Offset  float64
	IsOn    bool
}

// ParseScript decodes and validates a gesture script.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	if s.Track.Width <= 0 || s.Track.Height <= 0 {
		return nil, fmt.Errorf("track size must be positive")
	}
	if s.Handle.Width <= 0 || s.Handle.Height <= 0 {
		return nil, fmt.Errorf("handle size must be positive")
	}
	for i, step := range s.Steps {
		kinds := 0
		if step.Pointer != "" {
			if _, err := gestures.ParsePointerPhase(step.Pointer); err != nil {
				return nil, fmt.Errorf("step %d: %w", i+1, err)
			}
			kinds++
		}
		if step.Wait != "" {
			d, err := time.ParseDuration(step.Wait)
			if err != nil {
				return nil, fmt.Errorf("step %d: %w", i+1, err)
			}
			if d < 0 {
				return nil, fmt.Errorf("step %d: wait must not be negative", i+1)
			}
			kinds++
		}
		if step.Set != nil {
			kinds++
		}
		if step.Toggle {
			kinds++
		}
		if kinds != 1 {
			return nil, fmt.Errorf("step %d: expected exactly one of pointer, wait, set, toggle", i+1)
		}
	}
	return &s, nil
}

// stepClock is an animation.Clock advanced by the simulation.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stepClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Simulate runs script against a toggle built from attrs and returns one
// sample per step plus one per simulated frame. It replaces the animation
// clock for the duration of the run.
func Simulate(script *Script, attrs config.Attributes) []Sample {
	clock := &stepClock{now: time.Unix(0, 0)}
	prev := animation.SetClock(clock)
	defer animation.SetClock(prev)

	view := widgets.NewToggleView(nil, attrs)
	defer view.Dispose()
	rest := graphics.Size{
		Width:  script.Track.Width - script.Handle.Width,
		Height: script.Track.Height,
	}
	view.SetHandle(graphics.Size{Width: script.Handle.Width, Height: script.Handle.Height})
	view.SetOffView(rest)
	view.SetOnView(rest)
	view.Layout(graphics.Size{Width: script.Track.Width, Height: script.Track.Height})

	start := clock.Now()
	var samples []Sample
	record := func(label string) {
		c := view.Controller()
		samples = append(samples, Sample{
			Elapsed: clock.Now().Sub(start),
			Label:   label,
			Phase:   c.Phase().String(),
			Offset:  c.ScrollOffset(),
			IsOn:    c.IsOn(),
		})
	}

	record("initial")
	var pointerID int64
	var last graphics.Offset
	for _, step := range script.Steps {
		switch {
		case step.Pointer != "":
			phase, _ := gestures.ParsePointerPhase(step.Pointer)
			pos := graphics.Offset{X: step.X, Y: step.Y}
			if phase == gestures.PointerPhaseDown {
				pointerID++
				last = pos
			}
			view.HandlePointer(gestures.PointerEvent{
				PointerID: pointerID,
				Position:  pos,
				Delta:     graphics.Offset{X: pos.X - last.X, Y: pos.Y - last.Y},
				Phase:     phase,
			})
			last = pos
			record(fmt.Sprintf("%s (%g, %g)", phase, step.X, step.Y))
		case step.Wait != "":
			d, _ := time.ParseDuration(step.Wait)
			for waited := time.Duration(0); waited < d; waited += frameInterval {
				clock.advance(frameInterval)
				animation.StepTickers()
				record("frame")
			}
		case step.Set != nil:
			view.SetToggle(*step.Set, step.Animate)
			record(fmt.Sprintf("set %s animate=%t", onOff(*step.Set), step.Animate))
		case step.Toggle:
			view.Toggle()
			record("toggle")
		}
	}
	return samples
}

// WriteSamples prints samples as an aligned table.
func WriteSamples(out io.Writer, samples []Sample) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tEVENT\tPHASE\tOFFSET\tVALUE")
	for _, s := range samples {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\t%s\n", s.Elapsed, s.Label, s.Phase, s.Offset, onOff(s.IsOn))
	}
	return w.Flush()
}

func runSimulate(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: aretha simulate SCRIPT.yaml")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}
	script, err := ParseScript(data)
	if err != nil {
		return err
	}
	attrs, err := resolveAttributes()
	if err != nil {
		return err
	}
	return WriteSamples(os.Stdout, Simulate(script, attrs))
}
