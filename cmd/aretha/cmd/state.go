package cmd

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/go-aretha/aretha/pkg/toggle"
)

func init() {
	RegisterCommand(&Command{
		Name:  "state",
		Short: "Manage saved toggle state",
		Long: `Manage toggle state saved in the state database.

Subcommands:
  list                     Show every saved toggle
  get ID                   Show one toggle
  set ID on|off [RADIUS]   Save a toggle value (radius defaults to the
                           configured radius)
  delete ID                Remove a saved toggle`,
		Usage: "aretha state <list|get|set|delete> [args]",
		Run:   runState,
	})
}

func runState(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("state requires a subcommand (list, get, set, delete)")
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

	sub, rest := args[0], args[1:]
	switch sub {
	case "list":
		entries, err := store.List()
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No saved toggles.")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tVALUE\tRADIUS")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%g\n", e.ID, onOff(e.State.IsOn), e.State.ClipRadius)
		}
		return w.Flush()

	case "get":
		if len(rest) != 1 {
			return fmt.Errorf("usage: aretha state get ID")
		}
		state, ok, err := store.Load(rest[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no saved state for %q", rest[0])
		}
		fmt.Printf("%s: %s (radius %g)\n", rest[0], onOff(state.IsOn), state.ClipRadius)
		return nil

	case "set":
		if len(rest) < 2 || len(rest) > 3 {
			return fmt.Errorf("usage: aretha state set ID on|off [RADIUS]")
		}
		state, err := parseStateArgs(rest[1:], attrs.State.ClipRadius)
		if err != nil {
			return err
		}
		if err := store.Save(rest[0], state); err != nil {
			return err
		}
		fmt.Printf("Saved %s: %s (radius %g)\n", rest[0], onOff(state.IsOn), state.ClipRadius)
		return nil

	case "delete":
		if len(rest) != 1 {
			return fmt.Errorf("usage: aretha state delete ID")
		}
		if err := store.Delete(rest[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", rest[0])
		return nil

	default:
		return fmt.Errorf("unknown state subcommand %q", sub)
	}
}

// parseStateArgs parses "on|off [RADIUS]".
func parseStateArgs(args []string, defaultRadius float64) (toggle.State, error) {
	state := toggle.State{ClipRadius: defaultRadius}
	switch args[0] {
	case "on", "true", "1":
		state.IsOn = true
	case "off", "false", "0":
		state.IsOn = false
	default:
		return toggle.State{}, fmt.Errorf("invalid toggle value %q (want on or off)", args[0])
	}
	if len(args) > 1 {
		r, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return toggle.State{}, fmt.Errorf("invalid radius %q: %w", args[1], err)
		}
		state.ClipRadius = toggle.ClampRadius(r)
	}
	return state, nil
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
