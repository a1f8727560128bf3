// Command grip runs interactive drag, drop and touch scenes described in
// markup, either in a window, in a terminal, or headless from a recorded
// input script.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/grip"
	"github.com/phanxgames/grip/ebitenhost"
	"github.com/phanxgames/grip/termhost"
)

type rootFlags struct {
	configPath string
	debug      bool
}

func (f *rootFlags) load() (grip.Config, error) {
	cfg := grip.DefaultConfig()
	if f.configPath != "" {
		var err error
		if cfg, err = grip.LoadConfigFile(f.configPath); err != nil {
			return grip.Config{}, err
		}
	}
	if f.debug {
		cfg.Debug = true
	}
	return cfg, nil
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:           "grip",
		Short:         "Run drag, drop and touch scenes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "YAML file with behaviour defaults")
	root.PersistentFlags().BoolVar(&flags.debug, "debug", false, "log drag and drop decisions to stderr")

	root.AddCommand(newWindowCmd(flags), newTermCmd(flags), newReplayCmd(flags))
	return root
}

func newWindowCmd(flags *rootFlags) *cobra.Command {
	var width, height int
	var showFPS, watch bool
	cmd := &cobra.Command{
		Use:   "window [markup]",
		Short: "Open the scene in a window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, b, err := sceneFromArgs(flags, args)
			if err != nil {
				return err
			}
			defer b.destroy()
			stop, err := startWatch(watch, s, b, args)
			if err != nil {
				return err
			}
			defer stop()
			return ebitenhost.Run(s, ebitenhost.RunConfig{
				Title:      "grip",
				Width:      width,
				Height:     height,
				ShowFPS:    showFPS,
				ShowEvents: true,
			})
		},
	}
	cmd.Flags().IntVar(&width, "width", 640, "window width")
	cmd.Flags().IntVar(&height, "height", 480, "window height")
	cmd.Flags().BoolVar(&showFPS, "fps", false, "show FPS and TPS")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload the markup file when it changes")
	return cmd
}

func newTermCmd(flags *rootFlags) *cobra.Command {
	var sound, watch bool
	cmd := &cobra.Command{
		Use:   "term [markup]",
		Short: "Run the scene in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, b, err := sceneFromArgs(flags, args)
			if err != nil {
				return err
			}
			defer b.destroy()
			stop, err := startWatch(watch, s, b, args)
			if err != nil {
				return err
			}
			defer stop()
			return termhost.Run(s, termhost.Config{Sound: sound})
		},
	}
	cmd.Flags().BoolVar(&sound, "sound", false, "play a tone on every drop")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload the markup file when it changes")
	return cmd
}

func newReplayCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "replay <markup> <script.json>",
		Short: "Replay an input script headless and print the events",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			markup, err := readMarkup(args[0])
			if err != nil {
				return err
			}
			script, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("read script %s: %w", args[1], err)
			}
			return replay(cmd.OutOrStdout(), cfg, markup, script)
		},
	}
}

// startWatch reloads args[0] into s on change when watch is set. The
// returned stop function is always safe to call.
func startWatch(watch bool, s *grip.Scene, b *binding, args []string) (func(), error) {
	if !watch {
		return func() {}, nil
	}
	if len(args) == 0 {
		return nil, errors.New("--watch needs a markup file")
	}
	w, err := watchMarkup(s, args[0], func(markup string) error {
		return b.reload(s, markup)
	})
	if err != nil {
		return nil, err
	}
	return func() { _ = w.Close() }, nil
}

func sceneFromArgs(flags *rootFlags, args []string) (*grip.Scene, *binding, error) {
	cfg, err := flags.load()
	if err != nil {
		return nil, nil, err
	}
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	markup, err := readMarkup(path)
	if err != nil {
		return nil, nil, err
	}
	return buildScene(cfg, markup)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "grip:", err)
		os.Exit(1)
	}
}
