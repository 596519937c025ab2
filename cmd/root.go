package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/they4kman/minefield/director/constraint"
	"github.com/they4kman/minefield/game"
)

var gameConfig = game.NewGameConfig()
var useDirector = false
var snapshotPath string
var dumpSnapshots = false
var verbose = false

var rootCmd = &cobra.Command{
	Use:   "minefield",
	Short: "Play Minesweeper in the terminal",
	Long: `minefield is a terminal Minesweeper game.

Run with no arguments to play an intermediate board
	minefield

Pick one of the four board sizes
	minefield --preset expert

Use the director flag to make the computer play for you
	minefield --auto
`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		setupLogging()

		if snapshotPath != "" {
			snapshot, err := readSnapshot(snapshotPath)
			if err != nil {
				return err
			}
			gameConfig.Snapshot = snapshot
		}

		if useDirector {
			gameConfig.Director = &constraint.Director{}
		}

		s, err := newSession(gameConfig, cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		s.dumpSnapshots = dumpSnapshots

		return s.run()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func setupLogging() {
	logLevel := logrus.WarnLevel
	if verbose {
		logLevel = logrus.DebugLevel
	}
	game.Log.SetLevel(logLevel)
	game.Log.SetOutput(os.Stderr)
	game.Log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
}

func readSnapshot(path string) (*game.BoardSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading snapshot")
	}
	return game.LoadSnapshot(string(data))
}

type presetValue int

var _ pflag.Value = (*presetValue)(nil)

func newPresetValue(val int, p *int) *presetValue {
	*p = val
	return (*presetValue)(p)
}

func (presetVal *presetValue) String() string {
	if preset, err := game.PresetAt(int(*presetVal)); err == nil {
		return preset.Name
	}
	return fmt.Sprint(int(*presetVal))
}

func (presetVal *presetValue) Set(value string) error {
	index, err := game.ParsePreset(value)
	if err != nil {
		return err
	}
	*presetVal = presetValue(index)
	return nil
}

func (presetVal *presetValue) Type() string {
	return "preset"
}

func presetUsage() string {
	var b strings.Builder
	b.WriteString("Board size, by name or index:")
	for i, preset := range game.Presets {
		fmt.Fprintf(&b, "\n%d %s: %dx%d, %d mines", i, preset.Name, preset.Size, preset.Size, preset.NumMines)
	}
	return b.String()
}

func init() {
	rootCmd.Flags().VarP(newPresetValue(game.DefaultPresetIndex, &gameConfig.PresetIndex), "preset", "p", presetUsage())
	rootCmd.Flags().Int64VarP(&gameConfig.Seed, "seed", "s", 0, "Seed for mine placement (0 picks one from the clock)")
	rootCmd.Flags().BoolVarP(&useDirector, "auto", "a", false, "Make the computer play")
	rootCmd.Flags().StringVar(&snapshotPath, "snapshot", "", "YAML board snapshot to start from")
	rootCmd.Flags().BoolVar(&gameConfig.LoadSnapshotFresh, "fresh", true, "Hide and unflag every cell of the loaded snapshot")
	rootCmd.Flags().BoolVar(&dumpSnapshots, "dump", false, "Print a YAML snapshot of the board when a game ends")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log game events to stderr")
}
