package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"nerdle/internal/game"
	"nerdle/internal/hint"
	"nerdle/internal/history"
	"nerdle/internal/storage"
)

func listCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every stored game of the device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			games, closeFn, err := opts.open()
			if err != nil {
				return err
			}
			defer closeFn()

			all, err := games.LoadAll(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(all) == 0 {
				fmt.Fprintf(out, "No games stored for device %s\n", opts.Device)
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSOLUTION\tSTATE\tTRIES")
			for _, g := range all {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d/%d\n", g.ID, strings.ToUpper(g.Solution), stateLabel(g.State), g.Tries(), game.MaxTries)
			}
			return w.Flush()
		},
	}
}

func showCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print the board of one game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGame(cmd, opts, args[0])
			if err != nil {
				return err
			}
			printBoard(cmd.OutOrStdout(), g)
			return nil
		},
	}
}

func statsCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print the statistics of the device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			games, closeFn, err := opts.open()
			if err != nil {
				return err
			}
			defer closeFn()

			all, err := games.LoadAll(cmd.Context())
			if err != nil {
				return err
			}
			printStats(cmd.OutOrStdout(), history.Compute(all))
			return nil
		},
	}
}

func shareCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "share <id>",
		Short: "Print the share text of a finished game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGame(cmd, opts, args[0])
			if err != nil {
				return err
			}
			if !g.State.Terminal() {
				return fmt.Errorf("game %d is still running", g.ID)
			}
			fmt.Fprint(cmd.OutOrStdout(), g.ShareText(opts.Name))
			return nil
		},
	}
}

func loadGame(cmd *cobra.Command, opts *Options, arg string) (game.Game, error) {
	id, err := parseID(arg)
	if err != nil {
		return game.Game{}, err
	}
	games, closeFn, err := opts.open()
	if err != nil {
		return game.Game{}, err
	}
	defer closeFn()

	g, err := games.Load(cmd.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		return game.Game{}, fmt.Errorf("game %d not found for device %s", id, opts.Device)
	}
	return g, err
}

var hintColors = map[hint.Hint]*color.Color{
	hint.Correct:   color.New(color.BgGreen, color.FgHiWhite, color.Bold),
	hint.Misplaced: color.New(color.BgYellow, color.FgBlack, color.Bold),
	hint.Incorrect: color.New(color.BgHiBlack, color.FgHiWhite),
}

func stateLabel(s game.State) string {
	switch s {
	case game.Win:
		return color.New(color.FgGreen).Sprint(s)
	case game.Loss:
		return color.New(color.FgRed).Sprint(s)
	default:
		return color.New(color.FgYellow).Sprint(s)
	}
}

func printBoard(out io.Writer, g game.Game) {
	fmt.Fprintf(out, "Game %d [%s] %d/%d\n\n", g.ID, stateLabel(g.State), g.Tries(), game.MaxTries)
	for _, guess := range g.Guesses {
		hints := guess.Hints(g.Solution)
		for i, letter := range guess.Letters() {
			tile := " " + strings.ToUpper(letter) + " "
			if i < len(hints) {
				tile = hintColors[hints[i]].Sprint(tile)
			}
			fmt.Fprint(out, tile)
		}
		fmt.Fprintln(out)
	}
	if g.Current != "" && !g.State.Terminal() {
		fmt.Fprintf(out, "typing: %s\n", strings.ToUpper(string(g.Current)))
	}
	if g.State.Terminal() {
		fmt.Fprintf(out, "\nsolution: %s\n", strings.ToUpper(g.Solution))
	}
}

func printStats(out io.Writer, s history.Stats) {
	fmt.Fprintf(out, "Played:         %d\n", s.Played)
	fmt.Fprintf(out, "Win %%:          %d\n", s.WinPercentage)
	fmt.Fprintf(out, "Current streak: %d\n", s.Streak)
	fmt.Fprintf(out, "Max streak:     %d\n", s.MaxStreak)
	fmt.Fprintln(out, "\nGuess distribution:")
	bar := color.New(color.FgGreen)
	for _, b := range s.Bars() {
		fmt.Fprintf(out, "  %d %s %d\n", b.Tries, bar.Sprint(strings.Repeat("#", b.Percent/5+1)), b.Count)
	}
}
