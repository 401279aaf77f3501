package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"letterbox/internal/collector"
	"letterbox/internal/logging"
	"letterbox/internal/puzzle"
	"letterbox/internal/solver"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Output formats for solve
const (
	formatText     = "text"
	formatMarkdown = "markdown"
	formatJSON     = "json"
)

var (
	solveFormat  string
	solveExample int
)

// solveCmd solves one puzzle without the board
var solveCmd = &cobra.Command{
	Use:   "solve [TOP RIGHT BOTTOM LEFT]",
	Short: "Solve a puzzle given as four 3-letter sides",
	Long: `Sends the puzzle to the solving service and prints the solutions.

With no sides the default puzzle is solved, or the one picked by --example.

Example:
  letterbox solve LEI XYS CUV KOT --format markdown`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != puzzle.SideCount {
			return fmt.Errorf("expected %d sides, got %d", puzzle.SideCount, len(args))
		}
		return nil
	},
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().StringVarP(&solveFormat, "format", "f", formatText, "Output format: text, markdown or json")
	solveCmd.Flags().IntVarP(&solveExample, "example", "e", 0, "Solve example puzzle N, counting from 1 (see 'letterbox examples')")
}

func runSolve(cmd *cobra.Command, args []string) error {
	p, err := puzzleFromArgs(args)
	if err != nil {
		return err
	}
	switch solveFormat {
	case formatText, formatMarkdown, formatJSON:
	default:
		return fmt.Errorf("unknown format %q (valid: text, markdown, json)", solveFormat)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := solver.NewClient(cfg.Endpoint(), solver.WithTimeout(cfg.GetTimeout()))
	logger.Info("solving", zap.Stringer("puzzle", p), zap.String("endpoint", client.Endpoint()))

	out := collector.Run(ctx, client, p)
	if out.Phase == collector.ErrorShown {
		return errors.New(out.Message())
	}

	return writeSolutions(cmd.OutOrStdout(), solveFormat, p, out.Solutions, cfg.UI.Separator)
}

func puzzleFromArgs(args []string) (puzzle.Puzzle, error) {
	if len(args) == puzzle.SideCount {
		return puzzle.Parse(args)
	}
	if solveExample != 0 {
		if solveExample < 0 || solveExample > len(puzzle.Examples) {
			return puzzle.Puzzle{}, fmt.Errorf("no example %d (have 1-%d)", solveExample, len(puzzle.Examples))
		}
		return puzzle.Examples[solveExample-1], nil
	}
	return puzzle.Default, nil
}

type solveReport struct {
	Puzzle    []string          `json:"puzzle"`
	Solutions []puzzle.Solution `json:"solutions"`
}

func writeSolutions(w io.Writer, format string, p puzzle.Puzzle, sols []puzzle.Solution, sep string) error {
	switch format {
	case formatJSON:
		if sols == nil {
			sols = []puzzle.Solution{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(solveReport{Puzzle: p.Sides(), Solutions: sols})

	case formatMarkdown:
		timer := logging.StartTimer(logging.CategoryRender, "markdown render")
		defer timer.Stop()

		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
		if err != nil {
			return fmt.Errorf("failed to create renderer: %w", err)
		}
		rendered, err := renderer.Render(solutionsMarkdown(p, sols, sep))
		if err != nil {
			return fmt.Errorf("failed to render solutions: %w", err)
		}
		_, err = io.WriteString(w, rendered)
		return err

	default:
		if len(sols) == 0 {
			_, err := fmt.Fprintln(w, "No solutions returned.")
			return err
		}
		for i, s := range sols {
			if _, err := fmt.Fprintf(w, "%2d. %s  %s\n", i+1, s.Chain(sep), s.ScoreLabel()); err != nil {
				return err
			}
		}
		return nil
	}
}

func solutionsMarkdown(p puzzle.Puzzle, sols []puzzle.Solution, sep string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Solutions for %s\n\n", p)
	if len(sols) == 0 {
		b.WriteString("_No solutions returned._\n")
		return b.String()
	}
	b.WriteString("| # | Words | Score |\n|---|---|---|\n")
	for i, s := range sols {
		fmt.Fprintf(&b, "| %d | %s | %s |\n", i+1, s.Chain(sep), strings.TrimPrefix(s.ScoreLabel(), "Score: "))
	}
	return b.String()
}
