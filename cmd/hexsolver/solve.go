package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"hexsolver/internal/hexcoord"
	"hexsolver/internal/puzzle"
	"hexsolver/internal/solver"
	"hexsolver/pkg/constants"
)

var solveTimeout time.Duration

func init() {
	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve a single puzzle read from stdin",
		Long: `Reads a 38-line hexcells level definition from stdin and runs the
deductive solver against it, printing each step's difficulty tier and the
cells it resolved.`,
		RunE: runSolve,
	}
	solveCmd.Flags().DurationVar(&solveTimeout, "timeout", 24*time.Hour, "maximum time to spend searching before giving up")
	rootCmd.AddCommand(solveCmd)
}

func readDefinition(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 256), 1024)
	var lines []string
	for i := 0; i < constants.TotalInputLines; i++ {
		if !scanner.Scan() {
			return "", fmt.Errorf("hexsolver: expected %d lines, got %d", constants.TotalInputLines, len(lines))
		}
		lines = append(lines, scanner.Text())
	}
	return strings.Join(lines, "\n") + "\n", nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	input, err := readDefinition(os.Stdin)
	if err != nil {
		return err
	}

	defn, err := puzzle.ParseDefn(input)
	if err != nil {
		return fmt.Errorf("hexsolver: %w", err)
	}

	env := solver.NewEnv(solveTimeout)
	outcome := solver.Solve(env, defn)
	printOutcome(defn, outcome)
	return nil
}

func printOutcome(defn puzzle.Defn, outcome solver.Outcome) {
	fmt.Println(outcome)

	switch outcome.Kind {
	case solver.OutcomeTimeout:
		color.New(color.FgRed).Println("timed out before a conclusion was reached")
		return
	case solver.OutcomeUnsolvable:
		color.New(color.FgYellow).Println("stuck: this puzzle needs rules this solver doesn't model")
		return
	}

	for i, step := range outcome.Steps {
		tierColor := color.New(color.FgGreen)
		if step.Difficulty.Kind == solver.DifficultyGlobal {
			tierColor = color.New(color.FgMagenta)
		}
		tierColor.Printf("step %d: %s\n", i+1, step.Difficulty)

		for _, coord := range step.Cells.Items() {
			printLearnedCell(defn, coord)
		}
	}
}

func printLearnedCell(defn puzzle.Defn, coord hexcoord.Coords) {
	label := "unknown"
	printer := color.New(color.FgWhite)
	if cell, ok := defn.Get(coord); ok {
		if cellColor, ok := puzzle.ColorOf(cell); ok {
			if cellColor == puzzle.Blue {
				label = "blue"
				printer = color.New(color.FgBlue)
			} else {
				label = "black"
				printer = color.New(color.FgHiBlack)
			}
		}
	}
	printer.Printf("  %s -> %s\n", coord, label)
}
