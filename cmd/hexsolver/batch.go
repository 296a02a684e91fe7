package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"hexsolver/internal/cache"
	"hexsolver/internal/puzzle"
	"hexsolver/internal/report"
	"hexsolver/internal/solver"
	"hexsolver/internal/source"
	"hexsolver/pkg/constants"
)

var (
	batchCatalog       string
	batchCacheDir      string
	batchAllPath       string
	batchRankedPath    string
	batchPuzzleTimeout time.Duration
)

func init() {
	batchCmd := &cobra.Command{
		Use:   "batch",
		Short: "Solve every puzzle referenced by a catalog of posts",
		Long: `Reads a JSON catalog of posts, fetches (through a disk cache) every
embedded level definition each post links to, solves each one, and writes two
CSV reports: the full run log and a difficulty-ranked shortlist.`,
		RunE: runBatch,
	}
	batchCmd.Flags().StringVar(&batchCatalog, "catalog", "./reddit_posts.json", "path to the JSON post catalog")
	batchCmd.Flags().StringVar(&batchCacheDir, "cache-dir", constants.DefaultCacheDir, "directory used to cache fetched pages and solve outcomes")
	batchCmd.Flags().StringVar(&batchAllPath, "all-report", "puzzles_all.csv", "path for the full run-log CSV")
	batchCmd.Flags().StringVar(&batchRankedPath, "ranked-report", "puzzles_ranked.csv", "path for the difficulty-ranked CSV")
	batchCmd.Flags().DurationVar(&batchPuzzleTimeout, "timeout", 20*time.Minute, "maximum time to spend per puzzle")
	rootCmd.AddCommand(batchCmd)
}

func levelName(strdefn string) string {
	lines := strings.SplitN(strdefn, "\n", 3)
	if len(lines) < 2 {
		return ""
	}
	return strings.TrimSpace(strings.ReplaceAll(lines[1], "&#39;", "'"))
}

func runBatch(cmd *cobra.Command, args []string) error {
	posts, err := source.ListLevels(batchCatalog)
	if err != nil {
		return err
	}

	pageCache, err := cache.New(batchCacheDir + "/pages")
	if err != nil {
		return err
	}
	solveCache, err := cache.New(batchCacheDir + "/outcomes")
	if err != nil {
		return err
	}

	env := solver.NewEnv(batchPuzzleTimeout)
	var lines []report.Line

	for _, post := range posts {
		color.New(color.FgCyan).Printf("> %s (%s)\n", post.Title, post.URL)

		strdefns, err := source.StrDefnsOfPost(pageCache, post)
		if err != nil {
			color.New(color.FgRed).Printf("  skipping post, fetch failed: %v\n", err)
			continue
		}
		fmt.Printf("  %d puzzle(s)\n", len(strdefns))

		for idx, strdefn := range strdefns {
			name := levelName(strdefn)
			defn, err := puzzle.ParseDefn(strdefn)
			if err != nil {
				fmt.Printf("  skip: %v\n", err)
				lines = append(lines, report.Line{Post: post, IdxInPost: idx, LevelName: name, ParseFail: true})
				continue
			}

			trimmed := strings.TrimSpace(strdefn)
			outcome, err := cache.WithCache(solveCache, trimmed, func() (solver.Outcome, error) {
				return solver.Solve(env, defn), nil
			})
			if err != nil {
				return err
			}

			fmt.Printf("  outcome: %s\n", outcome)
			lines = append(lines, report.Line{Post: post, IdxInPost: idx, LevelName: name, Outcome: outcome})
		}
	}

	if err := report.WriteRanked(batchRankedPath, lines); err != nil {
		return err
	}
	if err := report.WriteAll(batchAllPath, lines); err != nil {
		return err
	}
	return nil
}
