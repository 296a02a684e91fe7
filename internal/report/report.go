// Package report writes solved-batch results to CSV, mirroring the two
// reports the batch CLI mode produces: the full run log and a ranked
// shortlist of the puzzles that exercised the solver hardest.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"

	"hexsolver/internal/solver"
	"hexsolver/internal/source"
)

// Line is one puzzle's outcome within a batch run.
type Line struct {
	Post      source.Post
	IdxInPost int
	LevelName string
	ParseFail bool
	Outcome   solver.Outcome
}

func classify(l Line) string {
	if l.ParseFail {
		return "Err"
	}
	switch l.Outcome.Kind {
	case solver.OutcomeTimeout:
		return "T"
	case solver.OutcomeUnsolvable:
		return "Spe"
	default:
		maxLocal, maxGlobal := solver.DifficultyOfSteps(l.Outcome.Steps)
		switch {
		case maxLocal == nil && maxGlobal == nil:
			return "0"
		case maxLocal != nil && maxGlobal == nil:
			return fmt.Sprintf("%d", *maxLocal)
		case maxLocal != nil && maxGlobal != nil:
			return fmt.Sprintf("%dg%d", *maxLocal, *maxGlobal)
		default:
			return fmt.Sprintf("g%d", *maxGlobal)
		}
	}
}

// cleanupPostName strips the bracketed tags level-pack authors commonly add
// to a title, and truncates anything still too long for a spreadsheet cell.
func cleanupPostName(s string) string {
	replacer := strings.NewReplacer(
		"[level]", "",
		"[Level]", "",
		"[Level Pack]", "",
		"[Level-Pack]", "",
		"[Levle pack]", "",
	)
	s = strings.TrimSpace(replacer.Replace(s))
	if len(s) > 40 {
		s = s[:34] + " [...]"
	}
	return s
}

func row(l Line) []string {
	return []string{
		classify(l),
		fmt.Sprintf("%d", l.Post.Score),
		l.Post.Date,
		l.Post.Author,
		cleanupPostName(l.Post.Title),
		l.LevelName,
		l.Post.URL,
	}
}

// WriteAll writes every line to path, in the order given, with the
// Classif/Upvotes/Date/Author/Post/Title/URL header.
func WriteAll(path string, lines []Line) error {
	return writeCSV(path, []string{"Classif", "Upvotes", "Date", "Author", "Post", "Title", "URL"}, lines)
}

// WriteRanked writes every solved (non-parse-failed, non-timeout,
// non-unsolvable) line to path, sorted hardest-first by local then global
// difficulty, with the Difficulty/Upvotes/Date/Author/Post/Title/URL header.
func WriteRanked(path string, lines []Line) error {
	type ranked struct {
		key  [3]int
		line Line
	}
	var candidates []ranked
	for i, l := range lines {
		if l.ParseFail || l.Outcome.Kind != solver.OutcomeSolved {
			continue
		}
		maxLocal, maxGlobal := solver.DifficultyOfSteps(l.Outcome.Steps)
		var local, global int
		if maxLocal != nil {
			local = -*maxLocal
		}
		if maxGlobal != nil {
			global = -*maxGlobal
		}
		candidates = append(candidates, ranked{key: [3]int{local, global, i}, line: l})
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].key[0] < candidates[j].key[0] ||
			(candidates[i].key[0] == candidates[j].key[0] && candidates[i].key[1] < candidates[j].key[1]) ||
			(candidates[i].key[0] == candidates[j].key[0] && candidates[i].key[1] == candidates[j].key[1] && candidates[i].key[2] < candidates[j].key[2])
	})

	rankedLines := make([]Line, len(candidates))
	for i, c := range candidates {
		rankedLines[i] = c.line
	}
	return writeCSV(path, []string{"Difficulty", "Upvotes", "Date", "Author", "Post", "Title", "URL"}, rankedLines)
}

func writeCSV(path string, header []string, lines []Line) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("report: writing header: %w", err)
	}
	for _, l := range lines {
		if err := w.Write(row(l)); err != nil {
			return fmt.Errorf("report: writing row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("report: flushing %s: %w", path, err)
	}
	return nil
}
