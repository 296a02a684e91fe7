// Package solver runs the reveal/narrow/garbage-collect loop that turns a
// parsed board into a sequence of deductions, escalating through three
// difficulty tiers when a cheaper search comes up empty.
package solver

import (
	"fmt"

	"hexsolver/internal/hexcoord"
	"hexsolver/internal/puzzle"
)

// DifficultyKind distinguishes a tier-1 or tier-2 (Local) finding, whose
// difficulty is 1 for a single constraint or else the size of the
// constraint group that had to be merged, from a
// tier-3 (Global) finding, whose difficulty is the number of visible
// constraints folded together.
type DifficultyKind int

const (
	DifficultyLocal DifficultyKind = iota
	DifficultyGlobal
)

// Difficulty records how hard one step of deduction was.
type Difficulty struct {
	Kind  DifficultyKind
	Value int
}

func (d Difficulty) String() string {
	switch d.Kind {
	case DifficultyGlobal:
		return fmt.Sprintf("global(%d)", d.Value)
	default:
		return fmt.Sprintf("local(%d)", d.Value)
	}
}

// Findings is one step of the solve: the difficulty it took, and the
// cells whose color was learned.
type Findings struct {
	Difficulty Difficulty
	Cells      hexcoord.CoordSet
}

// OutcomeKind classifies how a solve attempt ended.
type OutcomeKind int

const (
	OutcomeSolved OutcomeKind = iota
	OutcomeUnsolvable
	OutcomeTimeout
)

// Outcome is the result of a full solve(): either every cell was worked
// out (with the step-by-step history in Steps), the puzzle needs rules
// this solver doesn't model (Unsolvable), or the timeout fired first.
type Outcome struct {
	Kind  OutcomeKind
	Steps []Findings
}

// DifficultyOfSteps returns the hardest local and hardest global
// difficulty reached across every step, if any.
func DifficultyOfSteps(steps []Findings) (maxLocal, maxGlobal *int) {
	for _, f := range steps {
		v := f.Difficulty.Value
		switch f.Difficulty.Kind {
		case DifficultyGlobal:
			if maxGlobal == nil || v > *maxGlobal {
				maxGlobal = &v
			}
		default:
			if maxLocal == nil || v > *maxLocal {
				maxLocal = &v
			}
		}
	}
	return
}

func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeUnsolvable:
		return "requires additional rules"
	case OutcomeTimeout:
		return "timeout"
	default:
		maxLocal, maxGlobal := DifficultyOfSteps(o.Steps)
		localStr := "none"
		if maxLocal != nil {
			localStr = fmt.Sprintf("%d", *maxLocal)
		}
		globalStr := "none"
		if maxGlobal != nil {
			globalStr = fmt.Sprintf("%d", *maxGlobal)
		}
		return fmt.Sprintf("solved steps:%d max-local-difficulty:%s max-global-difficulty:%s", len(o.Steps), localStr, globalStr)
	}
}

// Solve runs the deduction loop to completion, escalating through the
// three difficulty tiers whenever a cheaper search finds nothing: trivial
// per-constraint invariants, then compound neighbourhood merges, then the
// whole-board global fold. It returns Outcome{Kind: OutcomeTimeout} if env
// runs out of time during a tier-2 or tier-3 search.
func Solve(env *Env, defn puzzle.Defn) Outcome {
	progress := ProgressOfDefn(defn)
	constraints := ConstraintsOfDefn(defn)
	var history []Findings

	for {
		visibleCells := progress.Blacks.Union(progress.Blues)

		constraints.Reveal(visibleCells)
		constraints.Narrow(visibleCells, progress)
		constraints.GC()

		if progress.IsSolved() {
			if !constraints.IsSolved() {
				panic("solver: progress solved but constraints remain")
			}
			break
		}

		invariants := constraints.TrivialInvariants()
		difficulty := Difficulty{Kind: DifficultyLocal, Value: 1}

		if len(invariants) == 0 {
			env.ResetTimer()
			var err error
			invariants, difficulty, err = constraints.CompoundInvariants(env)
			if err != nil {
				return Outcome{Kind: OutcomeTimeout}
			}
		}

		if len(invariants) == 0 {
			difficulty = Difficulty{Kind: DifficultyGlobal, Value: len(constraints.Visible)}
			var err error
			invariants, err = constraints.GlobalInvariants(env)
			if err != nil {
				return Outcome{Kind: OutcomeTimeout}
			}
			if len(invariants) == 0 {
				return Outcome{Kind: OutcomeUnsolvable}
			}
		}

		cells := make([]hexcoord.Coords, 0, len(invariants))
		for c := range invariants {
			cells = append(cells, c)
		}
		history = append(history, Findings{Difficulty: difficulty, Cells: hexcoord.NewCoordSet(cells...)})

		progress = progress.Update(invariants)
	}
	return Outcome{Kind: OutcomeSolved, Steps: history}
}
