// Package http exposes the solver over a small Gin-based HTTP surface.
package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hexsolver/internal/puzzle"
	"hexsolver/internal/solver"
	"hexsolver/pkg/config"
	"hexsolver/pkg/constants"
)

var cfg *config.Config

// RegisterRoutes wires the solver's HTTP surface onto r.
func RegisterRoutes(r *gin.Engine, c *config.Config) {
	cfg = c

	r.GET("/health", healthHandler)

	api := r.Group("/api")
	{
		api.POST("/solve", solveHandler)
		api.POST("/parse", parseHandler)
	}
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": constants.APIVersion,
	})
}

// SolveRequest carries the raw 38-line puzzle text the same format accepted
// on stdin by the CLI's solve subcommand.
type SolveRequest struct {
	Definition string `json:"definition" binding:"required"`
}

// stepView is the JSON-friendly rendering of one solver.Findings.
type stepView struct {
	Difficulty string   `json:"difficulty"`
	Cells      []string `json:"cells"`
}

func findingsToView(steps []solver.Findings) []stepView {
	views := make([]stepView, 0, len(steps))
	for _, f := range steps {
		cells := make([]string, 0, f.Cells.Len())
		for _, c := range f.Cells.Items() {
			cells = append(cells, c.String())
		}
		views = append(views, stepView{Difficulty: f.Difficulty.String(), Cells: cells})
	}
	return views
}

func solveHandler(c *gin.Context) {
	var req SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	defn, err := puzzle.ParseDefn(req.Definition)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timeout := constants.DefaultSolveTimeout
	if cfg != nil {
		timeout = cfg.SolveTimeout
	}
	env := solver.NewEnv(timeout)

	outcome := solver.Solve(env, defn)

	maxLocal, maxGlobal := solver.DifficultyOfSteps(outcome.Steps)
	c.JSON(http.StatusOK, gin.H{
		"outcome":         outcomeKindString(outcome.Kind),
		"steps":           findingsToView(outcome.Steps),
		"max_local_tier":  maxLocal,
		"max_global_tier": maxGlobal,
		"step_count":      len(outcome.Steps),
	})
}

func outcomeKindString(kind solver.OutcomeKind) string {
	switch kind {
	case solver.OutcomeUnsolvable:
		return constants.OutcomeUnsolvable
	case solver.OutcomeTimeout:
		return constants.OutcomeTimeout
	default:
		return constants.OutcomeSolved
	}
}

// ParseRequest carries raw puzzle text to validate without solving it.
type ParseRequest struct {
	Definition string `json:"definition" binding:"required"`
}

func parseHandler(c *gin.Context) {
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	defn, err := puzzle.ParseDefn(req.Definition)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":      true,
		"cell_count": defn.Len(),
		"scope_size": defn.Scope().Len(),
	})
}

// TodayUTC returns today's UTC date string in constants.DateFormat.
func TodayUTC() string {
	return time.Now().UTC().Format(constants.DateFormat)
}
