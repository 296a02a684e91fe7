package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"hexsolver/pkg/config"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, &config.Config{SolveTimeout: 5 * time.Second})
	return r
}

func TestHealthHandler(t *testing.T) {
	r := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func buildRow() string {
	return strings.Repeat("..", 33)
}

func buildDefinition(overrides map[[2]int]string) string {
	var lines []string
	for i := 0; i < 5; i++ {
		lines = append(lines, "header")
	}
	for i := 0; i < 33; i++ {
		row := []byte(buildRow())
		for j := 0; j < 33; j++ {
			if tok, ok := overrides[[2]int{i, j}]; ok {
				copy(row[j*2:j*2+2], tok)
			}
		}
		lines = append(lines, string(row))
	}
	return strings.Join(lines, "\n") + "\n"
}

func TestSolveHandlerRejectsMissingBody(t *testing.T) {
	r := newTestRouter()
	req := httptest.NewRequest(http.MethodPost, "/api/solve", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSolveHandlerRejectsMalformedDefinition(t *testing.T) {
	r := newTestRouter()
	payload, _ := json.Marshal(SolveRequest{Definition: "too short"})
	req := httptest.NewRequest(http.MethodPost, "/api/solve", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSolveHandlerSolvesAnEmptyBoard(t *testing.T) {
	r := newTestRouter()
	payload, _ := json.Marshal(SolveRequest{Definition: buildDefinition(nil)})
	req := httptest.NewRequest(http.MethodPost, "/api/solve", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body["outcome"] != "solved" {
		t.Fatalf("expected a solved empty board, got %v", body)
	}
}

func TestParseHandlerReportsCellCount(t *testing.T) {
	r := newTestRouter()
	payload, _ := json.Marshal(ParseRequest{Definition: buildDefinition(map[[2]int]string{{0, 0}: "X."})})
	req := httptest.NewRequest(http.MethodPost, "/api/parse", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body["valid"] != true {
		t.Fatalf("expected a valid parse, got %v", body)
	}
	if body["cell_count"].(float64) != 1 {
		t.Fatalf("expected 1 cell, got %v", body["cell_count"])
	}
}
