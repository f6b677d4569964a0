// Package testutil provides shared test infrastructure for the planner.
// It consolidates golden scenario types and assertion helpers used across
// sim/, sim/risk/ and sim/planner/ test packages.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/golden_scenarios.json.
type GoldenDataset struct {
	Scenarios []GoldenScenario `json:"scenarios"`
}

// GoldenScenario is one hand-checked sequencing + simulation case.
type GoldenScenario struct {
	Name       string             `json:"name"`
	Today      string             `json:"today"`
	Horizon    int                `json:"horizon"`
	Capacities map[string]float64 `json:"capacities"`
	Orders     []GoldenOrder      `json:"orders"`
	Expected   GoldenExpected     `json:"expected"`
}

// GoldenOrder is the JSON form of an order in a golden scenario.
type GoldenOrder struct {
	Code        string   `json:"code"`
	ProductType string   `json:"product_type"`
	Thickness   int      `json:"thickness"`
	Quantity    int      `json:"quantity"`
	Area        float64  `json:"m2"`
	Route       []string `json:"route"`
	Priority    string   `json:"priority"`
	DueDate     string   `json:"due_date"`
}

// GoldenExpected holds the expected outcome of a golden scenario.
type GoldenExpected struct {
	// Sequence is the exact processing order of the tiered sequencer.
	Sequence []string `json:"sequence"`
	// FinishDays maps order code -> simulated finish day.
	FinishDays map[string]float64 `json:"finish_days"`
	// StationArea maps station -> total load area within the horizon.
	StationArea map[string]float64 `json:"station_area"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "golden_scenarios.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
