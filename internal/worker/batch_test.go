package worker

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/credlens/credlens/internal/model"
)

// MockAnalyzer implements the Analyzer interface
type MockAnalyzer struct {
	ShouldError bool
}

func (m *MockAnalyzer) Analyze(ctx context.Context, req model.AnalysisRequest) (*model.AnalysisReport, error) {
	time.Sleep(10 * time.Millisecond) // Simulate work
	if m.ShouldError {
		return nil, errors.New("analysis error")
	}
	return &model.AnalysisReport{
		AnalysisID:       "test-id",
		CredibilityScore: 50,
		Reasoning:        "Evidence is mixed. Additional verification is recommended.",
	}, nil
}

func TestBatchProcessor_ProcessInputs(t *testing.T) {
	analyzer := &MockAnalyzer{}
	processor := NewBatchProcessor(analyzer, 2)

	inputs := []string{"http://example.com", "https://google.com", "some claim text"}
	ctx := context.Background()

	results := processor.ProcessInputs(ctx, inputs)

	if len(results) != 3 {
		t.Errorf("expected 3 results, got %d", len(results))
	}

	for _, res := range results {
		if res.Error != nil {
			t.Errorf("unexpected error for %s: %v", res.Input, res.Error)
			continue
		}
		if res.Report == nil {
			t.Error("expected report for successful analysis")
		}
	}
}

func TestBatchProcessor_ProcessInputs_Error(t *testing.T) {
	analyzer := &MockAnalyzer{ShouldError: true}
	processor := NewBatchProcessor(analyzer, 2)

	results := processor.ProcessInputs(context.Background(), []string{"http://example.com"})

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Error == nil {
		t.Error("expected error, got nil")
	}
	if results[0].Report != nil {
		t.Error("expected nil report on error")
	}
}

func TestBatchProcessor_ProcessInputs_Empty(t *testing.T) {
	processor := NewBatchProcessor(&MockAnalyzer{}, 2)

	results := processor.ProcessInputs(context.Background(), []string{})
	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestRequestFromInput(t *testing.T) {
	tests := []struct {
		input   string
		wantURL bool
	}{
		{"http://example.com/article", true},
		{"https://example.com", true},
		{"vaccines cause autism", false},
		{"httpserver design notes", false},
	}

	for _, tt := range tests {
		req := RequestFromInput(tt.input)
		if tt.wantURL && (req.URL != tt.input || req.Text != "") {
			t.Errorf("expected URL request for %q, got %+v", tt.input, req)
		}
		if !tt.wantURL && (req.Text != tt.input || req.URL != "") {
			t.Errorf("expected text request for %q, got %+v", tt.input, req)
		}
	}
}

func TestReadInputsFromFile(t *testing.T) {
	content := `http://example.com
# comment
https://google.com

the earth is flat   `

	tmpfile, err := os.CreateTemp("", "inputs")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Remove(tmpfile.Name()) }()

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	inputs, err := ReadInputsFromFile(tmpfile.Name())
	if err != nil {
		t.Fatalf("ReadInputsFromFile failed: %v", err)
	}

	expected := []string{"http://example.com", "https://google.com", "the earth is flat"}
	if len(inputs) != len(expected) {
		t.Fatalf("expected %d inputs, got %d", len(expected), len(inputs))
	}
	for i, input := range inputs {
		if input != expected[i] {
			t.Errorf("expected input %q at index %d, got %q", expected[i], i, input)
		}
	}
}

func TestReadInputsFromFile_NonExistent(t *testing.T) {
	_, err := ReadInputsFromFile("non_existent_file.txt")
	if err == nil {
		t.Error("expected error for non-existent file, got nil")
	}
}

func TestReadInputsFromFile_Deduplication(t *testing.T) {
	content := "http://example.com\nhttp://example.com\n"

	tmpfile, err := os.CreateTemp("", "inputs_dedup")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Remove(tmpfile.Name()) }()

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	inputs, err := ReadInputsFromFile(tmpfile.Name())
	if err != nil {
		t.Fatalf("ReadInputsFromFile failed: %v", err)
	}
	if len(inputs) != 1 {
		t.Errorf("expected 1 input after deduplication, got %d", len(inputs))
	}
}

func TestBatchProcessor_ProcessFile(t *testing.T) {
	content := "http://example.com\nhttps://google.com\n# comment\n\nsome claim\n"

	tmpfile, err := os.CreateTemp("", "batch_inputs")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Remove(tmpfile.Name()) }()

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	processor := NewBatchProcessor(&MockAnalyzer{}, 2)

	results, err := processor.ProcessFile(context.Background(), tmpfile.Name())
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("expected 3 results, got %d", len(results))
	}
}

func TestBatchProcessor_ProcessFile_NonExistent(t *testing.T) {
	processor := NewBatchProcessor(&MockAnalyzer{}, 2)

	_, err := processor.ProcessFile(context.Background(), "no_such_file.txt")
	if err == nil {
		t.Error("expected error for non-existent file, got nil")
	}
}

func TestAnalyzeResult_GetError(t *testing.T) {
	r1 := &AnalyzeResult{Input: "http://example.com"}
	if r1.GetError() != nil {
		t.Errorf("expected nil error, got %v", r1.GetError())
	}

	expected := errors.New("analysis failed")
	r2 := &AnalyzeResult{Input: "http://example.com", Error: expected}
	if r2.GetError() != expected {
		t.Errorf("expected %v, got %v", expected, r2.GetError())
	}
}
