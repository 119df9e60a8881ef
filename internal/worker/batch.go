package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/credlens/credlens/internal/model"
)

// Analyzer runs one credibility analysis
type Analyzer interface {
	Analyze(ctx context.Context, req model.AnalysisRequest) (*model.AnalysisReport, error)
}

// AnalyzeJob is one batch input: a URL or a free-text claim
type AnalyzeJob struct {
	Input    string
	Analyzer Analyzer
}

// Execute runs the analysis for this job
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	report, err := j.Analyzer.Analyze(ctx, RequestFromInput(j.Input))
	return &AnalyzeResult{
		Input:  j.Input,
		Report: report,
		Error:  err,
	}
}

// AnalyzeResult is the outcome of one batch input
type AnalyzeResult struct {
	Input  string
	Report *model.AnalysisReport
	Error  error
}

// GetError returns the error from the analysis, if any
func (r *AnalyzeResult) GetError() error {
	return r.Error
}

// RequestFromInput maps a batch input line to an analysis request: lines
// starting with an HTTP scheme are treated as URLs, anything else as text.
func RequestFromInput(input string) model.AnalysisRequest {
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		return model.AnalysisRequest{URL: input}
	}
	return model.AnalysisRequest{Text: input}
}

// BatchProcessor analyzes multiple inputs concurrently
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(analyzer Analyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
	}
}

// ProcessInputs analyzes all inputs using the worker pool
func (b *BatchProcessor) ProcessInputs(ctx context.Context, inputs []string) []*AnalyzeResult {
	if len(inputs) == 0 {
		return []*AnalyzeResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, input := range inputs {
		pool.Submit(&AnalyzeJob{
			Input:    input,
			Analyzer: b.analyzer,
		})
	}

	results := pool.Wait()

	analyzeResults := make([]*AnalyzeResult, len(results))
	for i, result := range results {
		analyzeResults[i] = result.(*AnalyzeResult)
	}

	return analyzeResults
}

// ProcessFile reads inputs from a file and analyzes them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*AnalyzeResult, error) {
	inputs, err := ReadInputsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read inputs: %w", err)
	}

	return b.ProcessInputs(ctx, inputs), nil
}

// ReadInputsFromFile reads batch inputs from a file, one per line.
// Empty lines and #-comments are skipped; duplicates are dropped.
func ReadInputsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var inputs []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			inputs = append(inputs, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return inputs, nil
}
