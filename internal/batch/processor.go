package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Job is one deck to process in a batch run
type Job struct {
	Line   int // 1-indexed line in the batch file
	Input  string
	Output string
	// DerivedOutput is set when the line named only the input and Output
	// was computed by OutputFor.
	DerivedOutput bool
}

// ReadBatchFile reads deck jobs from a file.
// Supports formats:
// - Input and output: "deck.pptx = deck_en.pptx"
// - Input only: "deck.pptx" (output is derived with OutputFor and suffix)
// Blank lines and lines starting with '#' are ignored.
func ReadBatchFile(filename, suffix string) ([]Job, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	var jobs []Job
	for i, line := range splitLines(string(content)) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !strings.Contains(line, "=") {
			jobs = append(jobs, Job{
				Line:          i + 1,
				Input:         line,
				Output:        OutputFor(line, suffix),
				DerivedOutput: true,
			})
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		input := strings.TrimSpace(parts[0])
		output := strings.TrimSpace(parts[1])
		if input == "" || output == "" {
			return nil, fmt.Errorf("%s:%d: expected 'input = output', got %q", filename, i+1, line)
		}
		if filepath.Clean(input) == filepath.Clean(output) {
			return nil, fmt.Errorf("%s:%d: output must differ from input %q", filename, i+1, input)
		}

		jobs = append(jobs, Job{Line: i + 1, Input: input, Output: output})
	}

	return jobs, nil
}

// OutputFor derives an output path next to input, e.g. talk.pptx with
// suffix "en" becomes talk_en.pptx.
func OutputFor(input, suffix string) string {
	if suffix == "" {
		suffix = "out"
	}
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + "_" + suffix + ext
}

// splitLines splits a string by newlines, dropping carriage returns
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
