package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// TestRenderGeneration renders every testdata page and compares the HTML
// with its expected output.
func TestRenderGeneration(t *testing.T) {
	testDataDir := "testdata"

	pageFiles, err := filepath.Glob(filepath.Join(testDataDir, "*.page.html"))
	if err != nil {
		t.Fatalf("Error finding page files: %v", err)
	}
	if len(pageFiles) == 0 {
		t.Fatalf("No page files found in %s", testDataDir)
	}

	for _, pageFile := range pageFiles {
		baseName := strings.TrimSuffix(filepath.Base(pageFile), ".page.html")
		t.Run(baseName, func(t *testing.T) {
			expectedFile := filepath.Join(testDataDir, baseName+".expected.html")

			generated, err := runCLI(t, "render", pageFile)
			if err != nil {
				t.Fatalf("Error rendering %s: %v", baseName, err)
			}

			expectedBytes, err := os.ReadFile(expectedFile)
			if err != nil {
				if os.IsNotExist(err) {
					t.Logf("Expected HTML file %s not found. Creating it.", expectedFile)
					if writeErr := os.WriteFile(expectedFile, []byte(generated), 0644); writeErr != nil {
						t.Errorf("Failed to write new expected HTML %s: %v", expectedFile, writeErr)
					}
					return
				}
				t.Fatalf("Error reading expected HTML file %s: %v", expectedFile, err)
			}

			normalizedGenerated := strings.ReplaceAll(generated, "\r\n", "\n")
			normalizedExpected := strings.ReplaceAll(string(expectedBytes), "\r\n", "\n")

			if normalizedGenerated != normalizedExpected {
				diff := findFirstDifference(normalizedExpected, normalizedGenerated)
				t.Errorf("Generated HTML for %s does not match %s.\nFirst difference near character %d:\nEXPECTED:\n...%s...\nGOT:\n...%s...",
					baseName, expectedFile, diff.Index, diff.ExpectedContext, diff.GotContext)
				failedFile := filepath.Join(testDataDir, baseName+".failed.html")
				os.WriteFile(failedFile, []byte(generated), 0644)
				t.Logf("Wrote differing output to %s", failedFile)
			}
		})
	}
}

func TestFormatCommand(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"format", "1536", "--code", "bytes"}, "1.5 KB\n"},
		{[]string{"format", "R$ 12,50", "--code", "brl"}, "R$\u00a012,50\n"},
		{[]string{"format", "0", "--code", "bytes"}, "0 Bytes\n"},
		{[]string{"format", "2024-03-05", "--date", "dd/mm/yyyy"}, "05/03/2024\n"},
		{[]string{"format", "2024-03-05T10:00:00Z", "--date", "MM/DD/YYYY"}, "03/05/2024\n"},
		{[]string{"format", "05/03/2024", "--date", ""}, "05/03/2024\n"},
	}
	for _, tt := range tests {
		got, err := runCLI(t, tt.args...)
		if err != nil || got != tt.want {
			t.Errorf("%v = %q, %v; want %q", tt.args, got, err, tt.want)
		}
	}
}

func TestFormatCommandRejectsBadDate(t *testing.T) {
	if _, err := runCLI(t, "format", "amanhã", "--date", "yyyy-mm-dd"); err == nil {
		t.Errorf("formatting a non-date with --date should fail")
	}
}

func TestProbeCommand(t *testing.T) {
	page := filepath.Join("testdata", "overview.page.html")

	got, err := runCLI(t, "probe", page, "revenue", "70", "200")
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if want := "Jan: R$\u00a01.200,50 (tooltip at 85, 215)\n"; got != want {
		t.Errorf("probe = %q, want %q", got, want)
	}

	got, err = runCLI(t, "probe", page, "revenue", "5", "5")
	if err != nil || got != "no match\n" {
		t.Errorf("probe in the margin = %q, %v", got, err)
	}

	if _, err := runCLI(t, "probe", page, "missing", "1", "1"); err == nil {
		t.Errorf("probing an unknown widget should fail")
	}
}

func TestFramesCommand(t *testing.T) {
	dir := t.TempDir()
	page := filepath.Join("testdata", "overview.page.html")
	got, err := runCLI(t, "frames", page, "--widget", "cpu", "--fps", "10", "--out", dir)
	if err != nil {
		t.Fatalf("frames: %v", err)
	}
	files, _ := filepath.Glob(filepath.Join(dir, "cpu-*.svg"))
	if len(files) < 2 {
		t.Fatalf("wrote %d frames, want several", len(files))
	}
	if !strings.HasPrefix(got, "Wrote ") {
		t.Errorf("output = %q", got)
	}
	last, err := os.ReadFile(files[len(files)-1])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(last), ">62%</text>") {
		t.Errorf("settled frame should carry the gauge value label")
	}
}

func TestInspectCommand(t *testing.T) {
	got, err := runCLI(t, "inspect", filepath.Join("testdata", "overview.page.html"))
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	for _, want := range []string{"revenue", "channels", "passthrough", "1.5 KB", "Loja"} {
		if !strings.Contains(got, want) {
			t.Errorf("inspect output lacks %q:\n%s", want, got)
		}
	}
}

// diffResult shows context around the first difference.
type diffResult struct {
	Index           int
	ExpectedContext string
	GotContext      string
}

func findFirstDifference(expected, got string) diffResult {
	limit := min(len(expected), len(got))
	idx := -1
	for i := 0; i < limit; i++ {
		if expected[i] != got[i] {
			idx = i
			break
		}
	}
	if idx == -1 && len(expected) != len(got) {
		idx = limit
	}
	if idx == -1 {
		return diffResult{ExpectedContext: "(identical)", GotContext: "(identical)"}
	}

	const contextSize = 20
	start := max(idx-contextSize, 0)
	return diffResult{
		Index:           idx,
		ExpectedContext: expected[start:min(idx+contextSize, len(expected))],
		GotContext:      got[start:min(idx+contextSize, len(got))],
	}
}
