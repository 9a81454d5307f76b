package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/gridpress/pkg/errors"
	"github.com/matzehuels/gridpress/pkg/pipeline"
)

func TestPlural(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 pages"},
		{1, "1 page"},
		{12, "12 pages"},
	}
	for _, tt := range tests {
		if got := plural(tt.n, "page"); got != tt.want {
			t.Errorf("plural(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestStatsLine(t *testing.T) {
	line := statsLine(2, 41, true)
	for _, want := range []string{"2 pages", "41 clues", iconCached} {
		if !strings.Contains(line, want) {
			t.Errorf("statsLine() = %q, missing %q", line, want)
		}
	}
	if line := statsLine(1, 0, false); !strings.Contains(line, iconFresh) || strings.Contains(line, "clue") {
		t.Errorf("statsLine(1, 0, false) = %q", line)
	}
}

func TestFileResultLine(t *testing.T) {
	ok := fileResultLine(pipeline.FileResult{Name: "mon.ipuz", Pages: 3, Duration: 42 * time.Millisecond})
	if !strings.Contains(ok, "mon.ipuz") || !strings.Contains(ok, "3 pages") || !strings.Contains(ok, iconSuccess) {
		t.Errorf("ok line = %q", ok)
	}

	failed := fileResultLine(pipeline.FileResult{
		Name: "tue.ipuz",
		Err:  errors.Malformed("row 2 is not an array"),
	})
	if !strings.Contains(failed, iconError) || !strings.Contains(failed, "row 2 is not an array") {
		t.Errorf("failed line = %q", failed)
	}
	if strings.Contains(failed, "MALFORMED_PUZZLE") {
		t.Errorf("failed line leaks the error code: %q", failed)
	}
}

func TestSummaryTable(t *testing.T) {
	out := summaryTable(&pipeline.Report{Total: 5, Succeeded: 4, Failed: 1, Duration: 1500 * time.Millisecond})
	for _, want := range []string{"Total", "Succeeded", "Failed", "5", "4", "1.5s"} {
		if !strings.Contains(out, want) {
			t.Errorf("summaryTable() missing %q:\n%s", want, out)
		}
	}
}
