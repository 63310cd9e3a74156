package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })
	return &buf
}

func TestRunStatsString(t *testing.T) {
	tests := []struct {
		name  string
		stats runStats
		want  []string
		skip  []string
	}{
		{
			name:  "fresh",
			stats: runStats{connectors: 2, regionsWanted: 2, regionsFound: 2, elapsed: 12 * time.Millisecond},
			want:  []string{"2 connectors", "2/2 regions", "12ms", "fresh"},
			skip:  []string{"cached"},
		},
		{
			name:  "cached single",
			stats: runStats{connectors: 1, cached: true},
			want:  []string{"1 connector ", "cached"},
			skip:  []string{"regions", "fresh"},
		},
		{
			name:  "missing regions",
			stats: runStats{connectors: 3, regionsWanted: 4, regionsFound: 3},
			want:  []string{"3/4 regions"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.stats.String() + " "
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("String() = %q, missing %q", got, w)
				}
			}
			for _, s := range tt.skip {
				if strings.Contains(got, s) {
					t.Errorf("String() = %q, should not contain %q", got, s)
				}
			}
		})
	}
}

func TestPrintConnectors(t *testing.T) {
	_, laid := loadFlow(t)
	out := captureStdout(t)

	printConnectors(laid)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("printed %d lines, want 2:\n%s", len(lines), out)
	}
	for _, want := range []string{"a-b", "#a", "right", "left", "#b"} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("line %q missing %q", lines[0], want)
		}
	}
	if !strings.Contains(lines[1], "50, 80") {
		t.Errorf("point target not shown in %q", lines[1])
	}
}

func TestPlural(t *testing.T) {
	if got := plural(1, "region"); got != "1 region" {
		t.Errorf("plural(1) = %q", got)
	}
	if got := plural(0, "region"); got != "0 regions" {
		t.Errorf("plural(0) = %q", got)
	}
}
