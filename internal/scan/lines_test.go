package scan

import (
	"strings"
	"testing"
)

type logicalLine struct {
	text string
	line int
}

func scanAll(t *testing.T, input string, opts LineOptions) []logicalLine {
	t.Helper()
	s := NewLineScanner(strings.NewReader(input), opts)
	var out []logicalLine
	for s.Scan() {
		out = append(out, logicalLine{s.Text(), s.Line()})
	}
	if err := s.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	return out
}

func TestLineScannerNoContinuation(t *testing.T) {
	got := scanAll(t, "one\ntwo\n\nthree", LineOptions{Comment: "#"})
	want := []logicalLine{{"one", 1}, {"two", 2}, {"", 3}, {"three", 4}}
	if len(got) != len(want) {
		t.Fatalf("expected %d lines, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: got %+v want %+v", i, got[i], want[i])
		}
	}
}

func TestLineScannerJoins(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  LineOptions
		want  []logicalLine
	}{
		{
			name:  "backslash join with space",
			input: "servers example.com \\\n    backup.example.com\nport 80\n",
			opts:  LineOptions{Comment: "#", Continuation: "\\", JoinSep: " "},
			want: []logicalLine{
				{"servers example.com backup.example.com", 2},
				{"port 80", 3},
			},
		},
		{
			name:  "custom marker join without separator",
			input: "key: part1+\npart2\n",
			opts:  LineOptions{Comment: "#", Continuation: "+", JoinSep: ""},
			want:  []logicalLine{{"key: part1part2", 2}},
		},
		{
			name:  "three-line chain reports the last physical line",
			input: "a \\\nb \\\nc\n",
			opts:  LineOptions{Comment: "#", Continuation: "\\", JoinSep: " "},
			want:  []logicalLine{{"a b c", 3}},
		},
		{
			name:  "comment lines never join",
			input: "# trailing backslash \\\nnext\n",
			opts:  LineOptions{Comment: "#", Continuation: "\\", JoinSep: " "},
			want:  []logicalLine{{"# trailing backslash \\", 1}, {"next", 2}},
		},
		{
			name:  "dangling continuation flushes at end of input",
			input: "a \\\nb \\",
			opts:  LineOptions{Comment: "#", Continuation: "\\", JoinSep: " "},
			want:  []logicalLine{{"a b", 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scanAll(t, tt.input, tt.opts)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d lines, got %d (%v)", len(tt.want), len(got), got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("line %d: got %+v want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestIsBlank(t *testing.T) {
	if !IsBlank("   \t ") {
		t.Error("whitespace-only line should be blank")
	}
	if IsBlank(" x ") {
		t.Error("line with content should not be blank")
	}
}
