package cli

import "testing"

func TestParseRenderFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to dot", "", []string{"dot"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "dot,svg,png", []string{"dot", "svg", "png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseRenderFormats(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("parseRenderFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("parseRenderFormats(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestRenderBasePath(t *testing.T) {
	tests := []struct {
		name, output, input, want string
	}{
		{"derives from input", "", "model.pdag", "model"},
		{"strips known format extension", "out.svg", "model.pdag", "out"},
		{"keeps unknown extension", "out.tree", "model.pdag", "out.tree"},
		{"stdin input falls back", "", "-", "model"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderBasePath(tt.output, tt.input)
			if got != tt.want {
				t.Errorf("renderBasePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}
