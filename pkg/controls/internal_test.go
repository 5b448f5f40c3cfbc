package controls

import (
	"testing"

	"github.com/go-drift/skin/pkg/geometry"
)

func TestSameItem(t *testing.T) {
	type pair struct{ A, B int }
	type tagged struct {
		Tags []string
	}
	p := &pair{1, 2}
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"nil nil", nil, nil, true},
		{"nil value", nil, "a", false},
		{"equal strings", "a", "a", true},
		{"different types", 1, "1", false},
		{"equal structs", pair{1, 2}, pair{1, 2}, true},
		{"same pointer", p, p, true},
		{"distinct pointers", p, &pair{1, 2}, false},
		{"uncomparable deep equal", tagged{[]string{"x"}}, tagged{[]string{"x"}}, true},
		{"uncomparable different", tagged{[]string{"x"}}, tagged{[]string{"y"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sameItem(tt.a, tt.b); got != tt.want {
				t.Errorf("sameItem(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestChrome(t *testing.T) {
	got := chrome(geometry.Thickness{Left: 1, Top: 2, Right: 3, Bottom: 4}, 1, 2)
	want := geometry.Thickness{Left: 4, Top: 6, Right: 8, Bottom: 10}
	if got != want {
		t.Errorf("chrome = %+v, want %+v", got, want)
	}
}

func TestRegenerateIsNotReentrant(t *testing.T) {
	ic := NewItemsControl()
	ic.state = GenerationRunning
	if ic.Regenerate() {
		t.Error("Regenerate must refuse to run while running")
	}
	if ic.state != GenerationRunning {
		t.Errorf("state changed to %v", ic.state)
	}
}
