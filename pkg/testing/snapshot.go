package testing

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/skin/pkg/core"
)

// UpdateEnv names the environment variable that rewrites golden files
// instead of comparing against them.
const UpdateEnv = "SKIN_UPDATE_SNAPSHOTS"

// TestingT is the part of *testing.T that MatchesFile uses.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot is the laid-out element tree plus the display list of the last
// frame, in a form that diffs well as YAML.
type Snapshot struct {
	Tree       *ElementNode `yaml:"tree"`
	DisplayOps []DisplayOp  `yaml:"ops,omitempty"`
}

// ElementNode is one element of a Snapshot. ID is the type name and its
// pre-order index among elements of that type.
type ElementNode struct {
	ID         string         `yaml:"id"`
	Type       string         `yaml:"type"`
	Name       string         `yaml:"name,omitempty"`
	Bounds     [4]float64     `yaml:"bounds,flow"`
	Flags      []string       `yaml:"flags,flow,omitempty"`
	Properties map[string]any `yaml:"props,omitempty"`
	Children   []*ElementNode `yaml:"children,omitempty"`
}

// snapshotProps lists the bag properties recorded for each element type.
var snapshotProps = map[string][]string{
	"TextBlock":    {"Text"},
	"StackPanel":   {"Orientation", "Spacing"},
	"WrapPanel":    {"Orientation", "ItemWidth", "ItemHeight"},
	"ListViewItem": {"IsSelected"},
	"TreeViewItem": {"IsExpanded", "IsSelected"},
	"Image":        {"Source"},
}

// CaptureSnapshot records the current tree and the last frame.
func (t *ScreenTester) CaptureSnapshot() *Snapshot {
	root := t.Root()
	if root == nil {
		return &Snapshot{}
	}
	seen := map[string]int{}
	return &Snapshot{
		Tree:       snapshotNode(root, seen),
		DisplayOps: serializeDisplayList(t.last),
	}
}

func snapshotNode(el core.Element, seen map[string]int) *ElementNode {
	typ := reflect.TypeOf(el)
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	name := typ.Name()
	f := el.Framework()
	b := f.Bounds()

	n := &ElementNode{
		ID:     fmt.Sprintf("%s#%d", name, seen[name]),
		Type:   name,
		Name:   f.Name.Get(),
		Bounds: [4]float64{round2(b.X), round2(b.Y), round2(b.Width), round2(b.Height)},
	}
	seen[name]++

	for _, flag := range []struct {
		on   bool
		name string
	}{
		{!f.IsVisible(), "hidden"},
		{f.HasFocus(), "focused"},
		{f.NeedsLayout(), "dirty"},
	} {
		if flag.on {
			n.Flags = append(n.Flags, flag.name)
		}
	}

	for _, prop := range snapshotProps[name] {
		v, ok := f.Bag().Get(prop)
		if !ok {
			continue
		}
		if s := scalar(v); s != nil {
			if n.Properties == nil {
				n.Properties = map[string]any{}
			}
			n.Properties[prop] = s
		}
	}

	el.VisitChildren(func(c core.Element) bool {
		n.Children = append(n.Children, snapshotNode(c, seen))
		return true
	})
	return n
}

// scalar reduces v to a YAML scalar, or nil when it has none.
func scalar(v any) any {
	if v == nil {
		return nil
	}
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	rv := reflect.ValueOf(v)
	switch {
	case rv.CanInt():
		return rv.Int()
	case rv.CanUint():
		return rv.Uint()
	case rv.CanFloat():
		return round2(rv.Float())
	case rv.Kind() == reflect.String:
		return rv.String()
	case rv.Kind() == reflect.Bool:
		return rv.Bool()
	}
	return nil
}

// MatchesFile compares s with the golden file at path, failing t on a
// mismatch. With SKIN_UPDATE_SNAPSHOTS=1 the file is rewritten instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()
	hint := fmt.Sprintf("%s=1 go test -run %s", UpdateEnv, t.Name())

	if os.Getenv(UpdateEnv) == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("writing snapshot %s: %v", path, err)
		}
		return
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		t.Fatalf("snapshot %s does not exist; create it with\n\t%s", path, hint)
		return
	case err != nil:
		t.Fatalf("reading snapshot %s: %v", path, err)
		return
	}
	var want Snapshot
	if err := yaml.Unmarshal(data, &want); err != nil {
		t.Fatalf("snapshot %s is not valid YAML: %v", path, err)
		return
	}
	if diff := s.Diff(&want); diff != "" {
		t.Errorf("snapshot %s differs:\n%s\nupdate it with\n\t%s", path, diff, hint)
	}
}

// UpdateFile writes s to path, creating parent directories.
func (s *Snapshot) UpdateFile(path string) error {
	data, err := s.encode()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns the lines that differ between want and s, or "" when they
// encode identically.
func (s *Snapshot) Diff(want *Snapshot) string {
	got, err := s.encode()
	if err != nil {
		return err.Error()
	}
	exp, err := want.encode()
	if err != nil {
		return err.Error()
	}
	if bytes.Equal(got, exp) {
		return ""
	}
	return lineDiff(strings.Split(string(exp), "\n"), strings.Split(string(got), "\n"))
}

func (s *Snapshot) encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// lineDiff prints a minimal edit script between a and b using the longest
// common subsequence of lines.
func lineDiff(a, b []string) string {
	lcs := make([][]int, len(a)+1)
	for i := range lcs {
		lcs[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	var sb strings.Builder
	sb.WriteString("--- want\n+++ got\n")
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case i < len(a) && j < len(b) && a[i] == b[j]:
			i++
			j++
		case j < len(b) && (i == len(a) || lcs[i][j+1] >= lcs[i+1][j]):
			fmt.Fprintf(&sb, "+%s\n", b[j])
			j++
		default:
			fmt.Fprintf(&sb, "-%s\n", a[i])
			i++
		}
	}
	return sb.String()
}
