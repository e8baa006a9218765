package graph

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/lineage/pkg/core/elements"
	"github.com/matzehuels/lineage/pkg/core/family"
	"github.com/matzehuels/lineage/pkg/core/layout"
	"github.com/matzehuels/lineage/pkg/errors"
)

const chartJSON = `{
	"nodes": [
		{"id": "anna", "name": "Anna", "year": 1850, "chapter": "origins"},
		{"id": "karl", "name": "Karl", "year": "1840s"},
		{"id": "weber", "name": "Weber family", "link_to_family": "weber"}
	],
	"links": [
		{"source": "anna", "target": "karl", "type": "marriage"},
		{"source": "weber", "target": "anna", "type": "descent", "label": "~3 generations"}
	],
	"layout": {
		"couples": [{"person1": "anna", "person2": "karl", "person1_side": "left", "offset": 40}],
		"singles": {"weber": 25, "karl": {"offset": -10, "y_offset": 15}}
	},
	"chapters": [{"id": "origins", "title": "Origins"}]
}`

const chartTOML = `
[[nodes]]
id = "anna"
name = "Anna"
year = 1850
chapter = "origins"

[[nodes]]
id = "karl"
name = "Karl"
year = "1840s"

[[nodes]]
id = "weber"
name = "Weber family"
link_to_family = "weber"

[[links]]
source = "anna"
target = "karl"
type = "marriage"

[[links]]
source = "weber"
target = "anna"
type = "descent"
label = "~3 generations"

[layout]
[[layout.couples]]
person1 = "anna"
person2 = "karl"
person1_side = "left"
offset = 40

[layout.singles]
weber = 25
karl = { offset = -10, y_offset = 15 }

[[chapters]]
id = "origins"
title = "Origins"
`

func checkChart(t *testing.T, d family.Data) {
	t.Helper()
	if len(d.Nodes) != 3 || len(d.Links) != 2 {
		t.Fatalf("nodes=%d links=%d, want 3 and 2", len(d.Nodes), len(d.Links))
	}
	if y := d.Nodes[0].Year; !y.Known || y.Value != 1850 {
		t.Errorf("anna year = %+v, want 1850", y)
	}
	if y := d.Nodes[1].Year; y.Text != "1840s" || y.Value != 1840 {
		t.Errorf("karl year = %+v, want 1840s", y)
	}
	if !d.Nodes[2].IsLinkNode() {
		t.Error("weber should be a link node")
	}
	if got := d.Links[1].GenerationGap(); got != 3 {
		t.Errorf("descent gap = %d, want 3", got)
	}
	if len(d.Layout.Couples) != 1 || d.Layout.Couples[0].Offset != 40 || d.Layout.Couples[0].Person1Side != family.SideLeft {
		t.Errorf("couples = %+v", d.Layout.Couples)
	}
	if got := d.Layout.Singles["weber"]; got != (family.SingleRule{Offset: 25}) {
		t.Errorf("legacy single = %+v", got)
	}
	if got := d.Layout.Singles["karl"]; got != (family.SingleRule{Offset: -10, YOffset: 15}) {
		t.Errorf("object single = %+v", got)
	}
	if len(d.Chapters) != 1 || d.Chapters[0].Title != "Origins" {
		t.Errorf("chapters = %+v", d.Chapters)
	}
}

func TestReadChart(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format string
	}{
		{"JSON", chartJSON, FormatJSON},
		{"TOML", chartTOML, FormatTOML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ReadChart(strings.NewReader(tt.input), tt.format)
			if err != nil {
				t.Fatalf("ReadChart: %v", err)
			}
			checkChart(t, d)
		})
	}
}

func TestReadChartErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format string
	}{
		{"invalid JSON", `{invalid json}`, FormatJSON},
		{"invalid TOML", `nodes = [`, FormatTOML},
		{"bad year", `{"nodes": [{"id": "a", "year": true}]}`, FormatJSON},
		{"unknown format", `{}`, "yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadChart(strings.NewReader(tt.input), tt.format)
			if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidFormat)
			}
		})
	}
}

func TestReadChartFile(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{"chart.json": chartJSON, "chart.TOML": chartTOML} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		d, err := ReadChartFile(path)
		if err != nil {
			t.Fatalf("ReadChartFile(%s): %v", name, err)
		}
		checkChart(t, d)
	}
}

func TestReadChartFileNotFound(t *testing.T) {
	_, err := ReadChartFile("nonexistent.json")
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestMarshalChartSameAcrossFormats(t *testing.T) {
	fromJSON, err := UnmarshalChart([]byte(chartJSON), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	fromTOML, err := UnmarshalChart([]byte(chartTOML), FormatTOML)
	if err != nil {
		t.Fatal(err)
	}

	a, err := MarshalChart(fromJSON)
	if err != nil {
		t.Fatal(err)
	}
	b, err := MarshalChart(fromTOML)
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Errorf("canonical JSON differs:\n%s\n%s", a, b)
	}

	again, err := UnmarshalChart(a, FormatJSON)
	if err != nil {
		t.Fatalf("re-read canonical JSON: %v", err)
	}
	checkChart(t, again)
}

func TestLayoutFile(t *testing.T) {
	l := Layout{
		Family: "mueller",
		Nodes:  []elements.Node{{ID: "a", Name: "A", Year: family.YearOf(1900), Generation: 0}},
		Edges:  []elements.Edge{{ID: "a-b-child", Source: "a", Target: "b", Type: family.LinkChild}},
		Positions: map[string]layout.Point{
			"a": {X: 300, Y: 250},
		},
		Rows:      map[int][]string{0: {"a"}},
		Viewport:  layout.Viewport{Zoom: 1, PanX: 10, PanY: -20},
		Converged: true,
		Passes:    1,
	}

	path := filepath.Join(t.TempDir(), "out.layout.json")
	if err := WriteLayoutFile(l, path); err != nil {
		t.Fatalf("WriteLayoutFile: %v", err)
	}
	got, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile: %v", err)
	}

	if p, _ := got.Position("a"); p != (layout.Point{X: 300, Y: 250}) {
		t.Errorf("position = %+v", p)
	}
	if n, ok := got.Node("a"); !ok || n.Year.Value != 1900 {
		t.Errorf("node = %+v", n)
	}
	if got.Rows[0][0] != "a" || got.Viewport != l.Viewport || !got.Consistent() {
		t.Errorf("layout = %+v", got)
	}
}

func TestUnmarshalLayoutMissingPosition(t *testing.T) {
	_, err := UnmarshalLayout([]byte(`{"nodes": [{"id": "a"}], "positions": {}}`))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}
