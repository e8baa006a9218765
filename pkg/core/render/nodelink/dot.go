package nodelink

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/lineage/pkg/core/elements"
	"github.com/matzehuels/lineage/pkg/core/family"
	"github.com/matzehuels/lineage/pkg/core/layout"
	"github.com/matzehuels/lineage/pkg/graph"
)

// pointsPerInch converts chart pixels to Graphviz inches.
const pointsPerInch = 72.0

// Colors used by the chart.
const (
	colorPerson     = "#fdf6e3"
	colorPersonLine = "#8b6f47"
	colorLinkNode   = "#e8e8e8"
	colorMarriage   = "#c9a227"
	colorSibling    = "#999999"
	colorLineage    = "#555555"
)

// Options configures DOT generation.
type Options struct {
	// Portraits draws each person's portrait image inside their node. The
	// portrait paths must be readable by Graphviz.
	Portraits bool
}

// ToDOT converts a layout to Graphviz DOT with every node pinned at its
// computed position. Output is deterministic: nodes and edges are written
// in layout order.
func ToDOT(l graph.Layout, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph chart {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  outputorder=edgesfirst;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"Helvetica\", fontsize=14, fixedsize=true];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=12];\n")
	buf.WriteString("\n")

	placed := make(map[string]bool, len(l.Nodes))
	for _, n := range l.Nodes {
		p, ok := l.Positions[n.ID]
		if !ok {
			continue
		}
		placed[n.ID] = true
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(n, p, opts), ", "))
	}

	buf.WriteString("\n")
	for _, e := range l.Edges {
		if !placed[e.Source] || !placed[e.Target] {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.Source, e.Target, strings.Join(edgeAttrs(e), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n elements.Node, p layout.Point, opts Options) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", n.Label),
		fmt.Sprintf("pos=\"%s,%s!\"", num(p.X), num(-p.Y)),
	}

	if n.IsLinkNode() {
		size := num(layout.LinkSize / pointsPerInch)
		attrs = append(attrs,
			"shape=box",
			"style=\"rounded,filled\"",
			"fillcolor=\""+colorLinkNode+"\"",
			"width="+size, "height="+size,
			fmt.Sprintf("tooltip=%q", "Family "+n.LinkToFamily),
		)
		return attrs
	}

	size := num(layout.PersonSize / pointsPerInch)
	attrs = append(attrs,
		"shape=ellipse",
		"style=filled",
		"fillcolor=\""+colorPerson+"\"",
		"color=\""+colorPersonLine+"\"",
		"penwidth=2",
		"width="+size, "height="+size,
	)
	if opts.Portraits && n.Portrait != "" {
		attrs = append(attrs, fmt.Sprintf("image=%q", n.Portrait), "imagescale=true", "labelloc=b")
	}
	if n.Page != "" {
		attrs = append(attrs, fmt.Sprintf("URL=%q", n.Page))
	}
	return attrs
}

func edgeAttrs(e elements.Edge) []string {
	switch e.Type {
	case family.LinkMarriage:
		return []string{"dir=none", "color=\"" + colorMarriage + "\"", "penwidth=3"}
	case family.LinkSibling:
		return []string{"dir=none", "style=dashed", "color=\"" + colorSibling + "\""}
	case family.LinkDescent:
		attrs := []string{"style=dashed", "color=\"" + colorLineage + "\""}
		if e.Label != "" {
			attrs = append(attrs, fmt.Sprintf("label=%q", e.Label))
		}
		return attrs
	default:
		attrs := []string{"color=\"" + colorLineage + "\""}
		if e.Adopted {
			attrs = append(attrs, "style=dashed", "label=\"Adopted\"")
		}
		return attrs
	}
}

// num formats a coordinate without trailing zeros.
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
