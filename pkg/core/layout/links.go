package layout

import (
	"github.com/matzehuels/lineage/pkg/core/elements"
	"github.com/matzehuels/lineage/pkg/core/family"
)

// RepositionLinks moves every link node that has an outgoing descent link
// to sit LinkOffset above its first descent target, centred on it. Link
// nodes without a placed descent target keep their walk position.
//
// It returns the ids that were moved.
func RepositionLinks(l *Layout, nodes []elements.Node, idx *family.Index, opts ...Option) []string {
	o := newOptions(opts)
	var moved []string
	for _, n := range nodes {
		if !n.IsLinkNode() {
			continue
		}
		targets := idx.DescentTargets(n.ID)
		if len(targets) == 0 {
			continue
		}
		d, ok := l.Positions[targets[0]]
		if !ok {
			continue
		}
		if _, ok := l.Positions[n.ID]; !ok {
			continue
		}
		l.Positions[n.ID] = Point{X: d.X, Y: d.Y - o.spacing.LinkOffset}
		moved = append(moved, n.ID)
	}
	return moved
}
