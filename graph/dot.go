// Package graph renders a psc definition as Graphviz DOT source: composite
// and parallel containment as clusters, joints as diamonds with dashed guard
// edges. Transitions are requested imperatively at runtime and are therefore
// not part of the declared shape.
package graph

import (
	"bytes"
	"fmt"

	"github.com/wim-c/psc"
)

// DOT generates Graphviz DOT source for the definition's state tree,
// optionally highlighting the active states (dotted leaf chains as returned
// by Chart.ActivePaths; pass nil for a plain rendering).
func DOT(def *psc.Definition, active []string) string {
	var buf bytes.Buffer
	buf.WriteString("digraph statechart {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, fontsize=10, style=rounded];\n")
	buf.WriteString("  edge [fontsize=9];\n")

	r := renderer{active: activeNames(active)}
	r.state(&buf, def.Top(), "  ")
	for _, edge := range r.guardEdges {
		fmt.Fprintf(&buf, "  %q -> %q [style=dashed, arrowhead=odot];\n", edge[0], edge[1])
	}

	buf.WriteString("}\n")
	return buf.String()
}

type renderer struct {
	active     map[string]bool
	guardEdges [][2]string
}

func (r *renderer) state(buf *bytes.Buffer, s *psc.StateType, indent string) {
	switch s.Kind() {
	case psc.KindComposite, psc.KindParallel:
		fmt.Fprintf(buf, "%ssubgraph \"cluster_%s\" {\n", indent, s.Name())
		fmt.Fprintf(buf, "%s  label=%q;\n", indent, s.Name())
		if s.Kind() == psc.KindParallel {
			fmt.Fprintf(buf, "%s  style=dashed;\n", indent)
		}
		if r.active[s.Name()] {
			fmt.Fprintf(buf, "%s  color=blue;\n", indent)
		}
		for _, child := range s.Children() {
			r.state(buf, child, indent+"  ")
		}
		for _, joint := range s.Joints() {
			r.state(buf, joint, indent+"  ")
		}
		fmt.Fprintf(buf, "%s}\n", indent)

	case psc.KindJoint:
		fmt.Fprintf(buf, "%s%q [shape=diamond%s];\n", indent, s.Name(), r.highlight(s))
		for _, guard := range s.Guards() {
			r.guardEdges = append(r.guardEdges, [2]string{guard.Name(), s.Name()})
		}

	default:
		fmt.Fprintf(buf, "%s%q%s;\n", indent, s.Name(), r.node(s))
	}
}

func (r *renderer) node(s *psc.StateType) string {
	if h := r.highlight(s); h != "" {
		return " [" + h[2:] + "]"
	}
	return ""
}

func (r *renderer) highlight(s *psc.StateType) string {
	if r.active[s.Name()] {
		return ", color=blue, penwidth=2"
	}
	return ""
}

// activeNames flattens dotted active paths into a state-name set.
func activeNames(paths []string) map[string]bool {
	active := map[string]bool{}
	for _, path := range paths {
		start := 0
		for i := 0; i <= len(path); i++ {
			if i == len(path) || path[i] == '.' {
				if i > start {
					active[path[start:i]] = true
				}
				start = i + 1
			}
		}
	}
	return active
}
