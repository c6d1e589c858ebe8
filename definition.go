package psc

import (
	"fmt"

	"github.com/samber/lo"
)

// Definition is a validated, indexed machine definition. It is built once
// from a declared top state and shared by any number of charts; nothing in a
// Definition is mutated after NewDefinition returns.
type Definition struct {
	top    *StateType
	joints []*StateType // every joint reachable from top, declaration order
}

// NewDefinition validates the tree rooted at top and builds the per-parent
// target indexes and joint guard sets.
//
// Validation rejects nil nodes, shared nodes (the tree must be acyclic with
// single ownership), childless composite/parallel states, joints used as
// child branches, guardless joints, and joint guards that are not reachable
// from top.
func NewDefinition(top *StateType) (*Definition, error) {
	if top == nil {
		return nil, ErrNilState
	}
	if top.kind == KindJoint {
		return nil, fmt.Errorf("top state %s: %w", top.name, ErrJointUnowned)
	}

	d := &Definition{top: top}
	seen := map[*StateType]bool{}
	if err := d.index(top, seen); err != nil {
		return nil, err
	}

	expanding := map[*StateType]bool{}
	for _, j := range d.joints {
		if err := d.expandGuards(j, expanding); err != nil {
			return nil, err
		}
		for _, g := range j.expandedGuards {
			if !top.contains(g) {
				return nil, fmt.Errorf("joint %s: guard %s: %w", j.name, g.name, ErrGuardUnreached)
			}
		}
	}
	return d, nil
}

// Top returns the declared top state.
func (d *Definition) Top() *StateType { return d.top }

// Joints returns every joint state reachable from the top, in declaration
// order.
func (d *Definition) Joints() []*StateType { return d.joints }

// Contains reports whether target is reachable from the top state, i.e.
// whether it is a valid Transit target.
func (d *Definition) Contains(target *StateType) bool {
	return d.top.contains(target)
}

// index validates one node and builds its target index: every descendant
// state maps to the index of the immediate child branch that contains it.
func (d *Definition) index(s *StateType, seen map[*StateType]bool) error {
	if s == nil {
		return ErrNilState
	}
	if seen[s] {
		return fmt.Errorf("state %s: %w", s.name, ErrSharedState)
	}
	seen[s] = true

	switch s.kind {
	case KindSimple:
		return nil

	case KindJoint:
		if len(s.guards) == 0 {
			return fmt.Errorf("joint %s: %w", s.name, ErrNoGuards)
		}
		d.joints = append(d.joints, s)
		return nil

	case KindComposite, KindParallel:
		if len(s.children) == 0 {
			return fmt.Errorf("state %s: %w", s.name, ErrNoChildren)
		}
		s.targetIndex = map[*StateType]int{}
		for i, child := range s.children {
			if child == nil {
				return fmt.Errorf("state %s, branch %d: %w", s.name, i, ErrNilState)
			}
			if child.kind == KindJoint {
				return fmt.Errorf("state %s, branch %s: %w", s.name, child.name, ErrJointAsChild)
			}
			if err := d.index(child, seen); err != nil {
				return err
			}
			s.targetIndex[child] = i
			for descendant := range child.targetIndex {
				if _, ok := s.targetIndex[descendant]; ok {
					return fmt.Errorf("state %s: %w", descendant.name, ErrSharedState)
				}
				s.targetIndex[descendant] = i
			}
		}
		for _, j := range s.joints {
			if j == nil {
				return fmt.Errorf("state %s: %w", s.name, ErrNilState)
			}
			if j.kind != KindJoint {
				return fmt.Errorf("state %s: joint list entry %s is %s, not joint", s.name, j.name, j.kind)
			}
			if err := d.index(j, seen); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("state %s: unknown kind %d", s.name, s.kind)
	}
}

// expandGuards resolves a joint's declared guard set to its concrete
// membership: non-joint guards stand for themselves, joint guards contribute
// their own expanded set. The result is deduplicated.
func (d *Definition) expandGuards(j *StateType, expanding map[*StateType]bool) error {
	if j.expandedGuards != nil {
		return nil
	}
	if expanding[j] {
		return fmt.Errorf("joint %s: guard cycle", j.name)
	}
	expanding[j] = true
	defer delete(expanding, j)

	var targets []*StateType
	for _, g := range j.guards {
		if g == nil {
			return fmt.Errorf("joint %s: %w", j.name, ErrNilState)
		}
		if g.kind == KindJoint {
			if err := d.expandGuards(g, expanding); err != nil {
				return err
			}
		}
		targets = g.addTargets(targets)
	}
	j.expandedGuards = lo.Uniq(targets)
	if len(j.expandedGuards) == 0 {
		return fmt.Errorf("joint %s: %w", j.name, ErrNoGuards)
	}
	return nil
}
