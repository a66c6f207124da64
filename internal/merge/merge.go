// Package merge combines configuration trees.
//
// UpdateRecursive is the engine: it folds a subset mapping into a template
// mapping, recursing into mappings present on both sides. Scalars and
// sequences are replaced wholesale. Two flags select what happens to keys
// that only one side has; the named Policy values cover the useful
// combinations.
package merge

import (
	"errors"

	"github.com/redactyl/yamlconfig/internal/tree"
)

// ErrNoInput is returned by MergeMultiple when given no trees.
var ErrNoInput = errors.New("merge: no input")

// Policy selects how keys missing from one side are handled.
type Policy struct {
	// IgnoreNotInTemplate skips subset keys the template does not have.
	IgnoreNotInTemplate bool
	// DeleteNotInSubset prunes template keys the subset does not have.
	DeleteNotInSubset bool
}

var (
	// IgnoreMissing overrides template values but never adds keys.
	IgnoreMissing = Policy{IgnoreNotInTemplate: true}
	// Strict keeps the union of both key sets; subset values win.
	Strict = Policy{}
	// Intersect keeps only keys present on both sides, with subset values.
	Intersect = Policy{IgnoreNotInTemplate: true, DeleteNotInSubset: true}
)

// UpdateRecursive merges subset into template in place and returns the
// result. When either side is not a *tree.Map the subset value is the
// result and template is left alone. Values taken from subset are deep
// copies, so the result never aliases subset.
func UpdateRecursive(template, subset any, p Policy) any {
	tm, ok := tree.AsMap(template)
	if !ok {
		return tree.CloneValue(subset)
	}
	sm, ok := tree.AsMap(subset)
	if !ok {
		return tree.CloneValue(subset)
	}
	update(tm, sm, p)
	return tm
}

// Merged is the copy-returning form of UpdateRecursive: neither argument
// is modified.
func Merged(template, subset *tree.Map, p Policy) *tree.Map {
	out := template.Clone()
	update(out, subset, p)
	return out
}

func update(template, subset *tree.Map, p Policy) {
	for _, key := range subset.Keys() {
		sv, _ := subset.Get(key)
		tv, inTemplate := template.Get(key)
		if !inTemplate && p.IgnoreNotInTemplate {
			continue
		}
		if inTemplate {
			tm, tok := tree.AsMap(tv)
			sm, sok := tree.AsMap(sv)
			if tok && sok {
				update(tm, sm, p)
				continue
			}
		}
		template.Set(key, tree.CloneValue(sv))
		if !inTemplate {
			template.SetNote(key, subset.Note(key))
		}
	}
	if p.DeleteNotInSubset {
		DeleteKeysRecursive(template, subset)
	}
}

// DeleteKeysRecursive removes every key of superset that subset lacks,
// descending into mappings present on both sides.
func DeleteKeysRecursive(superset, subset *tree.Map) {
	for _, key := range superset.Keys() {
		sv, ok := subset.Get(key)
		if !ok {
			superset.Delete(key)
			continue
		}
		v, _ := superset.Get(key)
		if child, ok := tree.AsMap(v); ok {
			if sub, ok := tree.AsMap(sv); ok {
				DeleteKeysRecursive(child, sub)
			}
		}
	}
}

// MergeMultiple folds trees left to right with the Strict policy. The first
// tree is copied and sets the shape (including round-trip comments); later
// trees win on leaf values. None of the inputs is modified.
func MergeMultiple(trees []*tree.Map) (*tree.Map, error) {
	var out *tree.Map
	for _, t := range trees {
		if t == nil {
			continue
		}
		if out == nil {
			out = t.Clone()
			continue
		}
		update(out, t, Strict)
	}
	if out == nil {
		return nil, ErrNoInput
	}
	return out, nil
}
