// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package typeutil

import (
	"errors"

	"github.com/wdamron/elab/types"
)

// Kinds of unification failure.
type ErrorKind int

const (
	TypeMismatch ErrorKind = iota
	ConstructorMismatch
	ArityMismatch
	InfiniteType
)

func (k ErrorKind) String() string {
	switch k {
	case TypeMismatch:
		return "TypeMismatch"
	case ConstructorMismatch:
		return "ConstructorMismatch"
	case ArityMismatch:
		return "ArityMismatch"
	case InfiniteType:
		return "InfiniteType"
	}
	return "Unknown"
}

// UnifyError describes the innermost pair of types which failed to unify.
type UnifyError struct {
	Kind     ErrorKind
	Expected types.Type
	Found    types.Type
	// Label names the record field missing from one side, for record mismatches.
	Label string
}

func (e *UnifyError) Error() string {
	names := types.TypeStrings(e.Expected, e.Found)
	switch {
	case e.Kind == InfiniteType:
		return "Infinite type: " + names[0] + " occurs in " + names[1]
	case e.Label != "":
		return "Record field " + e.Label + " is missing: expected " + names[0] + ", found " + names[1]
	case e.Kind == ConstructorMismatch:
		return "Type constructor mismatch: expected " + names[0] + ", found " + names[1]
	case e.Kind == ArityMismatch:
		return "Arity mismatch: expected " + names[0] + ", found " + names[1]
	}
	return "Type mismatch: expected " + names[0] + ", found " + names[1]
}

var (
	errGenericVar = errors.New("Generic type-variable was not instantiated before unification")
	errOccurs     = errors.New("Type-variable occurs within the type it is bound to")
)

// See "Efficient Generalization with Levels" (Oleg Kiselyov)
// http://okmij.org/ftp/ML/generalization.html#levels
//
// This implementation follows the sound_eager algorithm.
func (ctx *CommonContext) occursAdjustLevels(tv *types.Var, level int, t types.Type) error {
	switch t := t.(type) {
	case *types.Var:
		switch {
		case t.IsLinkVar():
			return ctx.occursAdjustLevels(tv, level, t.Link())
		case t.IsGenericVar():
			return errGenericVar
		}
		if t == tv {
			return errOccurs
		}
		if t.Level() > level {
			if ctx.Speculate {
				ctx.StashLink(t)
			}
			t.SetLevel(level)
		}
		return nil

	case *types.Const:
		for _, arg := range t.Args {
			if err := ctx.occursAdjustLevels(tv, level, arg); err != nil {
				return err
			}
		}
		return nil

	case *types.Arrow:
		if err := ctx.occursAdjustLevels(tv, level, t.Arg); err != nil {
			return err
		}
		return ctx.occursAdjustLevels(tv, level, t.Return)

	case *types.Tuple:
		for _, elem := range t.Elems {
			if err := ctx.occursAdjustLevels(tv, level, elem); err != nil {
				return err
			}
		}
		return nil

	case *types.Record:
		return ctx.occursAdjustLevels(tv, level, t.Row)

	case *types.RowExtend:
		var err error
		t.Labels.Range(func(label string, lt types.Type) bool {
			err = ctx.occursAdjustLevels(tv, level, lt)
			return err == nil
		})
		if err != nil {
			return err
		}
		return ctx.occursAdjustLevels(tv, level, t.Row)

	default:
		return nil
	}
}

// UnifyTxn is a snapshot of the link stash, used to roll back speculative unification.
type UnifyTxn struct {
	Speculate bool
	LinkStash []StashedLink
}

// NewUnifyTxn begins speculative unification. Every type-variable modified until the
// transaction is rolled back or committed will be recorded in the link stash.
func (ctx *CommonContext) NewUnifyTxn() UnifyTxn {
	txn := UnifyTxn{ctx.Speculate, ctx.LinkStash}
	ctx.Speculate = true
	return txn
}

// Rollback restores all type-variables modified since txn began.
func (ctx *CommonContext) Rollback(txn UnifyTxn) {
	ctx.UnstashLinks(len(ctx.LinkStash) - len(txn.LinkStash))
	ctx.Speculate, ctx.LinkStash = txn.Speculate, txn.LinkStash
}

// Commit keeps all modifications made since txn began. Within an enclosing transaction,
// the modifications remain stashed so the enclosing transaction may still roll them back.
func (ctx *CommonContext) Commit(txn UnifyTxn) {
	if txn.Speculate {
		return
	}
	ctx.Speculate, ctx.LinkStash = false, txn.LinkStash
}

// CanUnify returns true if a and b are unifiable, without modifying either type.
func (ctx *CommonContext) CanUnify(a, b types.Type) bool {
	txn := ctx.NewUnifyTxn()
	err := ctx.Unify(a, b)
	ctx.Rollback(txn)
	return err == nil
}

// TryUnify unifies a and b, or leaves both types unmodified if unification fails.
func (ctx *CommonContext) TryUnify(a, b types.Type) error {
	txn := ctx.NewUnifyTxn()
	if err := ctx.Unify(a, b); err != nil {
		ctx.Rollback(txn)
		return err
	}
	ctx.Commit(txn)
	return nil
}

// Unify the expected type a with the found type b.
//
// Unification is not transactional: type-variables bound before a failure remain bound.
// Callers needing speculation must use NewUnifyTxn/Rollback, CanUnify, or TryUnify.
func (ctx *CommonContext) Unify(a, b types.Type) error {
	// Path compression:
	a, b = types.RealType(a), types.RealType(b)

	if a == b {
		return nil
	}

	// unify type variables:

	if avar, ok := a.(*types.Var); ok {
		return ctx.bind(avar, b, a, b)
	}
	if bvar, ok := b.(*types.Var); ok {
		return ctx.bind(bvar, a, a, b)
	}

	// unify types:

	switch a := a.(type) {
	case *types.Const:
		bconst, ok := b.(*types.Const)
		if !ok {
			break
		}
		if a.Name != bconst.Name {
			return &UnifyError{Kind: ConstructorMismatch, Expected: a, Found: b}
		}
		if len(a.Args) != len(bconst.Args) {
			return &UnifyError{Kind: ArityMismatch, Expected: a, Found: b}
		}
		for i := range a.Args {
			if err := ctx.Unify(a.Args[i], bconst.Args[i]); err != nil {
				return err
			}
		}
		return nil

	case *types.Arrow:
		barrow, ok := b.(*types.Arrow)
		if !ok {
			break
		}
		if err := ctx.Unify(a.Arg, barrow.Arg); err != nil {
			return err
		}
		return ctx.Unify(a.Return, barrow.Return)

	case *types.Tuple:
		btuple, ok := b.(*types.Tuple)
		if !ok {
			break
		}
		if len(a.Elems) != len(btuple.Elems) {
			return &UnifyError{Kind: ArityMismatch, Expected: a, Found: b}
		}
		for i := range a.Elems {
			if err := ctx.Unify(a.Elems[i], btuple.Elems[i]); err != nil {
				return err
			}
		}
		return nil

	case *types.Record:
		if brec, ok := b.(*types.Record); ok {
			return ctx.unifyRows(a, b, a.Row, brec.Row)
		}

	case *types.RowExtend:
		switch b.(type) {
		case *types.RowExtend, types.RowEmpty:
			return ctx.unifyRows(a, b, a, b)
		}

	case types.RowEmpty:
		switch b.(type) {
		case *types.RowExtend, types.RowEmpty:
			return ctx.unifyRows(a, b, a, b)
		}
	}

	return &UnifyError{Kind: TypeMismatch, Expected: a, Found: b}
}

// Bind the type-variable tv to t, after checking that tv does not occur within t.
func (ctx *CommonContext) bind(tv *types.Var, t, expected, found types.Type) error {
	if tv.IsGenericVar() {
		return errGenericVar
	}
	if err := ctx.occursAdjustLevels(tv, tv.Level(), t); err != nil {
		if err == errOccurs {
			return &UnifyError{Kind: InfiniteType, Expected: tv, Found: t}
		}
		return err
	}
	if ctx.Speculate {
		ctx.StashLink(tv)
	}
	tv.SetLink(t)
	return nil
}

// Unify two rows. A rigid row ends in RowEmpty; a flexible row ends in an unbound type-variable.
//
// Labels present in a flexible row must exist in the other row. The tail of a flexible row is bound
// to the labels it lacks; a rigid row never gains labels. Two flexible rows share a fresh tail.
func (ctx *CommonContext) unifyRows(expected, found types.Type, a, b types.Type) error {
	labelsA, restA, err := types.FlattenRowType(a)
	if err != nil {
		return err
	}
	labelsB, restB, err := types.FlattenRowType(b)
	if err != nil {
		return err
	}

	// missingA holds the labels of b which a lacks; missingB the labels of a which b lacks:
	var missingA, missingB types.TypeMapBuilder
	labelsA.Range(func(label string, t types.Type) bool {
		if _, ok := labelsB.Get(label); !ok {
			missingB.Set(label, t)
		}
		return true
	})
	labelsB.Range(func(label string, t types.Type) bool {
		if _, ok := labelsA.Get(label); !ok {
			missingA.Set(label, t)
		}
		return true
	})

	tailA, flexA := restA.(*types.Var)
	tailB, flexB := restB.(*types.Var)

	// a rigid row cannot gain labels:
	if !flexA && missingA.Len() > 0 {
		return &UnifyError{Kind: TypeMismatch, Expected: expected, Found: found, Label: firstLabel(labelsB, labelsA)}
	}
	if !flexB && missingB.Len() > 0 {
		return &UnifyError{Kind: TypeMismatch, Expected: expected, Found: found, Label: firstLabel(labelsA, labelsB)}
	}

	// unify shared labels:
	labelsA.Range(func(label string, ta types.Type) bool {
		if tb, ok := labelsB.Get(label); ok {
			err = ctx.Unify(ta, tb)
		}
		return err == nil
	})
	if err != nil {
		return err
	}

	switch {
	case !flexA && !flexB:
		return nil

	case flexA && !flexB:
		return ctx.bind(tailA, extendRow(missingA.Build(), types.RowEmpty{}), expected, found)

	case !flexA && flexB:
		return ctx.bind(tailB, extendRow(missingB.Build(), types.RowEmpty{}), expected, found)
	}

	// both rows are flexible:
	if tailA == tailB {
		if missingA.Len() == 0 && missingB.Len() == 0 {
			return nil
		}
		return &UnifyError{Kind: InfiniteType, Expected: expected, Found: found}
	}
	if missingA.Len() == 0 && missingB.Len() == 0 {
		return ctx.bind(tailA, tailB, expected, found)
	}
	level := tailA.Level()
	if tailB.Level() < level {
		level = tailB.Level()
	}
	tail := ctx.VarTracker.New(level)
	if err := ctx.bind(tailA, extendRow(missingA.Build(), tail), expected, found); err != nil {
		return err
	}
	return ctx.bind(tailB, extendRow(missingB.Build(), tail), expected, found)
}

func extendRow(labels types.TypeMap, row types.Type) types.Type {
	if labels.Len() == 0 {
		return row
	}
	return &types.RowExtend{Row: row, Labels: labels}
}

// first label of from which is missing in other
func firstLabel(from, other types.TypeMap) string {
	missing := ""
	from.Range(func(label string, _ types.Type) bool {
		if _, ok := other.Get(label); !ok {
			missing = label
			return false
		}
		return true
	})
	return missing
}
