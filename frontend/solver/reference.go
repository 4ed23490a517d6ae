package solver

import (
	"fmt"
	"reflect"
)

// SymbolReference is either solved, carrying a non-nil declaration, or
// unsolved, carrying nothing. The constructors enforce the invariant.
type SymbolReference[T any] struct {
	decl   T
	solved bool
}

// Solved wraps decl. A nil decl is a caller bug and panics.
func Solved[T any](decl T) SymbolReference[T] {
	if isNil(decl) {
		panic("solved symbol reference requires a non-nil declaration")
	}
	return SymbolReference[T]{decl: decl, solved: true}
}

func Unsolved[T any]() SymbolReference[T] {
	return SymbolReference[T]{}
}

func (r SymbolReference[T]) IsSolved() bool {
	return r.solved
}

// Declaration returns the declaration of a solved reference and panics on
// an unsolved one. Use DeclarationOrNil when unsolved is an expected outcome.
func (r SymbolReference[T]) Declaration() T {
	if !r.solved {
		panic("Declaration() called on an unsolved symbol reference")
	}
	return r.decl
}

// DeclarationOrNil returns the declaration, or the zero value when unsolved.
func (r SymbolReference[T]) DeclarationOrNil() T {
	return r.decl
}

func (r SymbolReference[T]) String() string {
	if !r.solved {
		return "SymbolReference{unsolved}"
	}
	return fmt.Sprintf("SymbolReference{%v}", r.decl)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
