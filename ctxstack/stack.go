package ctxstack

import "fmt"

// Empty is the terminal stack: a context with no fields.
type Empty struct{}

// Cons is a stack holding one field value of type T on top of a tail stack C.
// The zero value is usable but fields should normally be attached with Push
// so the nesting mirrors insertion order.
type Cons[T any, C any] struct {
	head T
	tail C
}

// Push extends the stack tail with one field value, producing a new stack.
// The old stack is unchanged. Within one stack each field type should appear
// at most once; generated shapes enforce this at generation time, and
// CheckDistinct validates stacks assembled generically.
func Push[T any, C any](tail C, head T) Cons[T, C] {
	return Cons[T, C]{head: head, tail: tail}
}

// Pop splits the stack into its top field value and the remainder.
// Pop(Push(c, v)) returns (v, c): push and pop are an identity pair.
func Pop[T any, C any](s Cons[T, C]) (T, C) {
	return s.head, s.tail
}

// Head returns the top field value.
func (s Cons[T, C]) Head() T { return s.head }

// Tail returns the stack below the top field.
func (s Cons[T, C]) Tail() C { return s.tail }

// node is the untyped view of a stack used by the runtime walks below.
// Both Empty and every Cons instantiation implement it.
type node interface {
	headValue() any
	tailValue() any
	empty() bool
}

func (Empty) headValue() any { return nil }
func (Empty) tailValue() any { return nil }
func (Empty) empty() bool    { return true }

func (s Cons[T, C]) headValue() any { return s.head }
func (s Cons[T, C]) tailValue() any { return s.tail }
func (s Cons[T, C]) empty() bool    { return false }

// Lookup retrieves the field of type T from the stack, walking from the top.
//
// This is the runtime narrowing of the by-type presence guarantee: unlike a
// generated shape's accessor, absence here is a runtime condition reported
// through ok, not a build failure. Prefer generated shapes in request paths.
func Lookup[T any](stack any) (T, bool) {
	cur := stack
	for {
		n, ok := cur.(node)
		if !ok || n.empty() {
			var zero T
			return zero, false
		}

		if v, ok := n.headValue().(T); ok {
			return v, true
		}

		cur = n.tailValue()
	}
}

// Contains reports whether the stack carries a field of type T.
func Contains[T any](stack any) bool {
	_, ok := Lookup[T](stack)
	return ok
}

// Len returns the number of fields in the stack, or 0 if the value is not a
// stack at all.
func Len(stack any) int {
	count := 0

	cur := stack
	for {
		n, ok := cur.(node)
		if !ok || n.empty() {
			return count
		}

		count++
		cur = n.tailValue()
	}
}

// CheckDistinct verifies that every field type in the stack appears at most
// once. It is the single up-front validation for stacks assembled with the
// generic Push rather than through a generated shape, and should be called
// once at construction, never per request.
func CheckDistinct(stack any) error {
	seen := make(map[string]struct{})

	cur := stack
	for {
		n, ok := cur.(node)
		if !ok || n.empty() {
			return nil
		}

		key := fmt.Sprintf("%T", n.headValue())
		if _, dup := seen[key]; dup {
			return fmt.Errorf("duplicate context field type %s", key)
		}

		seen[key] = struct{}{}
		cur = n.tailValue()
	}
}
