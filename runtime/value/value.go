// Package value defines WFL's runtime value representation: a tagged
// sum of Number/Text/Boolean/Nothing/List/Map/Date-family/Function/
// NativeFunction/Pattern/Container/Class/Interface/resource-handle
// values, each with a total toText conversion.
package value

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind tags which concrete shape a Value holds.
type Kind int

const (
	KindNumber Kind = iota
	KindText
	KindBoolean
	KindNothing
	KindList
	KindMap
	KindDate
	KindTime
	KindDateTime
	KindDuration
	KindFunction
	KindNativeFunction
	KindPattern
	KindContainer
	KindClass
	KindInterface
	KindResource
)

// Value is any WFL runtime value.
type Value interface {
	Kind() Kind
	ToText() string
}

// Number is a double-precision number; integer literals up to 2^53
// round-trip without loss.
type Number float64

func (Number) Kind() Kind { return KindNumber }

// ToText renders the shortest round-trip decimal, without a trailing
// ".0" for integral values.
func (n Number) ToText() string {
	f := float64(n)
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Text is a UTF-8 string, shared by reference through the Go string
// value itself (strings are already immutable and reference-shared).
type Text string

func (Text) Kind() Kind    { return KindText }
func (t Text) ToText() string { return string(t) }

// Boolean is a truth value.
type Boolean bool

func (Boolean) Kind() Kind { return KindBoolean }

// ToText renders "true" or "false".
func (b Boolean) ToText() string {
	if b {
		return "true"
	}
	return "false"
}

// Nothing is WFL's null-equivalent; the lexer maps `nothing`,
// `missing`, and `undefined` all onto this single singleton value.
type nothingType struct{}

func (nothingType) Kind() Kind      { return KindNothing }
func (nothingType) ToText() string { return "nothing" }

// Nothing is the sole Nothing value.
var Nothing Value = nothingType{}

// List is an ordered, mutable sequence shared by reference: its
// backing pointer identity is what aliases observe mutations through.
type List struct {
	Elements *[]Value
}

// NewList creates a List owning its own backing slice.
func NewList(elements []Value) *List {
	if elements == nil {
		elements = []Value{}
	}
	return &List{Elements: &elements}
}

func (*List) Kind() Kind { return KindList }

// ToText renders `[e1, e2, ...]` using each element's ToText.
func (l *List) ToText() string {
	parts := make([]string, len(*l.Elements))
	for i, e := range *l.Elements {
		parts[i] = e.ToText()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Get returns the element at i, and whether i was in bounds.
func (l *List) Get(i int) (Value, bool) {
	if i < 0 || i >= len(*l.Elements) {
		return nil, false
	}
	return (*l.Elements)[i], true
}

// Set overwrites the element at i, returning false if i is out of bounds.
func (l *List) Set(i int, v Value) bool {
	if i < 0 || i >= len(*l.Elements) {
		return false
	}
	(*l.Elements)[i] = v
	return true
}

// Push appends v to the end of the list.
func (l *List) Push(v Value) {
	*l.Elements = append(*l.Elements, v)
}

// Pop removes and returns the last element, failing if the list is empty.
func (l *List) Pop() (Value, bool) {
	n := len(*l.Elements)
	if n == 0 {
		return nil, false
	}
	v := (*l.Elements)[n-1]
	*l.Elements = (*l.Elements)[:n-1]
	return v, true
}

func (l *List) Len() int { return len(*l.Elements) }

// Map is an unordered key->value store with Text keys, sharing
// reference semantics. Insertion order is tracked separately for
// ToText and iteration, mirroring WFL's observable insertion-order map
// behavior.
type Map struct {
	entries map[string]Value
	order   []string
}

// NewMap creates an empty Map.
func NewMap() *Map {
	return &Map{entries: make(map[string]Value)}
}

func (*Map) Kind() Kind { return KindMap }

// ToText renders `{k1: v1, k2: v2, ...}` in insertion order.
func (m *Map) ToText() string {
	parts := make([]string, 0, len(m.order))
	for _, k := range m.order {
		parts = append(parts, k+": "+m.entries[k].ToText())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Get looks up key, reporting whether it was present.
func (m *Map) Get(key string) (Value, bool) {
	v, ok := m.entries[key]
	return v, ok
}

// Set inserts or overwrites key, preserving first-insertion order.
func (m *Map) Set(key string, v Value) {
	if _, exists := m.entries[key]; !exists {
		m.order = append(m.order, key)
	}
	m.entries[key] = v
}

// Delete removes key, reporting whether it was present.
func (m *Map) Delete(key string) bool {
	if _, ok := m.entries[key]; !ok {
		return false
	}
	delete(m.entries, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true
}

// Keys returns keys in insertion order.
func (m *Map) Keys() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

func (m *Map) Len() int { return len(m.entries) }

const iso8601Date = "2006-01-02"
const iso8601Time = "15:04:05"
const iso8601DateTime = "2006-01-02T15:04:05Z07:00"

// Date is a calendar date with no time-of-day component.
type Date struct{ T time.Time }

func (Date) Kind() Kind       { return KindDate }
func (d Date) ToText() string { return d.T.Format(iso8601Date) }

// Time is a time-of-day with no date component.
type Time struct{ T time.Time }

func (Time) Kind() Kind       { return KindTime }
func (t Time) ToText() string { return t.T.Format(iso8601Time) }

// DateTime is a full timestamp.
type DateTime struct{ T time.Time }

func (DateTime) Kind() Kind       { return KindDateTime }
func (dt DateTime) ToText() string { return dt.T.Format(iso8601DateTime) }

// Duration is a span of time.
type Duration struct{ D time.Duration }

func (Duration) Kind() Kind        { return KindDuration }
func (d Duration) ToText() string { return d.D.String() }

// NativeFunction is an opaque Go-implemented callable with fixed arity
// (or variadic), invoked synchronously by the interpreter.
type NativeFunction struct {
	Name     string
	Arity    int
	Variadic bool
	Fn       func(args []Value) (Value, error)
}

func (*NativeFunction) Kind() Kind        { return KindNativeFunction }
func (n *NativeFunction) ToText() string { return "<native " + n.Name + ">" }

// Resource is any file/network/database/subprocess/websocket handle.
// Concrete backends live in runtime/resource; Value only needs enough
// to render it and track liveness for idempotent Close.
type Resource struct {
	KindName string
	ID       int64
	closed   bool
	Closer   func() error
}

func (*Resource) Kind() Kind { return KindResource }

// ToText renders `<kind handle #id>`.
func (r *Resource) ToText() string { return fmt.Sprintf("<%s handle #%d>", r.KindName, r.ID) }

// Closed reports whether Close has already run.
func (r *Resource) Closed() bool { return r.closed }

// Close runs the backing closer exactly once; a second call is a
// no-op, matching spec.md's "close is idempotent" contract.
func (r *Resource) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if r.Closer == nil {
		return nil
	}
	return r.Closer()
}
