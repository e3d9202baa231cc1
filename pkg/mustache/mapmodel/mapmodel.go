// Package mapmodel provides a mustache.Model over plain Go value
// trees, as produced by encoding/json, yaml or toml decoding.
package mapmodel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/davorinm/mustache/pkg/mustache"
)

// Model walks a tree of maps, slices and scalars. Section iteration
// keeps a stack of activated items; name lookup resolves dotted paths
// against the innermost item first and falls back outward through
// enclosing sections, mustache-style. The special name "." refers to
// the currently active item.
//
// A Model holds per-render iteration state and must not be shared
// between concurrent renders.
type Model struct {
	// Strict makes missing names and partials fail the render with
	// item-not-found / partial-not-found instead of rendering empty.
	Strict bool

	root     any
	stack    []frame
	partials map[string]string
}

type frame struct {
	value any
	items []any
	index int
}

// New creates a model over the given value tree.
func New(root any) *Model {
	return &Model{
		root:     root,
		partials: make(map[string]string),
	}
}

// AddPartial registers a named partial template usable as {{>name}}.
func (m *Model) AddPartial(name, template string) {
	m.partials[name] = template
}

// Enter implements mustache.Model.
func (m *Model) Enter(name string) (bool, error) {
	value, ok := m.lookup(name)
	if !ok || !truthy(value) {
		return false, nil
	}

	if items, isList := value.([]any); isList {
		// truthy guarantees the list is non-empty
		m.stack = append(m.stack, frame{value: items[0], items: items})
		return true, nil
	}

	m.stack = append(m.stack, frame{value: value})
	return true, nil
}

// Next implements mustache.Model.
func (m *Model) Next() (bool, error) {
	if len(m.stack) == 0 {
		return false, nil
	}
	top := &m.stack[len(m.stack)-1]
	if top.items == nil || top.index+1 >= len(top.items) {
		return false, nil
	}
	top.index++
	top.value = top.items[top.index]
	return true, nil
}

// Leave implements mustache.Model.
func (m *Model) Leave() error {
	if len(m.stack) == 0 {
		return nil
	}
	m.stack = m.stack[:len(m.stack)-1]
	return nil
}

// Get implements mustache.Getter.
func (m *Model) Get(name string) (*mustache.Sbuf, error) {
	value, ok := m.lookup(name)
	if !ok {
		if m.Strict {
			return nil, mustache.ErrItemNotFound
		}
		return mustache.NewSbuf(""), nil
	}
	return mustache.NewSbuf(stringify(value)), nil
}

// Partial implements mustache.PartialProvider. Unknown partials render
// empty unless the model is strict.
func (m *Model) Partial(name string) (*mustache.Sbuf, error) {
	if template, ok := m.partials[name]; ok {
		return mustache.NewSbuf(template), nil
	}
	if m.Strict {
		return nil, mustache.ErrPartialNotFound
	}
	return mustache.NewSbuf(""), nil
}

// current returns the active item.
func (m *Model) current() any {
	if len(m.stack) > 0 {
		return m.stack[len(m.stack)-1].value
	}
	return m.root
}

// lookup resolves a dotted name, trying the innermost active item
// first, then the items of enclosing sections, then the root.
func (m *Model) lookup(name string) (any, bool) {
	if name == "." {
		return m.current(), true
	}

	parts := strings.Split(name, ".")
	for i := len(m.stack) - 1; i >= 0; i-- {
		if value, ok := resolvePath(m.stack[i].value, parts); ok {
			return value, true
		}
	}
	return resolvePath(m.root, parts)
}

func resolvePath(value any, parts []string) (any, bool) {
	for _, part := range parts {
		fields, ok := asMap(value)
		if !ok {
			return nil, false
		}
		value, ok = fields[part]
		if !ok {
			return nil, false
		}
	}
	return value, true
}

// asMap normalizes the map shapes the supported decoders produce.
func asMap(value any) (map[string]any, bool) {
	switch typed := value.(type) {
	case map[string]any:
		return typed, true
	case map[any]any:
		fields := make(map[string]any, len(typed))
		for key, val := range typed {
			if name, ok := key.(string); ok {
				fields[name] = val
			}
		}
		return fields, true
	default:
		return nil, false
	}
}

// truthy decides section activation: false, nil, empty strings and
// empty collections skip the section, everything else activates it.
func truthy(value any) bool {
	switch typed := value.(type) {
	case nil:
		return false
	case bool:
		return typed
	case string:
		return typed != ""
	case []any:
		return len(typed) > 0
	case map[string]any:
		return len(typed) > 0
	case map[any]any:
		return len(typed) > 0
	default:
		return true
	}
}

func stringify(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case bool:
		return strconv.FormatBool(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	default:
		return fmt.Sprintf("%v", typed)
	}
}
