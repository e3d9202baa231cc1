package mustache_test

import (
	"errors"
	"testing"

	"github.com/davorinm/mustache/pkg/mustache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// partialModel resolves partials from a map and values from another.
type partialModel struct {
	baseModel
	values   map[string]string
	partials map[string]string
}

func (m *partialModel) Get(name string) (*mustache.Sbuf, error) {
	return mustache.NewSbuf(m.values[name]), nil
}

func (m *partialModel) Partial(name string) (*mustache.Sbuf, error) {
	template, ok := m.partials[name]
	if !ok {
		return nil, mustache.ErrPartialNotFound
	}
	return mustache.NewSbuf(template), nil
}

func TestRenderPartial(t *testing.T) {
	model := &partialModel{
		values:   map[string]string{"name": "world"},
		partials: map[string]string{"greet": "Hello {{name}}!"},
	}

	out, err := mustache.RenderString("[{{>greet}}]", model)
	require.NoError(t, err)
	assert.Equal(t, "[Hello world!]", out)
}

func TestRenderPartialNotFound(t *testing.T) {
	model := &partialModel{partials: map[string]string{}}
	_, err := mustache.RenderString("{{>missing}}", model)
	assert.ErrorIs(t, err, mustache.ErrPartialNotFound)
	assert.Equal(t, mustache.CodePartialNotFound, mustache.CodeOf(err))
}

func TestRenderPartialSelfReference(t *testing.T) {
	// A partial including itself is stopped by the depth budget
	// instead of recursing forever.
	model := &partialModel{
		partials: map[string]string{"loop": "x{{>loop}}"},
	}
	_, err := mustache.RenderString("{{>loop}}", model)
	assert.Equal(t, mustache.CodeTooDeep, mustache.CodeOf(err))
}

func TestRenderPartialFallsBackToGet(t *testing.T) {
	// Without a Partial capability the partial text comes from Get.
	model := &getModel{values: map[string]string{
		"header": "== {{title}} ==",
		"title":  "Report",
	}}
	out, err := mustache.RenderString("{{>header}}", model)
	require.NoError(t, err)
	assert.Equal(t, "== Report ==", out)
}

func TestRenderPartialFallsBackToPut(t *testing.T) {
	// With only Put, the model writes the inclusion itself, verbatim.
	model := &putModel{values: map[string]string{"header": "HEADER"}}
	out, err := mustache.RenderString("{{>header}}", model)
	require.NoError(t, err)
	assert.Equal(t, "<HEADER>", out)
	assert.Equal(t, []string{"header/false"}, model.puts)
}

func TestRenderPartialKeepsDelimiters(t *testing.T) {
	// A partial is rendered with the delimiters in force at the point
	// of inclusion.
	model := &partialModel{
		values:   map[string]string{"x": "X"},
		partials: map[string]string{"p": "<%x%>"},
	}
	out, err := mustache.RenderString("{{=<% %>=}}<%>p%>", model)
	require.NoError(t, err)
	assert.Equal(t, "X", out)
}

// countingModel tags every lent string with a release callback and
// counts acquire/release pairs.
type countingModel struct {
	baseModel
	values map[string]string
	fail   bool

	acquired int
	released int
	closures int
}

func (m *countingModel) Get(name string) (*mustache.Sbuf, error) {
	if m.fail {
		return nil, errors.New("forced failure")
	}
	m.acquired++
	if m.acquired%2 == 0 {
		// Alternate the two callback disciplines.
		return &mustache.Sbuf{
			Value:   m.values[name],
			Release: func(value string, closure any) { m.released++; m.closures++ },
			Closure: m,
		}, nil
	}
	return &mustache.Sbuf{
		Value: m.values[name],
		Free:  func(value string) { m.released++ },
	}, nil
}

func (m *countingModel) Partial(name string) (*mustache.Sbuf, error) {
	m.acquired++
	return &mustache.Sbuf{
		Value: m.values[name],
		Free:  func(value string) { m.released++ },
	}, nil
}

func TestSbufReleaseOnSuccess(t *testing.T) {
	model := &countingModel{values: map[string]string{
		"a": "1", "b": "2", "p": "{{a}}",
	}}

	out, err := mustache.RenderString("{{a}}{{b}}{{>p}}", model)
	require.NoError(t, err)
	assert.Equal(t, "121", out)
	assert.Equal(t, 4, model.acquired, "two variables, one partial, one variable inside it")
	assert.Equal(t, model.acquired, model.released, "every lent string is released exactly once")
	assert.Equal(t, 2, model.closures)
}

func TestSbufReleaseOnError(t *testing.T) {
	model := &countingModel{values: map[string]string{"p": "{{a}}"}}

	// The partial's text is lent, then the variable lookup inside it
	// fails; the partial's sbuf must still be released.
	_, err := mustache.RenderString("{{>p}}", func() *countingModel {
		model.fail = true
		return model
	}())
	assert.Error(t, err)
	assert.Equal(t, 1, model.acquired)
	assert.Equal(t, 1, model.released)
}

func TestSbufReleaseOnWriteError(t *testing.T) {
	model := &countingModel{values: map[string]string{"a": "1"}}
	err := mustache.Render("{{a}}", model, failWriter{})
	assert.Equal(t, mustache.CodeSystem, mustache.CodeOf(err))
	assert.Equal(t, 1, model.acquired)
	assert.Equal(t, 1, model.released, "the lent string is released on the error path")
}
