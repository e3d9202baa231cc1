package mustache

import "io"

// Model is the capability interface through which the engine sees the
// data backing a render. The three methods below are mandatory and
// drive section iteration; further capabilities are optional and
// discovered once, before any template scanning, by interface
// assertion (see Getter, Putter, Emitter, PartialProvider, StartHook
// and StopHook).
//
// Any error returned by a Model method aborts the whole render and
// becomes the render's final result, propagated verbatim. Models may
// define their own error space with UserCode.
type Model interface {
	// Enter enters the section of the given name if possible. It
	// returns true when the section was entered, in which case the
	// model must have activated the section's first item and Leave is
	// guaranteed to be called for this section exactly once. When it
	// returns false the section is skipped and Leave is never called.
	Enter(name string) (bool, error)

	// Next activates the next item of the innermost entered section.
	// It returns true when an item was activated and false when the
	// section is exhausted.
	Next() (bool, error)

	// Leave leaves the last entered section.
	Leave() error
}

// Getter reads the value of a name into a lent string. When a model
// implements both Getter and Putter, Getter is preferred for variable
// tags.
type Getter interface {
	Get(name string) (*Sbuf, error)
}

// Putter writes the value of a name directly to the destination,
// escaping it itself when asked to.
type Putter interface {
	Put(name string, escape bool, w io.Writer) error
}

// Emitter writes raw text to the destination in place of the engine's
// default write, escaping it itself when asked to. Both literal spans
// and values produced through Getter flow through it.
type Emitter interface {
	Emit(w io.Writer, text string, escape bool) error
}

// PartialProvider resolves a named partial template. Without it the
// engine falls back to Getter, then to Putter (see the render engine).
type PartialProvider interface {
	Partial(name string) (*Sbuf, error)
}

// StartHook is called once before any template scanning.
type StartHook interface {
	Start() error
}

// StopHook is called exactly once at the very end of a render with the
// final status, regardless of success or failure. It is the natural
// place for a model to release top-level resources.
type StopHook interface {
	Stop(err error)
}

// capabilities is the result of resolving a model's optional
// interfaces once at validation time.
type capabilities struct {
	get     Getter
	put     Putter
	emit    Emitter
	partial PartialProvider
	start   StartHook
	stop    StopHook
}

// resolveCapabilities validates the model and snapshots its optional
// capabilities. A model supplying neither Getter nor Putter leaves the
// engine with no way to materialize tag values, which is an
// interface-validity error reported before any scanning.
func resolveCapabilities(model Model) (capabilities, error) {
	if model == nil {
		return capabilities{}, NewRenderError(CodeInvalidItf, "nil data model")
	}

	var caps capabilities
	caps.get, _ = model.(Getter)
	caps.put, _ = model.(Putter)
	caps.emit, _ = model.(Emitter)
	caps.partial, _ = model.(PartialProvider)
	caps.start, _ = model.(StartHook)
	caps.stop, _ = model.(StopHook)

	if caps.get == nil && caps.put == nil {
		return capabilities{}, NewRenderError(CodeInvalidItf, "data model provides neither Get nor Put")
	}

	return caps, nil
}
