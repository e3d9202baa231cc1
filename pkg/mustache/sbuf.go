package mustache

// Sbuf is a string lent to the engine by the data model. The model
// chooses one of three release disciplines:
//
//  1. no release: leave both Free and Release nil (the default); the
//     model retains ownership and the value must stay valid until the
//     engine is done reading it.
//  2. release without closure: set Free.
//  3. release with closure: set Release and Closure.
//
// The engine invokes the applicable release function exactly once,
// after it has finished reading Value, on every exit path.
type Sbuf struct {
	// Value is the lent string. The engine never modifies it.
	Value string
	// Free releases the value without a closure.
	Free func(value string)
	// Release releases the value together with Closure.
	Release func(value string, closure any)
	// Closure is the opaque context passed to Release.
	Closure any

	released bool
}

// NewSbuf returns a borrowed Sbuf with no release discipline.
func NewSbuf(value string) *Sbuf {
	return &Sbuf{Value: value}
}

// release runs the tagged release discipline. Calling it more than
// once, or on a nil Sbuf, is a no-op. Release takes precedence over
// Free when both are set.
func (s *Sbuf) release() {
	if s == nil || s.released {
		return
	}
	s.released = true

	switch {
	case s.Release != nil:
		s.Release(s.Value, s.Closure)
	case s.Free != nil:
		s.Free(s.Value)
	}
}
