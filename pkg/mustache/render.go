package mustache

import (
	"fmt"

	"github.com/davorinm/mustache/pkg/logging"
)

// sectionFrame records one entered (or skipped) section. The body is
// never parsed into a tree: again is the offset of the first byte past
// the section-open tag, and iterating the section replays the same
// span by rewinding the scanner to it.
type sectionFrame struct {
	name    string
	again   int
	enabled bool
	entered bool
}

// renderer is the mutable state threaded through one top-level render
// call. It is never shared between concurrent renders; independent
// renders on separate goroutines are safe.
type renderer struct {
	cfg   *Config
	model Model
	caps  capabilities
	sink  sink
	// depth counts section plus partial nesting and is shared across
	// the recursive re-entries for partials, so a self-including
	// partial terminates with a too-deep error.
	depth int
}

// process interprets one template string in a single pass. It is
// re-entered recursively for partials, sharing the renderer's depth
// budget, and starts with the delimiters in force at the point of
// inclusion.
//
// Section skipping keeps scanning with output disabled rather than
// searching for the matching close, so nested tags are still validated
// and nested sections still pair up.
func (r *renderer) process(src string, delim Delimiters) (err error) {
	s := newScanner(src, delim, r.cfg)
	var stack []sectionFrame
	enabled := true

	// Exactly-once leave for every frame fully entered before an
	// abort, mirroring scoped acquisition.
	defer func() {
		if err == nil {
			return
		}
		for i := len(stack) - 1; i >= 0; i-- {
			if stack[i].entered {
				_ = r.model.Leave()
			}
		}
	}()

	for {
		literal, tg, serr := s.next()
		if enabled && literal != "" {
			if werr := r.sink.writeText(literal, false); werr != nil {
				return werr
			}
		}
		if serr != nil {
			return serr
		}
		if tg == nil {
			if n := len(stack); n > 0 {
				err = NewRenderError(CodeUnexpectedEnd, fmt.Sprintf("unclosed section %q", stack[n-1].name))
				return err
			}
			return nil
		}

		switch tg.kind {
		case tagComment:
			// Discarded without invoking any collaborator.

		case tagDelimiters:
			nd, ok := parseDelimiterChange(tg.name)
			if !ok {
				return s.errorAt(CodeBadSeparators, "malformed delimiter change", tg.offset)
			}
			s.delim = nd

		case tagSectionOpen, tagInvertedOpen:
			if r.depth >= r.cfg.MaxDepth {
				return s.errorAt(CodeTooDeep, "section nesting exceeds depth limit", tg.offset)
			}
			entered := false
			if enabled {
				entered, err = r.model.Enter(tg.name)
				if err != nil {
					return err
				}
			}
			stack = append(stack, sectionFrame{
				name:    tg.name,
				again:   s.pos,
				enabled: enabled,
				entered: entered,
			})
			r.depth++
			// A normal section disables its body when it was not
			// entered; an inverted section disables it when it was.
			if (tg.kind == tagSectionOpen) != entered {
				enabled = false
			}

		case tagSectionClose:
			n := len(stack)
			if n == 0 || stack[n-1].name != tg.name {
				return s.errorAt(CodeClosing, fmt.Sprintf("unexpected closing of %q", tg.name), tg.offset)
			}
			// The frame stays on the stack until its fate is decided, so
			// an error out of Next still reaches the deferred unwind and
			// the frame gets its one leave.
			frame := stack[n-1]

			again := false
			if enabled && frame.entered {
				again, err = r.model.Next()
				if err != nil {
					return err
				}
			}
			if again {
				s.pos = frame.again
			} else {
				stack = stack[:n-1]
				r.depth--
				enabled = frame.enabled
				if enabled && frame.entered {
					if err = r.model.Leave(); err != nil {
						// The frame is already popped; its leave ran.
						return err
					}
				}
			}

		case tagPartial:
			if enabled {
				if err = r.renderPartial(tg.name, s.delim, s, tg.offset); err != nil {
					return err
				}
			}

		case tagVariable:
			if enabled {
				if err = r.sink.writeValue(tg.name, true); err != nil {
					return err
				}
			}

		case tagUnescaped:
			if enabled {
				if err = r.sink.writeValue(tg.name, false); err != nil {
					return err
				}
			}
		}
	}
}

// renderPartial obtains the partial's text and feeds it back into the
// render, preferring the dedicated Partial capability, falling back to
// Get, and finally handing the name to Put so the model can write the
// inclusion itself.
func (r *renderer) renderPartial(name string, delim Delimiters, s *scanner, offset int) error {
	var (
		sb  *Sbuf
		err error
	)
	switch {
	case r.caps.partial != nil:
		sb, err = r.caps.partial.Partial(name)
	case r.caps.get != nil:
		sb, err = r.caps.get.Get(name)
	default:
		return r.caps.put.Put(name, false, r.sink.out)
	}
	if err != nil {
		return err
	}
	if sb == nil {
		return nil
	}
	defer sb.release()

	// A partial is one more level of nesting.
	if r.depth >= r.cfg.MaxDepth {
		return s.errorAt(CodeTooDeep, fmt.Sprintf("partial %q exceeds depth limit", name), offset)
	}
	r.depth++
	err = r.process(sb.Value, delim)
	r.depth--
	return err
}

// render runs one full render: capability resolution, start hook,
// scan, stop hook with the final status.
func render(cfg *Config, template string, model Model, s sink) error {
	logger := logging.GetLogger("mustache.render")

	caps, err := resolveCapabilities(model)
	if err != nil {
		return err
	}
	s.caps = caps

	r := &renderer{
		cfg:   cfg,
		model: model,
		caps:  caps,
		sink:  s,
	}

	if caps.start != nil {
		err = caps.start.Start()
	}
	if err == nil {
		err = r.process(template, DefaultDelimiters())
	}
	if caps.stop != nil {
		caps.stop.Stop(err)
	}

	if err != nil {
		logger.Debug().
			Int("template_length", len(template)).
			Stringer("code", CodeOf(err)).
			Msg("render failed")
	}
	return err
}
