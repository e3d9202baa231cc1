package mustache

import (
	"io"
	"strings"
)

// htmlEscaper replaces the markup-significant characters with their
// safe textual equivalents. Other bytes pass through unchanged.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// sink unifies the ways a data model can supply write behavior into a
// single "emit text" / "emit tag value" pair. Which capabilities apply
// was resolved before rendering started:
//
//   - writeValue prefers Get for producing the value, escapes it when
//     requested and hands the bytes to writeText; a Put-only model is
//     delegated to entirely, including escaping.
//   - writeText goes through Emit when supplied, else writes directly
//     to the destination, escaping by default when requested.
type sink struct {
	caps capabilities
	out  io.Writer
}

// writeText emits text, escaped or verbatim. Literal template spans
// always arrive with escape false.
func (s *sink) writeText(text string, escape bool) error {
	if text == "" {
		return nil
	}

	if s.caps.emit != nil {
		return s.caps.emit.Emit(s.out, text, escape)
	}

	var err error
	if escape {
		_, err = htmlEscaper.WriteString(s.out, text)
	} else {
		_, err = io.WriteString(s.out, text)
	}
	if err != nil {
		return newSystemError(err)
	}
	return nil
}

// writeValue emits the value of a tag by name.
func (s *sink) writeValue(name string, escape bool) error {
	if s.caps.get != nil {
		sb, err := s.caps.get.Get(name)
		if err != nil {
			return err
		}
		defer sb.release()

		value := ""
		if sb != nil {
			value = sb.Value
		}
		return s.writeText(value, escape)
	}

	return s.caps.put.Put(name, escape, s.out)
}
