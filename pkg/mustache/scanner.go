package mustache

import "strings"

// tagKind classifies a tag by its sigil.
type tagKind int

const (
	tagVariable tagKind = iota
	tagUnescaped
	tagSectionOpen
	tagInvertedOpen
	tagSectionClose
	tagPartial
	tagComment
	tagDelimiters
)

// tag is a parsed delimiter-bounded instruction.
type tag struct {
	kind tagKind
	// name is the trimmed tag name. For tagDelimiters it is the raw
	// inner text including its '=' markers; for tagComment it is empty.
	name string
	// offset of the opening delimiter in the template, for diagnostics.
	offset int
}

// scanner carves template text into literal spans and tags using the
// delimiter pair currently in force. The render engine rewinds pos to
// replay a section body and swaps delim on delimiter-change tags;
// neither ever changes mid-tag.
type scanner struct {
	src   string
	pos   int
	delim Delimiters
	cfg   *Config
}

func newScanner(src string, delim Delimiters, cfg *Config) *scanner {
	return &scanner{
		src:   src,
		delim: delim,
		cfg:   cfg,
	}
}

// next returns the literal span up to the next open delimiter,
// followed by the parsed tag. A nil tag signals end of input, with the
// trailing text in the literal. The literal is valid even when an
// error is returned, so output written before the offending tag is
// preserved.
func (s *scanner) next() (string, *tag, error) {
	open := strings.Index(s.src[s.pos:], s.delim.Open)
	if open < 0 {
		literal := s.src[s.pos:]
		s.pos = len(s.src)
		return literal, nil, nil
	}

	start := s.pos + open
	literal := s.src[s.pos:start]

	innerStart := start + len(s.delim.Open)
	end := strings.Index(s.src[innerStart:], s.delim.Close)
	if end < 0 {
		s.pos = len(s.src)
		return literal, nil, s.errorAt(CodeUnexpectedEnd, "unterminated tag", start)
	}
	inner := s.src[innerStart : innerStart+end]
	s.pos = innerStart + end + len(s.delim.Close)

	tg := &tag{offset: start}

	var sigil byte
	if inner != "" {
		sigil = inner[0]
	}

	switch sigil {
	case '!':
		tg.kind = tagComment
		return literal, tg, nil
	case '=':
		tg.kind = tagDelimiters
		tg.name = inner
		return literal, tg, nil
	case '{':
		// Long unescape form. With a close delimiter made of braces
		// the matching '}' sits just past the close delimiter; with
		// reassigned delimiters it must end the inner text.
		if strings.Trim(s.delim.Close, "}") == "" {
			if s.pos >= len(s.src) || s.src[s.pos] != '}' {
				return literal, nil, s.errorAt(CodeBadUnescapeTag, "unbalanced unescape braces", start)
			}
			s.pos++
		} else {
			if !strings.HasSuffix(inner, "}") {
				return literal, nil, s.errorAt(CodeBadUnescapeTag, "unbalanced unescape braces", start)
			}
			inner = inner[:len(inner)-1]
		}
		tg.kind = tagUnescaped
		tg.name = inner[1:]
	case '&':
		tg.kind = tagUnescaped
		tg.name = inner[1:]
	case '#':
		tg.kind = tagSectionOpen
		tg.name = inner[1:]
	case '^':
		tg.kind = tagInvertedOpen
		tg.name = inner[1:]
	case '/':
		tg.kind = tagSectionClose
		tg.name = inner[1:]
	case '>':
		tg.kind = tagPartial
		tg.name = inner[1:]
	default:
		tg.kind = tagVariable
		tg.name = inner
	}

	tg.name = strings.TrimSpace(tg.name)
	if tg.name == "" && !s.cfg.AllowEmptyTag {
		return literal, nil, s.errorAt(CodeEmptyTag, "empty tag name", start)
	}
	if len(tg.name) > s.cfg.MaxTagLength {
		return literal, nil, s.errorAt(CodeTagTooLong, "tag name exceeds length limit", start)
	}

	return literal, tg, nil
}

func (s *scanner) errorAt(code Code, message string, offset int) error {
	line, column := position(s.src, offset)
	return newRenderErrorAt(code, message, line, column)
}

// position converts a byte offset into 1-based line and column
// numbers.
func position(src string, offset int) (int, int) {
	if offset > len(src) {
		offset = len(src)
	}
	line := 1 + strings.Count(src[:offset], "\n")
	column := offset - strings.LastIndex(src[:offset], "\n")
	return line, column
}
