package json

import (
	"unicode/utf16"
	"unicode/utf8"
)

// scanner tokenizes JSON text in place
type scanner struct {
	data []byte
	pos  int
}

func (s *scanner) skipWS() {
	for s.pos < len(s.data) {
		switch s.data[s.pos] {
		case ' ', '\n', '\r', '\t':
			s.pos++
		default:
			return
		}
	}
}

func (s *scanner) syntaxError(msg string) error {
	return &SyntaxError{Offset: s.pos, Msg: msg}
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.data)
}

func (s *scanner) match(token string) bool {
	end := s.pos + len(token)
	if end > len(s.data) {
		return false
	}
	if string(s.data[s.pos:end]) != token {
		return false
	}
	s.pos = end
	return true
}

// expect consumes supplied structural byte after optional whitespace
func (s *scanner) expect(c byte) error {
	s.skipWS()
	if s.eof() {
		return s.syntaxError("unexpected end of input")
	}
	if s.data[s.pos] != c {
		return s.syntaxError("expected '" + string(c) + "'")
	}
	s.pos++
	return nil
}

func (s *scanner) parseString() (string, error) {
	if s.eof() || s.data[s.pos] != '"' {
		return "", s.syntaxError("expected string")
	}
	s.pos++
	start := s.pos
	escaped := false
	hasEscape := false
	for i := start; i < len(s.data); i++ {
		c := s.data[i]
		if c == '"' && !escaped {
			s.pos = i + 1
			if !hasEscape {
				return string(s.data[start:i]), nil
			}
			value, err := unescapeString(s.data[start:i])
			if err != nil {
				s.pos = start
				return "", s.syntaxError(err.Error())
			}
			return value, nil
		}
		if c == '\\' {
			escaped = !escaped
			hasEscape = true
			continue
		}
		if c < 0x20 {
			s.pos = i
			return "", s.syntaxError("invalid control character in string")
		}
		escaped = false
	}
	return "", s.syntaxError("unterminated string")
}

// parseNumber returns raw number text
func (s *scanner) parseNumber() (string, error) {
	start := s.pos
	if s.pos < len(s.data) && s.data[s.pos] == '-' {
		s.pos++
	}
	if s.pos < len(s.data) && s.data[s.pos] == '0' {
		s.pos++
		if s.pos < len(s.data) && s.data[s.pos] >= '0' && s.data[s.pos] <= '9' {
			return "", s.syntaxError("invalid leading zero")
		}
	} else if s.digits() == 0 {
		return "", s.syntaxError("invalid number")
	}
	if s.pos < len(s.data) && s.data[s.pos] == '.' {
		s.pos++
		if s.digits() == 0 {
			return "", s.syntaxError("invalid fraction")
		}
	}
	if s.pos < len(s.data) && (s.data[s.pos] == 'e' || s.data[s.pos] == 'E') {
		s.pos++
		if s.pos < len(s.data) && (s.data[s.pos] == '+' || s.data[s.pos] == '-') {
			s.pos++
		}
		if s.digits() == 0 {
			return "", s.syntaxError("invalid exponent")
		}
	}
	return string(s.data[start:s.pos]), nil
}

func (s *scanner) digits() int {
	start := s.pos
	for s.pos < len(s.data) && s.data[s.pos] >= '0' && s.data[s.pos] <= '9' {
		s.pos++
	}
	return s.pos - start
}

type scanError string

func (e scanError) Error() string { return string(e) }

func unescapeString(raw []byte) (string, error) {
	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' {
			out = append(out, c)
			continue
		}
		i++
		if i >= len(raw) {
			return "", scanError("invalid escape sequence")
		}
		switch raw[i] {
		case '"', '\\', '/':
			out = append(out, raw[i])
		case 'b':
			out = append(out, '\b')
		case 'f':
			out = append(out, '\f')
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case 'u':
			if i+4 >= len(raw) {
				return "", scanError("invalid unicode escape")
			}
			r, ok := parseHex4(raw[i+1 : i+5])
			if !ok {
				return "", scanError("invalid unicode escape")
			}
			i += 4
			if utf16.IsSurrogate(r) {
				if i+6 >= len(raw) || raw[i+1] != '\\' || raw[i+2] != 'u' {
					return "", scanError("invalid surrogate pair")
				}
				r2, ok := parseHex4(raw[i+3 : i+7])
				if !ok {
					return "", scanError("invalid surrogate pair")
				}
				decoded := utf16.DecodeRune(r, r2)
				if decoded == utf8.RuneError {
					return "", scanError("invalid surrogate pair")
				}
				out = utf8.AppendRune(out, decoded)
				i += 6
				continue
			}
			out = utf8.AppendRune(out, r)
		default:
			return "", scanError("invalid escape character " + string(raw[i]))
		}
	}
	return string(out), nil
}

func parseHex4(b []byte) (rune, bool) {
	if len(b) != 4 {
		return 0, false
	}
	var v rune
	for i := 0; i < 4; i++ {
		c := b[i]
		var d rune
		switch {
		case c >= '0' && c <= '9':
			d = rune(c - '0')
		case c >= 'a' && c <= 'f':
			d = rune(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = rune(c-'A') + 10
		default:
			return 0, false
		}
		v = (v << 4) | d
	}
	return v, true
}
