package widget

import (
	"strconv"
	"strings"
)

// ParsePropertyString parses the inline declarative property grammar used by
// data-properties attributes:
//
//	checked: true, label: 'Stay', count: 3
//
// Pairs are comma-separated key: value entries. Values are the literals true
// and false, numbers, or quoted strings (single or double quotes, backslash
// escapes); quoted strings may contain commas and colons. Unquoted words are
// not strings and fail with MalformedPropertyString, as does any other
// syntax error. An empty or blank input yields an empty map. When a key
// repeats, the last pair wins.
func ParsePropertyString(s string) (map[string]any, error) {
	p := &propParser{input: s}
	return p.parse()
}

type propParser struct {
	input string
	pos   int
}

func (p *propParser) parse() (map[string]any, error) {
	props := make(map[string]any)
	p.skipSpace()
	if p.eof() {
		return props, nil
	}
	for {
		key, err := p.parseKey()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if !p.consume(':') {
			return nil, errMalformedPropertyString("character %d: expected ':' after key %q", p.pos, key)
		}
		p.skipSpace()
		value, err := p.parseValue(key)
		if err != nil {
			return nil, err
		}
		props[key] = value

		p.skipSpace()
		if p.eof() {
			return props, nil
		}
		if !p.consume(',') {
			return nil, errMalformedPropertyString("character %d: expected ',' after value for %q", p.pos, key)
		}
		p.skipSpace()
		if p.eof() {
			// Trailing comma.
			return props, nil
		}
	}
}

func (p *propParser) parseKey() (string, error) {
	start := p.pos
	for !p.eof() {
		c := p.input[p.pos]
		if isKeyStart(c) || (p.pos > start && isKeyRest(c)) {
			p.pos++
			continue
		}
		break
	}
	if p.pos == start {
		return "", errMalformedPropertyString("character %d: expected a property name", p.pos)
	}
	return p.input[start:p.pos], nil
}

func (p *propParser) parseValue(key string) (any, error) {
	if p.eof() {
		return nil, errMalformedPropertyString("character %d: missing value for %q", p.pos, key)
	}

	if quote := p.input[p.pos]; quote == '\'' || quote == '"' {
		return p.parseQuoted(key, quote)
	}

	start := p.pos
	for !p.eof() && p.input[p.pos] != ',' {
		p.pos++
	}
	bare := strings.TrimSpace(p.input[start:p.pos])
	switch {
	case bare == "":
		return nil, errMalformedPropertyString("character %d: missing value for %q", start, key)
	case bare == "true":
		return true, nil
	case bare == "false":
		return false, nil
	}
	if number, err := strconv.ParseFloat(bare, 64); err == nil {
		return number, nil
	}
	return nil, errMalformedPropertyString("character %d: %q is not a boolean, number, or quoted string", start, bare)
}

func (p *propParser) parseQuoted(key string, quote byte) (any, error) {
	start := p.pos
	p.pos++ // opening quote
	var sb strings.Builder
	for !p.eof() {
		c := p.input[p.pos]
		switch c {
		case quote:
			p.pos++
			return sb.String(), nil
		case '\\':
			p.pos++
			if p.eof() {
				return nil, errMalformedPropertyString("character %d: dangling escape in value for %q", p.pos, key)
			}
			sb.WriteByte(p.input[p.pos])
			p.pos++
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}
	return nil, errMalformedPropertyString("character %d: unterminated string for %q", start, key)
}

func (p *propParser) skipSpace() {
	for !p.eof() {
		switch p.input[p.pos] {
		case ' ', '\t', '\n', '\r', '\f':
			p.pos++
		default:
			return
		}
	}
}

func (p *propParser) consume(c byte) bool {
	if !p.eof() && p.input[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *propParser) eof() bool {
	return p.pos >= len(p.input)
}

func isKeyStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isKeyRest(c byte) bool {
	return isKeyStart(c) || c >= '0' && c <= '9' || c == '-'
}
