package schema

import (
	"strings"

	"github.com/vango-dev/querido/internal/errors"
)

// Selection is one field selected within a tagged literal's body, after the
// literal's raw text has been parsed but before it has been validated
// against a Schema.
type Selection struct {
	Field     string
	Args      map[string]string
	Selection []Selection
}

// ParseSelection parses a literal body of the form:
//
//	Post {
//	  title
//	  author { name }
//	  comments(first: "10") { body }
//	}
//
// and returns the root type name and the top-level selection set.
func ParseSelection(body string) (rootType string, set []Selection, err error) {
	p := &selectionParser{src: body}
	p.skipSpace()
	rootType = p.readIdent()
	if rootType == "" {
		return "", nil, errors.New("Q101").WithDetail("expected a type name at the start of the literal")
	}
	p.skipSpace()
	if !p.consume('{') {
		return "", nil, errors.New("Q101").WithDetail("expected '{' after " + rootType)
	}
	set, err = p.parseSet()
	if err != nil {
		return "", nil, err
	}
	return rootType, set, nil
}

type selectionParser struct {
	src string
	pos int
}

func (p *selectionParser) skipSpace() {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == ',' {
			p.pos++
			continue
		}
		break
	}
}

func (p *selectionParser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *selectionParser) consume(c byte) bool {
	p.skipSpace()
	if p.peek() == c {
		p.pos++
		return true
	}
	return false
}

func (p *selectionParser) readIdent() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func (p *selectionParser) parseSet() ([]Selection, error) {
	var selections []Selection
	for {
		p.skipSpace()
		if p.consume('}') {
			return selections, nil
		}
		if p.pos >= len(p.src) {
			return nil, errors.New("Q101").WithDetail("unterminated selection set")
		}

		name := p.readIdent()
		if name == "" {
			return nil, errors.New("Q101").WithDetail("expected a field name")
		}

		sel := Selection{Field: name}

		p.skipSpace()
		if p.consume('(') {
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			sel.Args = args
		}

		p.skipSpace()
		if p.peek() == '{' {
			p.pos++
			children, err := p.parseSet()
			if err != nil {
				return nil, err
			}
			sel.Selection = children
		}

		selections = append(selections, sel)
	}
}

func (p *selectionParser) parseArgs() (map[string]string, error) {
	args := make(map[string]string)
	for {
		p.skipSpace()
		if p.consume(')') {
			return args, nil
		}
		name := p.readIdent()
		if name == "" {
			return nil, errors.New("Q101").WithDetail("expected an argument name")
		}
		if !p.consume(':') {
			return nil, errors.New("Q101").WithDetail("expected ':' after argument " + name)
		}
		p.skipSpace()
		value, err := p.readStringValue()
		if err != nil {
			return nil, err
		}
		args[name] = value
	}
}

func (p *selectionParser) readStringValue() (string, error) {
	if p.peek() != '"' {
		return "", errors.New("Q101").WithDetail("expected a quoted argument value")
	}
	p.pos++
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] != '"' {
		p.pos++
	}
	if p.pos >= len(p.src) {
		return "", errors.New("Q101").WithDetail("unterminated string argument value")
	}
	value := p.src[start:p.pos]
	p.pos++
	return strings.TrimSpace(value), nil
}
