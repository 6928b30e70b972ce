package types

import (
	"strings"

	"github.com/pkg/errors"
)

// TypeTag is a Move type
type TypeTag struct {
	Bool    *Unit
	U8      *Unit
	U64     *Unit
	U128    *Unit
	Address *Unit
	Signer  *Unit
	Vector  *TypeTag
	Struct  *StructTag
	U16     *Unit
	U32     *Unit
	U256    *Unit
}

func (TypeTag) IsBcsEnum() {}

// StructTag is a fully qualified Move struct type
type StructTag struct {
	Address    Address   `json:"address"`
	Module     string    `json:"module"`
	Name       string    `json:"name"`
	TypeParams []TypeTag `json:"typeParams"`
}

var primitiveTags = map[string]func() TypeTag{
	"bool":    func() TypeTag { return TypeTag{Bool: &Unit{}} },
	"u8":      func() TypeTag { return TypeTag{U8: &Unit{}} },
	"u16":     func() TypeTag { return TypeTag{U16: &Unit{}} },
	"u32":     func() TypeTag { return TypeTag{U32: &Unit{}} },
	"u64":     func() TypeTag { return TypeTag{U64: &Unit{}} },
	"u128":    func() TypeTag { return TypeTag{U128: &Unit{}} },
	"u256":    func() TypeTag { return TypeTag{U256: &Unit{}} },
	"address": func() TypeTag { return TypeTag{Address: &Unit{}} },
	"signer":  func() TypeTag { return TypeTag{Signer: &Unit{}} },
}

// String returns the canonical text form, e.g. vector<0x2::sui::SUI>
func (t TypeTag) String() string {
	switch {
	case t.Bool != nil:
		return "bool"
	case t.U8 != nil:
		return "u8"
	case t.U16 != nil:
		return "u16"
	case t.U32 != nil:
		return "u32"
	case t.U64 != nil:
		return "u64"
	case t.U128 != nil:
		return "u128"
	case t.U256 != nil:
		return "u256"
	case t.Address != nil:
		return "address"
	case t.Signer != nil:
		return "signer"
	case t.Vector != nil:
		return "vector<" + t.Vector.String() + ">"
	case t.Struct != nil:
		return t.Struct.String()
	default:
		return ""
	}
}

// String returns the canonical text form, e.g. 0x2::coin::Coin<0x2::sui::SUI>
func (s StructTag) String() string {
	var b strings.Builder
	b.WriteString(s.Address.ShortString())
	b.WriteString("::")
	b.WriteString(s.Module)
	b.WriteString("::")
	b.WriteString(s.Name)

	if len(s.TypeParams) > 0 {
		b.WriteString("<")
		for i, p := range s.TypeParams {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.String())
		}
		b.WriteString(">")
	}

	return b.String()
}

func (t TypeTag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TypeTag) UnmarshalText(text []byte) error {
	tag, err := ParseTypeTag(string(text))
	if err != nil {
		return err
	}
	*t = tag
	return nil
}

func (s StructTag) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *StructTag) UnmarshalText(text []byte) error {
	tag, err := ParseStructTag(string(text))
	if err != nil {
		return err
	}
	*s = tag
	return nil
}

// ParseTypeTag parses the text form of a Move type
func ParseTypeTag(s string) (TypeTag, error) {
	p := typeParser{input: s}
	tag, err := p.typeTag()
	if err != nil {
		return TypeTag{}, err
	}

	p.skipSpaces()
	if p.pos != len(p.input) {
		return TypeTag{}, errors.Errorf("unexpected %q in type %q", p.input[p.pos:], s)
	}

	return tag, nil
}

// ParseStructTag parses the text form of a Move struct type
func ParseStructTag(s string) (StructTag, error) {
	tag, err := ParseTypeTag(s)
	if err != nil {
		return StructTag{}, err
	}

	if tag.Struct == nil {
		return StructTag{}, errors.Errorf("type %q is not a struct", s)
	}

	return *tag.Struct, nil
}

type typeParser struct {
	input string
	pos   int
}

func (p *typeParser) skipSpaces() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}

func (p *typeParser) ident() string {
	p.skipSpaces()
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c == ':' || c == '<' || c == '>' || c == ',' || c == ' ' {
			break
		}
		p.pos++
	}
	return p.input[start:p.pos]
}

func (p *typeParser) consume(token string) bool {
	p.skipSpaces()
	if strings.HasPrefix(p.input[p.pos:], token) {
		p.pos += len(token)
		return true
	}
	return false
}

func (p *typeParser) typeTag() (TypeTag, error) {
	name := p.ident()
	if name == "" {
		return TypeTag{}, errors.Errorf("expected type at offset %d of %q", p.pos, p.input)
	}

	if name == "vector" {
		if !p.consume("<") {
			return TypeTag{}, errors.Errorf("expected '<' after vector in %q", p.input)
		}
		inner, err := p.typeTag()
		if err != nil {
			return TypeTag{}, err
		}
		if !p.consume(">") {
			return TypeTag{}, errors.Errorf("expected '>' closing vector in %q", p.input)
		}
		return TypeTag{Vector: &inner}, nil
	}

	if mk, ok := primitiveTags[name]; ok {
		return mk(), nil
	}

	addr, err := ParseAddress(name)
	if err != nil {
		return TypeTag{}, err
	}

	if !p.consume("::") {
		return TypeTag{}, errors.Errorf("expected '::' after address in %q", p.input)
	}
	module := p.ident()
	if !p.consume("::") {
		return TypeTag{}, errors.Errorf("expected '::' after module in %q", p.input)
	}
	structName := p.ident()
	if module == "" || structName == "" {
		return TypeTag{}, errors.Errorf("incomplete struct type %q", p.input)
	}

	tag := StructTag{Address: addr, Module: module, Name: structName, TypeParams: []TypeTag{}}
	if p.consume("<") {
		for {
			param, err := p.typeTag()
			if err != nil {
				return TypeTag{}, err
			}
			tag.TypeParams = append(tag.TypeParams, param)

			if p.consume(",") {
				continue
			}
			if p.consume(">") {
				break
			}
			return TypeTag{}, errors.Errorf("expected ',' or '>' in %q", p.input)
		}
	}

	return TypeTag{Struct: &tag}, nil
}
