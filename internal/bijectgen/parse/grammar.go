package parse

import (
	"go/token"
	"strings"

	"github.com/mkoo/bijectgen/internal/codefmt"
)

// parseGrammar splits the declaration token stream into the two side types
// and the clause block: "TypeA, TypeB, { clauses }". On failure the stream is
// matched against the known malformed shapes instead of reporting a generic
// parse error.
func (d *Decl) parseGrammar(p *Parser, toks []Token) ([]Token, error) {
	j, ok := matchType(toks, 0)
	if ok && hasComma(toks, j) {
		k, ok := matchType(toks, j+1)
		if ok && hasComma(toks, k) {
			l, ok := matchBlock(toks, k+1)
			if ok && l == len(toks) {
				d.A = sideTypeOf(toks[0:j])
				d.B = sideTypeOf(toks[j+1 : k])
				return toks[k+2 : l-1], nil
			}
		}
	}
	return nil, d.diagnose(p, toks)
}

// matchType matches a possibly qualified type name starting at i and returns
// the index after it.
func matchType(toks []Token, i int) (int, bool) {
	if i >= len(toks) || toks[i].Tok != token.IDENT {
		return i, false
	}
	i++
	for i+1 < len(toks) && toks[i].Tok == token.PERIOD && toks[i+1].Tok == token.IDENT {
		i += 2
	}
	return i, true
}

// matchBlock matches a balanced brace block starting at i and returns the
// index after the closing brace.
func matchBlock(toks []Token, i int) (int, bool) {
	if i >= len(toks) || toks[i].Tok != token.LBRACE {
		return i, false
	}
	depth := 0
	for ; i < len(toks); i++ {
		switch toks[i].Tok {
		case token.LBRACE:
			depth++
		case token.RBRACE:
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return i, false
}

func hasComma(toks []Token, i int) bool {
	return i < len(toks) && toks[i].Tok == token.COMMA
}

func sideTypeOf(toks []Token) SideType {
	var name strings.Builder
	for _, t := range toks {
		if t.Tok == token.PERIOD {
			name.WriteByte('.')
		} else {
			name.WriteString(t.Lit)
		}
	}
	return SideType{
		Name: name.String(),
		pos:  toks[0].Pos(),
		end:  toks[len(toks)-1].End(),
	}
}

// diagnose reports the malformed declaration through the rule list. Rules are
// tried in order and the first one that recognizes the shape wins; the order
// matters because the shapes overlap, most specific first.
func (d *Decl) diagnose(p *Parser, toks []Token) error {
	for _, rule := range declRules {
		if err := rule(p, d, toks); err != nil {
			return err
		}
	}
	panic("unreachable") // the last rule always matches
}

var declRules = []func(*Parser, *Decl, []Token) error{
	ruleMissingBlock,
	ruleBlockNeedsComma,
	ruleBlockExpected,
	ruleBlockExpectedNoComma,
	ruleMissingSecondType,
	ruleSingleTypeNeedsComma,
	ruleMissingTypes,
	ruleFallback,
}

// ruleMissingBlock: "TypeA, TypeB" with nothing after the second type.
func ruleMissingBlock(p *Parser, d *Decl, toks []Token) error {
	j, ok := matchType(toks, 0)
	if !ok || !hasComma(toks, j) {
		return nil
	}
	k, ok := matchType(toks, j+1)
	if !ok || k != len(toks) {
		return nil
	}
	return codefmt.Errorf(p, d, "missing bijection declaration block after types")
}

// ruleBlockNeedsComma: "TypeA, TypeB { ... }" without the second comma.
func ruleBlockNeedsComma(p *Parser, d *Decl, toks []Token) error {
	j, ok := matchType(toks, 0)
	if !ok || !hasComma(toks, j) {
		return nil
	}
	k, ok := matchType(toks, j+1)
	if !ok || k >= len(toks) || toks[k].Tok != token.LBRACE {
		return nil
	}
	span := codefmt.Span(toks[k].Pos(), toks[len(toks)-1].End())
	return codefmt.Errorf(p, span, "declaration block must be separated with a comma")
}

// ruleBlockExpected: "TypeA, TypeB, junk" where junk is not a single brace
// block.
func ruleBlockExpected(p *Parser, d *Decl, toks []Token) error {
	j, ok := matchType(toks, 0)
	if !ok || !hasComma(toks, j) {
		return nil
	}
	k, ok := matchType(toks, j+1)
	if !ok || !hasComma(toks, k) {
		return nil
	}
	rest := toks[k+1:]
	if len(rest) == 0 {
		return codefmt.Errorf(p, d, "bijection declaration block expected")
	}
	span := codefmt.Span(rest[0].Pos(), rest[len(rest)-1].End())
	frag := tokenFrag(d, rest)
	return codefmt.Errorf(p, span, "bijection declaration block expected, found %c", frag)
}

// ruleBlockExpectedNoComma: "TypeA, TypeB junk" where junk is neither a comma
// nor a block.
func ruleBlockExpectedNoComma(p *Parser, d *Decl, toks []Token) error {
	j, ok := matchType(toks, 0)
	if !ok || !hasComma(toks, j) {
		return nil
	}
	k, ok := matchType(toks, j+1)
	if !ok || k >= len(toks) {
		return nil
	}
	rest := toks[k:]
	span := codefmt.Span(rest[0].Pos(), rest[len(rest)-1].End())
	frag := tokenFrag(d, rest)
	return codefmt.Errorf(p, span, "bijection declaration block expected, found %c", frag)
}

// ruleMissingSecondType: "TypeA" or "TypeA," or "TypeA, { ... }". A block
// directly after the first type falls through to the next rule instead, so
// the missing comma wins over the missing type.
func ruleMissingSecondType(p *Parser, d *Decl, toks []Token) error {
	j, ok := matchType(toks, 0)
	if !ok {
		return nil
	}
	if j < len(toks) && toks[j].Tok == token.LBRACE {
		return nil
	}
	return codefmt.Errorf(p, d, "missing second type")
}

// ruleSingleTypeNeedsComma: "TypeA { ... }".
func ruleSingleTypeNeedsComma(p *Parser, d *Decl, toks []Token) error {
	j, ok := matchType(toks, 0)
	if !ok || j >= len(toks) || toks[j].Tok != token.LBRACE {
		return nil
	}
	span := codefmt.Span(toks[j].Pos(), toks[len(toks)-1].End())
	return codefmt.Errorf(p, span, "declaration block must be separated with a comma")
}

// ruleMissingTypes: the declaration starts with the block.
func ruleMissingTypes(p *Parser, d *Decl, toks []Token) error {
	if len(toks) == 0 || toks[0].Tok != token.LBRACE {
		return nil
	}
	return codefmt.Errorf(p, d, "missing types before declaration block")
}

func ruleFallback(p *Parser, d *Decl, toks []Token) error {
	return codefmt.Errorf(p, d, `invalid declaration; expected "TypeA, TypeB, { clauses }"`)
}

// tokenFrag cuts the source text spanning a token run.
func tokenFrag(d *Decl, toks []Token) fragment {
	return fragment(d.frag(toks[0].Pos(), toks[len(toks)-1].End()))
}

type fragment string

func (f fragment) Frag() string { return string(f) }
