package parse

import (
	"errors"
	goparser "go/parser"
	"go/scanner"
	"go/token"

	"github.com/mkoo/bijectgen/internal/codefmt"
)

// normalize builds the two arm-lists from the clause block in lock step: each
// clause appends exactly one forward arm and one backward arm, so the two
// directions can never drift apart in count or order.
func (d *Decl) normalize(p *Parser, block []Token) error {
	segs, err := d.splitClauses(p, block)
	if err != nil {
		return err
	}

	for _, seg := range segs {
		cl, err := d.parseClause(p, seg)
		if err != nil {
			// A malformed clause aborts the whole declaration. There is no
			// recovery mode: either every clause compiles or none does.
			return err
		}

		d.Clauses = append(d.Clauses, cl)
		d.Forward = append(d.Forward, Arm{Match: cl.Left, Build: cl.Right})
		d.Backward = append(d.Backward, Arm{Match: cl.Right, Build: cl.Left})
	}

	if len(d.Forward) != len(d.Clauses) || len(d.Backward) != len(d.Clauses) {
		panic("arm-lists out of step")
	}
	return nil
}

// splitClauses cuts the block at top-level commas. A trailing comma is
// allowed and produces no segment; a comma with nothing before it is an
// error.
func (d *Decl) splitClauses(p *Parser, block []Token) ([][]Token, error) {
	var segs [][]Token
	depth := 0
	start := 0

	for i, t := range block {
		switch t.Tok {
		case token.LBRACE, token.LBRACK, token.LPAREN:
			depth++
		case token.RBRACE, token.RBRACK, token.RPAREN:
			depth--
		case token.COMMA:
			if depth != 0 {
				continue
			}
			seg := block[start:i]
			if len(seg) == 0 {
				return nil, codefmt.Errorf(p, t, "empty bijection clause")
			}
			segs = append(segs, seg)
			start = i + 1
		}
	}

	if start < len(block) {
		segs = append(segs, block[start:])
	}
	return segs, nil
}

// parseClause compiles one "left => right" clause. The separator is the "="
// and ">" tokens with no space in between, at the top bracket level.
func (d *Decl) parseClause(p *Parser, seg []Token) (Clause, error) {
	sep := -1
	depth := 0

	for i, t := range seg {
		switch t.Tok {
		case token.LBRACE, token.LBRACK, token.LPAREN:
			depth++
		case token.RBRACE, token.RBRACK, token.RPAREN:
			depth--
		case token.ASSIGN:
			if depth != 0 {
				continue
			}
			if i+1 >= len(seg) || seg[i+1].Tok != token.GTR || seg[i+1].Pos() != t.End() {
				// A lone "=" is the classic typo for "=>".
				return Clause{}, d.clauseError(p, seg)
			}
			if sep != -1 {
				return Clause{}, d.clauseError(p, seg)
			}
			sep = i
		}
	}

	if sep == -1 {
		return Clause{}, d.clauseError(p, seg)
	}

	left := seg[:sep]
	right := seg[sep+2:]
	if len(left) == 0 || len(right) == 0 {
		return Clause{}, d.clauseError(p, seg)
	}

	l, err := d.parseShape(p, left)
	if err != nil {
		return Clause{}, err
	}
	r, err := d.parseShape(p, right)
	if err != nil {
		return Clause{}, err
	}

	pos, end := seg[0].Pos(), seg[len(seg)-1].End()
	return Clause{
		Left:  l,
		Right: r,
		frag:  d.frag(pos, end),
		pos:   pos,
		end:   end,
	}, nil
}

// clauseError reports a malformed clause. The fragment is re-parsed through
// the host expression parser solely to surface a more specific underlying
// reason under the uniform message.
func (d *Decl) clauseError(p *Parser, seg []Token) error {
	pos, end := seg[0].Pos(), seg[len(seg)-1].End()
	frag := d.frag(pos, end)
	span := codefmt.Span(pos, end)

	if _, perr := goparser.ParseExpr(frag); perr != nil {
		var list scanner.ErrorList
		if errors.As(perr, &list) && len(list) > 0 {
			return codefmt.Errorf(p, span, "invalid bijection pattern: %s\n\t%s", frag, list[0].Msg)
		}
	}
	return codefmt.Errorf(p, span, "invalid bijection pattern: %s", frag)
}
