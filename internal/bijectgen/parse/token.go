package parse

import (
	"errors"
	"go/scanner"
	"go/token"

	"github.com/mkoo/bijectgen/internal/codefmt"
)

// Token is one lexical unit of a declaration string. Lexing is delegated to
// the host scanner; positions are mapped back into the declaring file so
// diagnostics point at the original source.
type Token struct {
	Tok token.Token
	Lit string

	pos, end token.Pos
}

func (t Token) Pos() token.Pos { return t.pos }
func (t Token) End() token.Pos { return t.end }

// scanTokens tokenizes a declaration through [scanner.Scanner] on a private
// file set. base is the file position of the first byte of src in the
// declaring file.
func (p *Parser) scanTokens(src string, base token.Pos) ([]Token, error) {
	fset := token.NewFileSet()
	file := fset.AddFile("", -1, len(src))

	var errs error
	onError := func(pos token.Position, msg string) {
		at := base + token.Pos(pos.Offset)
		errs = errors.Join(errs, codefmt.Errorf(p, codefmt.Pos(at), "invalid declaration: %s", msg))
	}

	var sc scanner.Scanner
	sc.Init(file, []byte(src), onError, 0)

	var toks []Token
	for {
		pos, tok, lit := sc.Scan()
		if tok == token.EOF {
			break
		}
		if tok == token.SEMICOLON && lit == "\n" {
			// Automatically inserted semicolon. Declarations are not
			// statement-oriented, so newlines never terminate anything. An
			// explicit ";" keeps its token and fails clause parsing later.
			continue
		}

		length := len(lit)
		if length == 0 {
			length = len(tok.String())
		}
		off := file.Offset(pos)
		toks = append(toks, Token{
			Tok: tok,
			Lit: lit,
			pos: base + token.Pos(off),
			end: base + token.Pos(off+length),
		})
	}

	if errs != nil {
		return nil, errs
	}
	return toks, nil
}
