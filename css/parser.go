package css

import (
	"errors"
	"fmt"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// ErrSyntax is reported when selector text cannot be tokenized into known
// selector parts. This is not CSS conformance checking - only the part
// grammar the builder understands is recognized.
var ErrSyntax = errors.New("malformed selector")

// Parser parses selector strings back into selector values.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new selector parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("selector-parser")}
}

// ParseSelector parses a selector string, including combinators, into the
// builder's value types. Descendant combinators normalize to a padded single
// space on re-rendering, all other combinators round-trip verbatim.
func (p *Parser) ParseSelector(text string) (Renderable, error) {
	in := parse.NewInputString(text)
	l := css.NewLexer(in)

	var (
		left        Renderable // already combined selectors to the left of cur
		join        string     // combinator between left and cur
		cur         *Selector
		pendingComb string // explicit combinator waiting for its right operand
		sawSpace    bool   // whitespace seen since last part, maybe a descendant combinator
		colons      int    // consecutive colons seen, 1 pseudo-class, 2 pseudo-element
	)

	fold := func() {
		if cur == nil {
			return
		}
		if left == nil {
			left = cur
		} else {
			left = Combine(left, join, cur)
		}
		cur = nil
	}

	// startPart is called before consuming any selector part. It decides
	// whether the part continues the current simple selector or starts the
	// right operand of a combination.
	startPart := func() {
		if cur != nil && (sawSpace || pendingComb != "") {
			comb := pendingComb
			if comb == "" {
				comb = " "
			}
			fold()
			join = comb
		}
		pendingComb = ""
		sawSpace = false
		if cur == nil {
			cur = new(Selector)
		}
	}

	// captureUntil consumes tokens verbatim until the closing token type,
	// honoring nesting of the opening type.
	captureUntil := func(open, close css.TokenType) (string, error) {
		var sb strings.Builder
		depth := 1
		for {
			tt, data := l.Next()
			switch tt {
			case css.ErrorToken:
				return "", fmt.Errorf("%w: unterminated %s at offset %d", ErrSyntax, open, in.Offset())
			case open:
				depth++
			case css.FunctionToken:
				// a function token opens its own parenthesis
				if close == css.RightParenthesisToken {
					depth++
				}
			case close:
				depth--
				if depth == 0 {
					return sb.String(), nil
				}
			}
			sb.Write(data)
		}
	}

	for {
		tt, data := l.Next()

		// a colon must be immediately followed by its name
		if colons > 0 && tt != css.IdentToken && tt != css.FunctionToken && tt != css.ColonToken {
			return nil, fmt.Errorf("%w: expected name after ':' at offset %d", ErrSyntax, in.Offset())
		}

		switch tt {
		case css.ErrorToken:
			if l.Err() != nil && l.Err() != io.EOF {
				return nil, fmt.Errorf("%w: %v", ErrSyntax, l.Err())
			}
			if pendingComb != "" {
				return nil, fmt.Errorf("%w: dangling combinator %q", ErrSyntax, pendingComb)
			}
			fold()
			if left == nil {
				return nil, fmt.Errorf("%w: empty selector", ErrSyntax)
			}
			if err := left.Err(); err != nil {
				return nil, err
			}
			p.log.Debug("Parsed selector", zap.String("text", text), zap.String("render", left.String()))
			return left, nil

		case css.WhitespaceToken:
			if cur != nil || pendingComb != "" {
				sawSpace = true
			}

		case css.CommentToken:
			// ignored

		case css.IdentToken:
			startPart()
			switch colons {
			case 0:
				cur = cur.Element(string(data))
			case 1:
				cur = cur.PseudoClass(string(data))
			default:
				cur = cur.PseudoElement(string(data))
			}
			colons = 0

		case css.FunctionToken:
			if colons == 0 {
				return nil, fmt.Errorf("%w: unexpected function %q at offset %d", ErrSyntax, data, in.Offset())
			}
			startPart()
			inner, err := captureUntil(css.LeftParenthesisToken, css.RightParenthesisToken)
			if err != nil {
				return nil, err
			}
			name := string(data) + inner + ")"
			if colons == 1 {
				cur = cur.PseudoClass(name)
			} else {
				cur = cur.PseudoElement(name)
			}
			colons = 0

		case css.HashToken:
			startPart()
			cur = cur.ID(strings.TrimPrefix(string(data), "#"))

		case css.ColonToken:
			if colons == 0 {
				startPart()
			}
			colons++
			if colons > 2 {
				return nil, fmt.Errorf("%w: too many colons at offset %d", ErrSyntax, in.Offset())
			}

		case css.LeftBracketToken:
			startPart()
			expr, err := captureUntil(css.LeftBracketToken, css.RightBracketToken)
			if err != nil {
				return nil, err
			}
			cur = cur.Attr(expr)

		case css.DelimToken:
			switch string(data) {
			case ".":
				startPart()
				ct, cdata := l.Next()
				if ct != css.IdentToken {
					return nil, fmt.Errorf("%w: expected class name after '.' at offset %d", ErrSyntax, in.Offset())
				}
				cur = cur.Class(string(cdata))
			case "*":
				startPart()
				cur = cur.Element("*")
			case ">", "+", "~":
				if cur == nil && left == nil {
					return nil, fmt.Errorf("%w: combinator %q without left operand", ErrSyntax, data)
				}
				if pendingComb != "" {
					return nil, fmt.Errorf("%w: consecutive combinators at offset %d", ErrSyntax, in.Offset())
				}
				pendingComb = string(data)
				sawSpace = false
			default:
				return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrSyntax, data, in.Offset())
			}

		default:
			return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrSyntax, data, in.Offset())
		}

		// builder violations (ordering, duplicates) surface immediately
		if cur != nil && cur.Err() != nil {
			return nil, cur.Err()
		}
	}
}
