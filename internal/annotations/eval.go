package annotations

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// The argument micro-language reduces to a closed literal-list grammar:
// a list of parameters, each an optional key followed by a scalar or a
// one-level nested list. Nothing else is evaluable, which is the point.

type listLit struct {
	Items []*paramLit `parser:"'[' ( @@ ( ',' @@ )* )? ']'"`
}

type paramLit struct {
	Key   *string   `parser:"( @Atom ':' )?"`
	Value *valueLit `parser:"@@"`
}

type valueLit struct {
	List *listLit `parser:"@@"`
	Atom *string  `parser:"| @Atom"`
}

var paramLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Punct", Pattern: `[\[\],:]`},
	{Name: "Atom", Pattern: `[^\[\],:\s]+`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var listParser = participle.MustBuild[listLit](
	participle.Lexer(paramLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// Separator punctuation sheds surrounding whitespace before evaluation.
var sepPattern = regexp.MustCompile(`\s*([(),:])\s*`)

// EvalParams turns a directive's argument text into a ParameterList.
//
// The text is wrapped in one implicit outer grouping, quoted literals are
// pulled out and replaced with positional placeholders so no later rewrite
// can touch their content, separator punctuation is normalized, grouping
// punctuation is rewritten into list-literal syntax, and the result is
// evaluated through the restricted grammar above. Every bareword that is not
// a placeholder is an implicit string literal, except that true/false and
// numeric forms coerce to boolean and numeric values.
//
// Failure is a *ParseError; the caller fills in directive and location
// context.
func EvalParams(argText string) (*ParameterList, error) {
	text := "(" + argText + ")"

	text, literals, err := extractLiterals(text)
	if err != nil {
		return nil, err
	}

	text = sepPattern.ReplaceAllString(text, "$1")
	text = strings.NewReplacer("(", "[", ")", "]").Replace(text)

	root, perr := listParser.ParseString("", text)
	if perr != nil {
		return nil, &ParseError{
			Msg: fmt.Sprintf("argument text does not reduce to a literal list: %v", perr),
		}
	}

	return buildParams(root, literals)
}

// extractLiterals replaces every quoted string with a placeholder and
// returns the literal contents in order of appearance. Single and double
// quotes are equivalent; a backslash immediately before the closing quote
// escapes it.
func extractLiterals(text string) (string, []string, error) {
	var out strings.Builder
	var literals []string
	for i := 0; i < len(text); {
		c := text[i]
		if c != '\'' && c != '"' {
			out.WriteByte(c)
			i++
			continue
		}
		quote := c
		i++
		var content strings.Builder
		closed := false
		for i < len(text) {
			ch := text[i]
			if ch == '\\' && i+1 < len(text) && text[i+1] == quote {
				content.WriteByte(quote)
				i += 2
				continue
			}
			if ch == quote {
				i++
				closed = true
				break
			}
			content.WriteByte(ch)
			i++
		}
		if !closed {
			return "", nil, &ParseError{Msg: "unterminated string literal"}
		}
		fmt.Fprintf(&out, "\x00%d\x00", len(literals))
		literals = append(literals, content.String())
	}
	return out.String(), literals, nil
}

func buildParams(root *listLit, literals []string) (*ParameterList, error) {
	params := NewParameterList()
	for _, item := range root.Items {
		val, err := buildValue(item.Value, literals, 0)
		if err != nil {
			return nil, err
		}
		if item.Key != nil {
			// Duplicate keys overwrite; last one wins.
			params.Keyed[keyName(*item.Key, literals)] = val
		} else {
			params.Positional = append(params.Positional, val)
		}
	}
	return params, nil
}

func buildValue(v *valueLit, literals []string, depth int) (Value, error) {
	if v.List == nil {
		return atomValue(*v.Atom, literals), nil
	}
	// The grammar supports exactly one level of grouping; deeper nesting
	// does not round-trip and is rejected rather than half-supported.
	if depth >= 1 {
		return Value{}, &ParseError{Msg: "nested lists deeper than one level are not supported"}
	}
	items := make([]Value, 0, len(v.List.Items))
	for _, item := range v.List.Items {
		if item.Key != nil {
			return Value{}, &ParseError{Msg: "key/value pairs are not allowed inside nested lists"}
		}
		iv, err := buildValue(item.Value, literals, depth+1)
		if err != nil {
			return Value{}, err
		}
		items = append(items, iv)
	}
	return NewList(items...), nil
}

func atomValue(atom string, literals []string) Value {
	if content, ok := literalFor(atom, literals); ok {
		return NewString(content)
	}
	switch atom {
	case "true":
		return NewBool(true)
	case "false":
		return NewBool(false)
	}
	if i, err := strconv.ParseInt(atom, 10, 64); err == nil {
		return NewInt(i)
	}
	if f, err := strconv.ParseFloat(atom, 64); err == nil {
		return NewFloat(f)
	}
	return NewString(atom)
}

func keyName(atom string, literals []string) string {
	if content, ok := literalFor(atom, literals); ok {
		return strings.ToLower(content)
	}
	return strings.ToLower(atom)
}

func literalFor(atom string, literals []string) (string, bool) {
	if len(atom) < 3 || atom[0] != '\x00' || atom[len(atom)-1] != '\x00' {
		return "", false
	}
	n, err := strconv.Atoi(atom[1 : len(atom)-1])
	if err != nil || n < 0 || n >= len(literals) {
		return "", false
	}
	return literals[n], true
}
