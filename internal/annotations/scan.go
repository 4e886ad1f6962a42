package annotations

import (
	"regexp"
	"strings"
)

// RawInvocation is one !Name directive lifted from a comment block. It is
// handed straight to the evaluator and not retained afterwards.
type RawInvocation struct {
	Name    string
	ArgText string
	Line    int // 0-based offset within the comment block
}

// A directive is '!' immediately followed by an identifier. A bare '!' with
// no identifier is simply not a directive.
var directivePattern = regexp.MustCompile(`!([A-Za-z_][A-Za-z0-9_]*)`)

// ScanComment extracts every directive from a comment block, in source
// order. The argument text of each directive runs from the end of its
// identifier to the end of the line, or to the comment terminator if that
// comes first. A block with no directives yields an empty slice.
func ScanComment(comment string) []RawInvocation {
	var out []RawInvocation
	for i, line := range strings.Split(comment, "\n") {
		loc := directivePattern.FindStringSubmatchIndex(line)
		if loc == nil {
			continue
		}
		args := line[loc[1]:]
		if end := strings.Index(args, "*/"); end >= 0 {
			args = args[:end]
		}
		out = append(out, RawInvocation{
			Name:    line[loc[2]:loc[3]],
			ArgText: strings.TrimSpace(args),
			Line:    i,
		})
	}
	return out
}
