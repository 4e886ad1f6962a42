// Package source is the reflection collaborator for Go source trees: it
// walks directories, parses files, and derives the target metadata (kind,
// declaring class, element name, file, line, ancestry) that annotation
// expansion consumes. The annotation core itself never inspects types.
package source

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/annexlang/annex/internal/annotations"
)

// Element pairs one annotatable program element with its comment block
type Element struct {
	Target  annotations.Target
	Comment string
}

// Scanner lifts annotation targets out of Go source trees
type Scanner struct {
	fset *token.FileSet
}

// NewScanner creates a scanner with a fresh fileset
func NewScanner() *Scanner {
	return &Scanner{fset: token.NewFileSet()}
}

// ScanDirectories expands Go-style directory patterns ("./..." recurses)
// into the set of directories containing Go files, in stable order
func (s *Scanner) ScanDirectories(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var dirs []string
	add := func(dir string) {
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	for _, pattern := range patterns {
		recursive := strings.HasSuffix(pattern, "/...")
		base := strings.TrimSuffix(pattern, "/...")
		if base == "" {
			base = "."
		}
		abs, err := filepath.Abs(base)
		if err != nil {
			return nil, fmt.Errorf("resolve path %s: %w", base, err)
		}
		if !recursive {
			if hasGoFiles(abs) {
				add(abs)
			}
			continue
		}
		err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			name := d.Name()
			if path != abs && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "vendor") {
				return fs.SkipDir
			}
			if hasGoFiles(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", abs, err)
		}
	}
	return dirs, nil
}

// ScanDirectory parses every non-test Go file in dir, in name order
func (s *Scanner) ScanDirectory(dir string) ([]Element, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var out []Element
	for _, name := range names {
		elems, err := s.ScanFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		out = append(out, elems...)
	}
	return out, nil
}

// ScanFile derives the annotatable elements of one Go file: struct type
// declarations become class targets (embedded types are the ancestor list),
// documented struct fields become property targets, and documented methods
// become method targets. Elements appear in source order.
func (s *Scanner) ScanFile(path string) ([]Element, error) {
	file, err := parser.ParseFile(s.fset, path, nil, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	var out []Element
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				st, ok := ts.Type.(*ast.StructType)
				if !ok {
					continue
				}
				out = append(out, s.structElements(path, d, ts, st)...)
			}
		case *ast.FuncDecl:
			if d.Doc == nil || d.Recv == nil || len(d.Recv.List) == 0 {
				continue
			}
			out = append(out, Element{
				Target: annotations.Target{
					Kind:      annotations.MethodTarget,
					ClassName: receiverName(d.Recv.List[0].Type),
					Element:   d.Name.Name,
					File:      path,
					Line:      s.fset.Position(d.Pos()).Line,
				},
				Comment: d.Doc.Text(),
			})
		}
	}
	return out, nil
}

func (s *Scanner) structElements(path string, decl *ast.GenDecl, ts *ast.TypeSpec, st *ast.StructType) []Element {
	className := ts.Name.Name
	ancestors := embeddedNames(st)

	var out []Element
	doc := ts.Doc
	if doc == nil {
		doc = decl.Doc
	}
	if doc != nil {
		out = append(out, Element{
			Target: annotations.Target{
				Kind:      annotations.ClassTarget,
				ClassName: className,
				File:      path,
				Line:      s.fset.Position(ts.Pos()).Line,
				Ancestors: ancestors,
			},
			Comment: doc.Text(),
		})
	}

	for _, field := range st.Fields.List {
		if field.Doc == nil {
			continue
		}
		line := s.fset.Position(field.Pos()).Line
		for _, name := range field.Names {
			out = append(out, Element{
				Target: annotations.Target{
					Kind:      annotations.PropertyTarget,
					ClassName: className,
					Element:   name.Name,
					File:      path,
					Line:      line,
					Ancestors: ancestors,
				},
				Comment: field.Doc.Text(),
			})
		}
	}
	return out
}

// embeddedNames collects the type names of embedded fields; the expansion
// core treats them as the superclass chain
func embeddedNames(st *ast.StructType) []string {
	var names []string
	for _, field := range st.Fields.List {
		if len(field.Names) > 0 {
			continue
		}
		if name := typeName(field.Type); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func receiverName(expr ast.Expr) string {
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}
	return typeName(expr)
}

func typeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.SelectorExpr:
		return t.Sel.Name
	case *ast.StarExpr:
		return typeName(t.X)
	default:
		return ""
	}
}

func hasGoFiles(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".go") {
			return true
		}
	}
	return false
}
