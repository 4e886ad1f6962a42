package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/annexlang/annex/internal/annotations"
	"github.com/annexlang/annex/internal/report"
	"github.com/annexlang/annex/internal/source"
	"github.com/annexlang/annex/pkg/descriptor"
)

func main() {
	var (
		verboseFlag = flag.Bool("verbose", false, "Enable detailed output")
		quietFlag   = flag.Bool("quiet", false, "Only show errors")
		helpFlag    = flag.Bool("help", false, "Show help information")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <directory-paths...>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Annex Annotation Processor\n")
		fmt.Fprintf(os.Stderr, "Scans Go source for !Name annotation directives in doc comments and\n")
		fmt.Fprintf(os.Stderr, "builds class descriptors (routes, columns, relations) from them.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nDirectory Patterns:\n")
		fmt.Fprintf(os.Stderr, "  ./...              Scan current directory and all subdirectories\n")
		fmt.Fprintf(os.Stderr, "  ./internal/models  Scan one directory only\n")
	}

	flag.Parse()

	if *helpFlag {
		flag.Usage()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Error: at least one directory path is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	var rep *report.Reporter
	switch {
	case *quietFlag:
		rep = report.NewQuiet()
	case *verboseFlag:
		rep = report.NewVerbose()
	default:
		rep = report.New(report.LevelInfo)
	}

	if err := run(args, rep); err != nil {
		rep.Error("%v", err)
		os.Exit(1)
	}
}

func run(patterns []string, rep *report.Reporter) error {
	// One-shot registry population, complete before any parsing begins.
	registry := annotations.NewRegistry()
	annotations.RegisterBuiltins(registry)
	engine := annotations.NewEngine(registry)

	scanner := source.NewScanner()
	dirs, err := scanner.ScanDirectories(patterns)
	if err != nil {
		return err
	}
	if len(dirs) == 0 {
		return fmt.Errorf("no Go files found under %v", patterns)
	}

	if module, err := source.ModuleName(dirs[0]); err == nil {
		rep.Verbose("module: %s", module)
	}

	set := descriptor.NewSet()
	classes := make(map[string]*descriptor.Class)
	classFor := func(name string) *descriptor.Class {
		if c, ok := classes[name]; ok {
			return c
		}
		c := descriptor.NewClass(name)
		classes[name] = c
		set.Add(c)
		return c
	}

	var failed int
	for _, dir := range dirs {
		rep.Verbose("scanning %s", dir)
		elements, err := scanner.ScanDirectory(dir)
		if err != nil {
			return err
		}
		for _, elem := range elements {
			class := classFor(elem.Target.ClassName)
			if _, err := engine.Process(elem.Comment, elem.Target, class); err != nil {
				failed++
				rep.Error("%v", err)
			}
		}
	}

	printSummary(rep, set)

	if failed > 0 {
		return fmt.Errorf("%d element(s) failed annotation processing", failed)
	}
	rep.Success("processed %d class(es)", len(classes))
	return nil
}

func printSummary(rep *report.Reporter, set *descriptor.Set) {
	for _, class := range set.Classes() {
		if len(class.Routes)+len(class.Columns)+len(class.Relations)+len(class.Indexes) == 0 &&
			class.TableName == "" {
			continue
		}
		rep.Section(class.Name)
		if len(class.Columns) > 0 || len(class.Relations) > 0 {
			rep.List("table: %s", class.Table())
		}
		for _, r := range class.Routes {
			rep.List("route: %-6s %s -> %s#%s", r.Method, r.FullPath(class.RoutePrefix), r.Controller, r.Handler)
		}
		for _, c := range class.Columns {
			rep.List("column: %s %s nullable=%v", c.Name, c.Type, c.Nullable)
		}
		for _, r := range class.Relations {
			rep.List("relation: %s %s -> %s (fk %s)", r.Kind, r.Property, r.Class, r.ForeignKey)
		}
		for _, i := range class.Indexes {
			rep.List("index: %v unique=%v", i.Columns, i.Unique)
		}
	}
}
