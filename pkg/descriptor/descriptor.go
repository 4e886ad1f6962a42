// Package descriptor holds the mutable class metadata records built up by
// annotation expansion and consumed by the surrounding framework: route
// definitions for the router, column and relation definitions for the ORM
// mapper. The core treats a Class as an append/set target and never retains
// it beyond one expansion pass.
package descriptor

import (
	"strings"

	"github.com/google/uuid"
)

// RouteEntry is one HTTP route derived from a !Route directive. Path is
// stored as written; the class route prefix is applied by FullPath.
type RouteEntry struct {
	ID         uuid.UUID
	Method     string
	Path       string
	Name       string
	Controller string
	Handler    string
	Middleware []string
}

// FullPath joins the owning class's route prefix with the entry path
func (r RouteEntry) FullPath(prefix string) string {
	if prefix == "" || prefix == "/" {
		return r.Path
	}
	return strings.TrimSuffix(prefix, "/") + r.Path
}

// ColumnEntry is one column mapping derived from a !Column directive
type ColumnEntry struct {
	ID         uuid.UUID
	Name       string
	Type       string
	Nullable   bool
	Unique     bool
	Limit      int
	Default    string
	HasDefault bool
}

// RelationEntry is one association derived from a relationship directive
type RelationEntry struct {
	ID         uuid.UUID
	Kind       string // "belongs_to" or "has_many"
	Property   string
	Class      string
	ForeignKey string
	OnDelete   string // belongs_to
	Dependent  string // has_many
}

// IndexEntry is one index definition derived from an !Index directive
type IndexEntry struct {
	ID      uuid.UUID
	Columns []string
	Unique  bool
}

// Class is the shared mutable metadata record for one class under
// construction. The caller driving expansion owns it exclusively; entries
// appear in the order their directives were expanded.
type Class struct {
	Name        string
	TableName   string
	RoutePrefix string
	Middleware  []string
	Routes      []RouteEntry
	Columns     []ColumnEntry
	Relations   []RelationEntry
	Indexes     []IndexEntry
}

// NewClass creates an empty descriptor for the named class
func NewClass(name string) *Class {
	return &Class{Name: name}
}

// Table returns the explicit table name or a lower-cased plural fallback
func (c *Class) Table() string {
	if c.TableName != "" {
		return c.TableName
	}
	return strings.ToLower(c.Name) + "s"
}

// SetTableName records the backing table name
func (c *Class) SetTableName(name string) { c.TableName = name }

// SetRoutePrefix records the prefix applied to every route of the class
func (c *Class) SetRoutePrefix(prefix string) { c.RoutePrefix = prefix }

// AddMiddleware appends class-wide middleware names
func (c *Class) AddMiddleware(names ...string) {
	c.Middleware = append(c.Middleware, names...)
}

// AddRoute appends a route entry, tagging it with a fresh ID
func (c *Class) AddRoute(r RouteEntry) RouteEntry {
	r.ID = uuid.New()
	c.Routes = append(c.Routes, r)
	return r
}

// AddColumn appends a column entry, tagging it with a fresh ID
func (c *Class) AddColumn(col ColumnEntry) ColumnEntry {
	col.ID = uuid.New()
	c.Columns = append(c.Columns, col)
	return col
}

// AddRelation appends a relation entry, tagging it with a fresh ID
func (c *Class) AddRelation(rel RelationEntry) RelationEntry {
	rel.ID = uuid.New()
	c.Relations = append(c.Relations, rel)
	return rel
}

// AddIndex appends an index entry, tagging it with a fresh ID
func (c *Class) AddIndex(idx IndexEntry) IndexEntry {
	idx.ID = uuid.New()
	c.Indexes = append(c.Indexes, idx)
	return idx
}
