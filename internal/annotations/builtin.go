package annotations

import (
	"strings"

	"github.com/annexlang/annex/pkg/descriptor"
)

// Built-in annotation kinds. Each kind exposes its keyed parameters as
// struct fields populated through Assign, declares its rules in Validate,
// and mutates the descriptor in Expand.

var httpMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"}

var columnTypes = []string{
	"integer", "bigint", "float", "decimal", "string", "text",
	"boolean", "date", "time", "datetime", "binary",
}

// RouteAnnotation maps a handler method onto an HTTP route:
//
//	!Route GET, '/users/:id', name: 'users.show'
type RouteAnnotation struct {
	RouteName  string
	Middleware []string
}

// NewRouteAnnotation constructs a fresh !Route instance
func NewRouteAnnotation() Annotation { return &RouteAnnotation{} }

func (a *RouteAnnotation) Name() string        { return "Route" }
func (a *RouteAnnotation) Targets() TargetMask { return Methods }
func (a *RouteAnnotation) Usage() string {
	return "!Route METHOD, '/path' [, name: 'route.name', middleware: (A, B)]"
}

func (a *RouteAnnotation) Assign(key string, value Value) {
	switch key {
	case "name":
		a.RouteName = value.Text()
	case "middleware":
		a.Middleware = value.Strings()
	}
}

func (a *RouteAnnotation) Validate(v *Validator) {
	v.MinParams(2)
	v.AcceptKeys("name", "middleware")
	v.AcceptIndexedValue(0, httpMethods...)
	pos := v.Params().Positional
	if len(pos) < 2 {
		v.Errorf("expects an HTTP method and a path as positional parameters")
	} else if path := pos[1].Text(); !strings.HasPrefix(path, "/") {
		v.Errorf("route path must start with '/'; got '%s'", path)
	}
}

func (a *RouteAnnotation) Expand(target Target, class *descriptor.Class, values []Value) error {
	class.AddRoute(descriptor.RouteEntry{
		Method:     strings.ToUpper(values[0].Text()),
		Path:       values[1].Text(),
		Name:       a.RouteName,
		Controller: target.ClassName,
		Handler:    target.Element,
		Middleware: a.Middleware,
	})
	return nil
}

// ControllerAnnotation marks a class as a request controller and sets the
// route prefix shared by its handlers:
//
//	!Controller '/api/users', middleware: (Auth)
type ControllerAnnotation struct {
	Middleware []string
}

// NewControllerAnnotation constructs a fresh !Controller instance
func NewControllerAnnotation() Annotation { return &ControllerAnnotation{} }

func (a *ControllerAnnotation) Name() string        { return "Controller" }
func (a *ControllerAnnotation) Targets() TargetMask { return Classes }
func (a *ControllerAnnotation) Usage() string {
	return "!Controller ['/prefix'] [, middleware: (A, B)]"
}

func (a *ControllerAnnotation) Assign(key string, value Value) {
	if key == "middleware" {
		a.Middleware = value.Strings()
	}
}

func (a *ControllerAnnotation) Validate(v *Validator) {
	v.MaxParams(2)
	v.AcceptKeys("middleware")
	if pos := v.Params().Positional; len(pos) > 1 {
		v.Errorf("expects at most one positional parameter (the route prefix)")
	} else if len(pos) == 1 && !strings.HasPrefix(pos[0].Text(), "/") {
		v.Errorf("route prefix must start with '/'; got '%s'", pos[0].Text())
	}
}

func (a *ControllerAnnotation) Expand(target Target, class *descriptor.Class, values []Value) error {
	if len(values) == 1 {
		class.SetRoutePrefix(values[0].Text())
	}
	class.AddMiddleware(a.Middleware...)
	return nil
}

// TableAnnotation names the backing table of a persisted class:
//
//	!Table 'user_accounts'
type TableAnnotation struct{}

// NewTableAnnotation constructs a fresh !Table instance
func NewTableAnnotation() Annotation { return &TableAnnotation{} }

func (a *TableAnnotation) Name() string        { return "Table" }
func (a *TableAnnotation) Targets() TargetMask { return Classes }
func (a *TableAnnotation) Usage() string       { return "!Table 'table_name'" }

func (a *TableAnnotation) Assign(string, Value) {}

func (a *TableAnnotation) Validate(v *Validator) {
	v.ExactParams(1)
	v.AcceptKeys()
}

func (a *TableAnnotation) Expand(target Target, class *descriptor.Class, values []Value) error {
	class.SetTableName(values[0].Text())
	return nil
}

// ColumnAnnotation maps a property onto a table column:
//
//	!Column integer, nullable: true
type ColumnAnnotation struct {
	Nullable   bool
	Unique     bool
	Limit      int
	Default    string
	HasDefault bool
}

// NewColumnAnnotation constructs a fresh !Column instance
func NewColumnAnnotation() Annotation { return &ColumnAnnotation{} }

func (a *ColumnAnnotation) Name() string        { return "Column" }
func (a *ColumnAnnotation) Targets() TargetMask { return Properties }
func (a *ColumnAnnotation) Usage() string {
	return "!Column type [, nullable: BOOL, unique: BOOL, limit: N, default: VALUE]"
}

func (a *ColumnAnnotation) Assign(key string, value Value) {
	switch key {
	case "nullable":
		a.Nullable = value.Truthy()
	case "unique":
		a.Unique = value.Truthy()
	case "limit":
		a.Limit = int(value.Int)
	case "default":
		a.Default = value.Text()
		a.HasDefault = true
	}
}

func (a *ColumnAnnotation) Validate(v *Validator) {
	v.MinParams(1)
	v.AcceptKeys("nullable", "unique", "limit", "default")
	if len(v.Params().Positional) != 1 {
		v.Errorf("expects the column type as its only positional parameter")
	}
	v.AcceptIndexedValue(0, columnTypes...)
	v.AcceptValuesForKey("nullable", FoldLower, "true", "false")
	v.AcceptValuesForKey("unique", FoldLower, "true", "false")
	if limit, ok := v.Params().Key("limit"); ok && limit.Kind != IntValue {
		v.Errorf("parameter 'limit' must be an integer; got %s", limit.String())
	}
}

func (a *ColumnAnnotation) Expand(target Target, class *descriptor.Class, values []Value) error {
	class.AddColumn(descriptor.ColumnEntry{
		Name:       target.Element,
		Type:       values[0].Text(),
		Nullable:   a.Nullable,
		Unique:     a.Unique,
		Limit:      a.Limit,
		Default:    a.Default,
		HasDefault: a.HasDefault,
	})
	return nil
}

// BelongsToAnnotation declares a child-side association:
//
//	!BelongsTo User, key: 'user_id', ondelete: Cascade
type BelongsToAnnotation struct {
	Key      string
	OnDelete string
}

// NewBelongsToAnnotation constructs a fresh !BelongsTo instance
func NewBelongsToAnnotation() Annotation { return &BelongsToAnnotation{} }

func (a *BelongsToAnnotation) Name() string        { return "BelongsTo" }
func (a *BelongsToAnnotation) Targets() TargetMask { return Properties }
func (a *BelongsToAnnotation) Usage() string {
	return "!BelongsTo Class [, key: 'foreign_key', ondelete: Cascade|Nullify|Restrict]"
}

func (a *BelongsToAnnotation) Assign(key string, value Value) {
	switch key {
	case "key":
		a.Key = value.Text()
	case "ondelete":
		a.OnDelete = value.Text()
	}
}

func (a *BelongsToAnnotation) Validate(v *Validator) {
	v.MinParams(1)
	v.MaxParams(3)
	if len(v.Params().Positional) != 1 {
		v.Errorf("expects the associated class as its only positional parameter")
	}
	v.AcceptKeys("key", "ondelete")
	v.AcceptValuesForKey("ondelete", FoldNone, "Cascade", "Nullify", "Restrict")
}

func (a *BelongsToAnnotation) Expand(target Target, class *descriptor.Class, values []Value) error {
	fk := a.Key
	if fk == "" {
		fk = strings.ToLower(values[0].Text()) + "_id"
	}
	class.AddRelation(descriptor.RelationEntry{
		Kind:       "belongs_to",
		Property:   target.Element,
		Class:      values[0].Text(),
		ForeignKey: fk,
		OnDelete:   a.OnDelete,
	})
	return nil
}

// HasManyAnnotation declares a parent-side association:
//
//	!HasMany Comment, foreignkey: 'post_id', dependent: destroy
type HasManyAnnotation struct {
	ForeignKey string
	Dependent  string
}

// NewHasManyAnnotation constructs a fresh !HasMany instance
func NewHasManyAnnotation() Annotation { return &HasManyAnnotation{} }

func (a *HasManyAnnotation) Name() string        { return "HasMany" }
func (a *HasManyAnnotation) Targets() TargetMask { return Properties }
func (a *HasManyAnnotation) Usage() string {
	return "!HasMany Class [, foreignkey: 'fk', dependent: destroy|nullify|restrict]"
}

func (a *HasManyAnnotation) Assign(key string, value Value) {
	switch key {
	case "foreignkey":
		a.ForeignKey = value.Text()
	case "dependent":
		a.Dependent = value.Text()
	}
}

func (a *HasManyAnnotation) Validate(v *Validator) {
	v.MinParams(1)
	v.MaxParams(3)
	if len(v.Params().Positional) != 1 {
		v.Errorf("expects the associated class as its only positional parameter")
	}
	v.AcceptKeys("foreignkey", "dependent")
	v.AcceptValuesForKey("dependent", FoldLower, "destroy", "nullify", "restrict")
}

func (a *HasManyAnnotation) Expand(target Target, class *descriptor.Class, values []Value) error {
	fk := a.ForeignKey
	if fk == "" {
		fk = strings.ToLower(target.ClassName) + "_id"
	}
	class.AddRelation(descriptor.RelationEntry{
		Kind:       "has_many",
		Property:   target.Element,
		Class:      values[0].Text(),
		ForeignKey: fk,
		Dependent:  a.Dependent,
	})
	return nil
}

// IndexAnnotation puts an index on the annotated property's column:
//
//	!Index unique: true
type IndexAnnotation struct {
	Unique bool
}

// NewIndexAnnotation constructs a fresh !Index instance
func NewIndexAnnotation() Annotation { return &IndexAnnotation{} }

func (a *IndexAnnotation) Name() string        { return "Index" }
func (a *IndexAnnotation) Targets() TargetMask { return Properties }
func (a *IndexAnnotation) Usage() string       { return "!Index [unique: true]" }

func (a *IndexAnnotation) Assign(key string, value Value) {
	if key == "unique" {
		a.Unique = value.Truthy()
	}
}

func (a *IndexAnnotation) Validate(v *Validator) {
	v.MaxParams(1)
	v.AcceptKeys("unique")
	v.AcceptValuesForKey("unique", FoldLower, "true", "false")
}

func (a *IndexAnnotation) Expand(target Target, class *descriptor.Class, values []Value) error {
	class.AddIndex(descriptor.IndexEntry{
		Columns: []string{target.Element},
		Unique:  a.Unique,
	})
	return nil
}

// RegisterBuiltins installs every built-in annotation kind into the
// registry. Hosts call this once during startup, before any parsing.
func RegisterBuiltins(r *Registry) {
	r.Register(NewRouteAnnotation)
	r.Register(NewControllerAnnotation)
	r.Register(NewTableAnnotation)
	r.Register(NewColumnAnnotation)
	r.Register(NewBelongsToAnnotation)
	r.Register(NewHasManyAnnotation)
	r.Register(NewIndexAnnotation)
}
