package annotations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annexlang/annex/pkg/descriptor"
)

// End-to-end runs over realistic comment blocks: scan, evaluate, validate,
// and expand into one shared descriptor, the way a host tool drives the
// engine per program element.

func TestEngineProcessesModelCommentBlock(t *testing.T) {
	engine := builtinEngine()
	class := descriptor.NewClass("Post")

	classTarget := Target{Kind: ClassTarget, ClassName: "Post", File: "post.go", Line: 8}
	_, err := engine.Process("// Post is a published article.\n// !Table 'posts'", classTarget, class)
	require.NoError(t, err)

	fields := []struct {
		element string
		comment string
	}{
		{"Title", "// !Column string, limit: 200"},
		{"Body", "// !Column text, nullable: true"},
		{"Author", "// !BelongsTo User, ondelete: Nullify"},
		{"Comments", "// !HasMany Comment, dependent: destroy"},
		{"Slug", "// !Column string, unique: true\n// !Index unique: true"},
	}
	for _, f := range fields {
		target := Target{Kind: PropertyTarget, ClassName: "Post", Element: f.element, File: "post.go"}
		_, err := engine.Process(f.comment, target, class)
		require.NoError(t, err, "field %s", f.element)
	}

	assert.Equal(t, "posts", class.Table())
	require.Len(t, class.Columns, 3)
	assert.Equal(t, "Title", class.Columns[0].Name)
	assert.Equal(t, 200, class.Columns[0].Limit)
	assert.True(t, class.Columns[1].Nullable)
	assert.True(t, class.Columns[2].Unique)

	require.Len(t, class.Relations, 2)
	assert.Equal(t, "belongs_to", class.Relations[0].Kind)
	assert.Equal(t, "Nullify", class.Relations[0].OnDelete)
	assert.Equal(t, "has_many", class.Relations[1].Kind)

	require.Len(t, class.Indexes, 1)
	assert.True(t, class.Indexes[0].Unique)
}

func TestEngineProcessesControllerCommentBlock(t *testing.T) {
	engine := builtinEngine()
	class := descriptor.NewClass("Users")

	classTarget := Target{Kind: ClassTarget, ClassName: "Users", File: "users.go", Line: 5}
	_, err := engine.Process("// !Controller '/api/users', middleware: (Auth)", classTarget, class)
	require.NoError(t, err)

	handlers := []struct {
		element string
		comment string
		method  string
		path    string
	}{
		{"Index", "// !Route GET, '/', name: 'users.index'", "GET", "/"},
		{"Show", "// !Route GET, '/:id'", "GET", "/:id"},
		{"Create", "// !Route POST, '/'", "POST", "/"},
	}
	for _, h := range handlers {
		target := Target{Kind: MethodTarget, ClassName: "Users", Element: h.element, File: "users.go"}
		_, err := engine.Process(h.comment, target, class)
		require.NoError(t, err, "handler %s", h.element)
	}

	assert.Equal(t, "/api/users", class.RoutePrefix)
	assert.Equal(t, []string{"Auth"}, class.Middleware)
	require.Len(t, class.Routes, 3)
	assert.Equal(t, "users.index", class.Routes[0].Name)
	assert.Equal(t, "Show", class.Routes[1].Handler)
	assert.Equal(t, "POST", class.Routes[2].Method)
}

func TestEngineAggregatesErrorsAcrossDirectives(t *testing.T) {
	engine := builtinEngine()
	class := descriptor.NewClass("User")
	target := Target{Kind: PropertyTarget, ClassName: "User", Element: "Email", File: "user.go", Line: 12}

	comment := "// !Column jpeg\n// !Index unique: true\n// !Bogus x"
	_, err := engine.Process(comment, target, class)
	require.Error(t, err)

	var multi *MultiError
	require.ErrorAs(t, err, &multi)
	require.Len(t, multi.Errors, 2)

	var exp *ExpansionError
	require.ErrorAs(t, multi.Errors[0], &exp)
	assert.Equal(t, "Column", exp.Kind)

	var unknown *UnknownAnnotationError
	require.ErrorAs(t, multi.Errors[1], &unknown)
	assert.Equal(t, "Bogus", unknown.Name)

	// The valid !Index between the failures still expanded.
	require.Len(t, class.Indexes, 1)
	assert.Empty(t, class.Columns)
}
