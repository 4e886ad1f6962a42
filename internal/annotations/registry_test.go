package annotations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLookupUnknown(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Lookup("Bogus")
	require.Error(t, err)

	var unknown *UnknownAnnotationError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "Bogus", unknown.Name)
	assert.Contains(t, err.Error(), "Bogus")
	assert.Contains(t, err.Error(), "registered")
}

func TestRegistryRegisterAndLookup(t *testing.T) {
	registry := NewRegistry()
	registry.Register(NewRouteAnnotation)

	ctor, err := registry.Lookup("Route")
	require.NoError(t, err)
	assert.Equal(t, "Route", ctor().Name())

	// Every invocation gets a fresh instance.
	assert.NotSame(t, ctor(), ctor())
}

func TestRegistryReRegistrationOverwrites(t *testing.T) {
	registry := NewRegistry()
	registry.Register(NewRouteAnnotation)
	registry.Register(NewRouteAnnotation)

	require.Len(t, registry.Names(), 1)
}

func TestRegistryNamesSorted(t *testing.T) {
	registry := NewRegistry()
	RegisterBuiltins(registry)

	names := registry.Names()
	assert.Equal(t, []string{
		"BelongsTo", "Column", "Controller", "HasMany", "Index", "Route", "Table",
	}, names)
}

func TestDefaultRegistryIsSingleton(t *testing.T) {
	assert.Same(t, DefaultRegistry(), DefaultRegistry())
}
