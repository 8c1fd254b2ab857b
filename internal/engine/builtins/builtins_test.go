package builtins

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultRegistry(t *testing.T) {
	reg := Default()

	for _, name := range []string{"String", "Int", "View", "Text", "UUID", "Self", "Preview"} {
		assert.True(t, reg.Contains(name), "expected %s to be builtin", name)
	}
	for _, name := range []string{"ContentView", "UserModel", "", "# Swift standard library"} {
		assert.False(t, reg.Contains(name), "expected %q not to be builtin", name)
	}
}

func TestRegistryExtras(t *testing.T) {
	reg := New([]string{"Alamofire", "  Kingfisher  ", "", "# comment"})

	assert.True(t, reg.Contains("Alamofire"))
	assert.True(t, reg.Contains("Kingfisher"))
	assert.False(t, reg.Contains("# comment"))
	assert.Equal(t, Default().Len()+2, reg.Len())
	assert.False(t, Default().Contains("Alamofire"), "extras must not leak into the shared set")
}

func TestNilRegistry(t *testing.T) {
	var reg *Registry
	assert.False(t, reg.Contains("String"))
	assert.Zero(t, reg.Len())
	assert.Nil(t, reg.Names())
}

func TestNamesSorted(t *testing.T) {
	names := New([]string{"Zeta", "Aardvark"}).Names()
	assert.IsNonDecreasing(t, names)
	assert.Contains(t, names, "Aardvark")
}
