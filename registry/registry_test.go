package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcusfrdk/clix"
)

func stubFactory(name string) Factory {
	return func(Args) (clix.Child, error) {
		return clix.NewChild(name, clix.Handlers{}), nil
	}
}

func TestRegisterAndNew(t *testing.T) {
	t.Parallel()

	r := New()
	r.Register("upper", stubFactory("upper"))
	r.Register("lower", stubFactory("lower"))

	child, err := r.New("upper", nil)
	require.NoError(t, err)
	assert.Equal(t, "upper", child.Name())

	assert.Equal(t, []string{"lower", "upper"}, r.Names())
}

func TestRegisterDuplicatePanics(t *testing.T) {
	t.Parallel()

	r := New()
	r.Register("dup", stubFactory("dup"))
	assert.Panics(t, func() {
		r.Register("dup", stubFactory("dup"))
	})
}

func TestNewUnknownName(t *testing.T) {
	t.Parallel()

	r := New()
	r.Register("known", stubFactory("known"))
	_, err := r.New("missing", nil)
	require.Error(t, err)
	assert.ErrorContains(t, err, `unknown child "missing"`)
	assert.ErrorContains(t, err, "known")
}

func TestInstall(t *testing.T) {
	t.Parallel()

	r := New()
	r.Install(moduleFunc(func(r *Registry) {
		r.Register("from_module", stubFactory("from_module"))
	}))
	assert.Contains(t, r.Names(), "from_module")
}

type moduleFunc func(*Registry)

func (f moduleFunc) Register(r *Registry) { f(r) }

func TestArgsGetters(t *testing.T) {
	t.Parallel()

	args := Args{
		"s":     "text",
		"i":     7,
		"f":     2.5,
		"whole": float64(3),
		"b":     true,
		"list":  []any{"a", 1},
	}

	assert.Equal(t, "text", args.String("s", ""))
	assert.Equal(t, "fallback", args.String("missing", "fallback"))
	assert.Equal(t, 7, args.Int("i", 0))
	assert.Equal(t, 3, args.Int("whole", 0))
	assert.Equal(t, 2.5, args.Float("f", 0))
	assert.Equal(t, 7.0, args.Float("i", 0))
	assert.True(t, args.Bool("b", false))
	assert.Equal(t, []string{"a", "1"}, args.Strings("list"))
	assert.True(t, args.Has("s"))
	assert.False(t, args.Has("missing"))
}
