package markdownizer_test

import (
	"testing"

	"github.com/fwojciec/markdownizer"
	"github.com/stretchr/testify/assert"
)

func TestTokenID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "{{MDZ0}}", markdownizer.TokenID(0))
	assert.Equal(t, "{{MDZ42}}", markdownizer.TokenID(42))
}

func TestTokenBuilder(t *testing.T) {
	t.Parallel()

	t.Run("allocates sequential identifiers", func(t *testing.T) {
		t.Parallel()

		b := markdownizer.NewTokenBuilder()

		assert.Equal(t, "{{MDZ0}}", b.Emit("first"))
		assert.Equal(t, "{{MDZ1}}", b.Emit("second"))
		assert.Equal(t, "{{MDZ2}}", b.Emit(""))
		assert.Equal(t, 3, b.Len())
		assert.Equal(t, markdownizer.TokenTable{
			"{{MDZ0}}": "first",
			"{{MDZ1}}": "second",
			"{{MDZ2}}": "",
		}, b.Table())
	})

	t.Run("builders do not share counters", func(t *testing.T) {
		t.Parallel()

		a := markdownizer.NewTokenBuilder()
		b := markdownizer.NewTokenBuilder()
		a.Emit("x")
		a.Emit("y")

		assert.Equal(t, "{{MDZ0}}", b.Emit("z"))
		assert.Len(t, a.Table(), 2)
		assert.Len(t, b.Table(), 1)
	})

	t.Run("identical text gets distinct tokens", func(t *testing.T) {
		t.Parallel()

		b := markdownizer.NewTokenBuilder()
		first := b.Emit("same")
		second := b.Emit("same")

		assert.NotEqual(t, first, second)
		assert.Len(t, b.Table(), 2)
	})
}

func TestTokenTable_IDs(t *testing.T) {
	t.Parallel()

	t.Run("orders numerically not lexically", func(t *testing.T) {
		t.Parallel()

		b := markdownizer.NewTokenBuilder()
		for i := 0; i < 12; i++ {
			b.Emit(string(rune('a' + i)))
		}

		ids := b.Table().IDs()

		assert.Len(t, ids, 12)
		assert.Equal(t, "{{MDZ0}}", ids[0])
		assert.Equal(t, "{{MDZ2}}", ids[2])
		assert.Equal(t, "{{MDZ10}}", ids[10])
		assert.Equal(t, "{{MDZ11}}", ids[11])
	})

	t.Run("values follow emission order", func(t *testing.T) {
		t.Parallel()

		table := markdownizer.TokenTable{
			"{{MDZ1}}": "b",
			"{{MDZ0}}": "a",
			"{{MDZ2}}": "c",
		}

		assert.Equal(t, []string{"a", "b", "c"}, table.Values())
	})

	t.Run("foreign keys sort after tokens", func(t *testing.T) {
		t.Parallel()

		table := markdownizer.TokenTable{
			"other":    "x",
			"{{MDZ0}}": "a",
		}

		assert.Equal(t, []string{"{{MDZ0}}", "other"}, table.IDs())
	})
}
