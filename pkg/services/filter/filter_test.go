package filter

import (
	"testing"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/datagen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByCategory(t *testing.T) {
	ds := datagen.New(datagen.DefaultSeed).Generate()

	t.Run("full selection keeps table", func(t *testing.T) {
		assert.Equal(t, ds.Sales, ByCategory(ds.Sales, All()))
		assert.Equal(t, ds.Products, ByCategory(ds.Products, All()))
	})

	t.Run("empty selection yields empty table", func(t *testing.T) {
		out := ByCategory(ds.Sales, NewSelection())
		require.NotNil(t, out)
		assert.Empty(t, out)
	})

	t.Run("unknown labels never match", func(t *testing.T) {
		assert.Empty(t, ByCategory(ds.Sales, NewSelection("Garden")))
	})

	t.Run("electronics only", func(t *testing.T) {
		out := ByCategory(ds.Sales, NewSelection(domain.CategoryElectronics))
		require.NotEmpty(t, out)
		for _, s := range out {
			assert.Equal(t, domain.CategoryElectronics, s.Category)
		}
		for i := 1; i < len(out); i++ {
			assert.True(t, out[i-1].Date.Before(out[i].Date), "order not preserved at %d", i)
		}
	})

	t.Run("does not mutate input", func(t *testing.T) {
		before := append([]domain.DailySale(nil), ds.Sales...)
		_ = ByCategory(ds.Sales, NewSelection(domain.CategoryBook))
		assert.Equal(t, before, ds.Sales)
	})

	t.Run("products by category", func(t *testing.T) {
		out := ByCategory(ds.Products, NewSelection(domain.CategoryElectronics))
		require.Len(t, out, 2)
		assert.Equal(t, "Smartphone", out[0].Product)
		assert.Equal(t, "Notebook", out[1].Product)
	})
}

func TestSelection_LabelsAndKey(t *testing.T) {
	sel := NewSelection("Zeta", domain.CategorySports, domain.CategoryElectronics, "Alpha")

	assert.Equal(t,
		[]domain.Category{domain.CategoryElectronics, domain.CategorySports, "Alpha", "Zeta"},
		sel.Labels())
	assert.Equal(t, "Electronics|Sports|Alpha|Zeta", sel.Key())
	assert.Equal(t, "", NewSelection().Key())
	assert.Equal(t, All().Key(), NewSelection(domain.AllCategories()...).Key())
}

func TestParseSelection(t *testing.T) {
	tests := []struct {
		name     string
		values   []string
		present  bool
		expected Selection
	}{
		{
			name:     "absent selects all",
			present:  false,
			expected: All(),
		},
		{
			name:     "present but blank selects nothing",
			values:   []string{""},
			present:  true,
			expected: Selection{},
		},
		{
			name:     "repeated values",
			values:   []string{"Book", "Home"},
			present:  true,
			expected: NewSelection(domain.CategoryBook, domain.CategoryHome),
		},
		{
			name:     "comma separated values",
			values:   []string{"Book, Sports", ""},
			present:  true,
			expected: NewSelection(domain.CategoryBook, domain.CategorySports),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseSelection(tt.values, tt.present))
		})
	}
}
