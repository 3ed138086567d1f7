package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/vogue_nest/internal/models"
)

func TestQueryProducts(t *testing.T) {
	t.Parallel()

	products := []models.Product{
		{ID: 1, Name: "Zara tee", Price: 300},
		{ID: 2, Name: "Đầm maxi", Price: 100},
		{ID: 3, Name: "Áo len", Price: 200},
		{ID: 12, Name: "Dây lưng", Price: 50},
	}

	tests := []struct {
		name  string
		query ProductQuery
		want  []int
	}{
		{name: "everything", query: ProductQuery{}, want: []int{1, 2, 3, 12}},
		{name: "name search ignores case", query: ProductQuery{Search: "ĐẦM"}, want: []int{2}},
		{name: "id search", query: ProductQuery{Search: "2"}, want: []int{2, 12}},
		{name: "id desc", query: ProductQuery{Sort: "id-desc"}, want: []int{12, 3, 2, 1}},
		{name: "name asc uses vietnamese order", query: ProductQuery{Sort: "name-asc"}, want: []int{3, 12, 2, 1}},
		{name: "name desc", query: ProductQuery{Sort: "name-desc"}, want: []int{1, 2, 12, 3}},
		{name: "price asc", query: ProductQuery{Sort: "price-asc"}, want: []int{12, 2, 3, 1}},
		{name: "search then sort", query: ProductQuery{Search: "2", Sort: "price-desc"}, want: []int{2, 12}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := QueryProducts(products, tt.query)
			require.NoError(t, err)
			ids := make([]int, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	// input order is left alone
	assert.Equal(t, 1, products[0].ID)

	_, err := QueryProducts(products, ProductQuery{Sort: "rating-asc"})
	assert.ErrorIs(t, err, ErrValidation)
}
