package service

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Skotchmaster/vogue_nest/internal/models"
)

// ProductQuery drives the admin product listing.
type ProductQuery struct {
	// Search matches the product name case-insensitively, or the product id.
	Search string
	// Sort is "<field>-asc" or "<field>-desc" over id, name or price. Empty
	// keeps stored order.
	Sort string
}

// QueryProducts filters and sorts products without touching the input slice.
// Names compare with Vietnamese collation.
func QueryProducts(products []models.Product, q ProductQuery) ([]models.Product, error) {
	field, desc, err := parseSort(q.Sort, "id", "name", "price")
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(q.Search)
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strconv.Itoa(p.ID), search) {
			continue
		}
		out = append(out, p)
	}

	if field == "" {
		return out, nil
	}

	col := collate.New(language.Vietnamese)
	slices.SortStableFunc(out, func(a, b models.Product) int {
		var c int
		switch field {
		case "id":
			c = cmp.Compare(a.ID, b.ID)
		case "name":
			c = col.CompareString(a.Name, b.Name)
		default:
			c = cmp.Compare(a.Price, b.Price)
		}
		if desc {
			return -c
		}
		return c
	})
	return out, nil
}

// parseSort splits "field-asc" or "field-desc". An empty sort returns an
// empty field.
func parseSort(sort string, fields ...string) (field string, desc bool, err error) {
	if sort == "" {
		return "", false, nil
	}
	f, dir, ok := strings.Cut(sort, "-")
	if !ok || !slices.Contains(fields, f) || (dir != "asc" && dir != "desc") {
		return "", false, fmt.Errorf("unknown sort %q: %w", sort, ErrValidation)
	}
	return f, dir == "desc", nil
}
