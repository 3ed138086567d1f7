// Package seed holds the fixed dataset used to populate empty collections.
package seed

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Skotchmaster/vogue_nest/internal/models"
)

//go:embed data/*.yaml
var files embed.FS

type Data struct {
	Users    []models.User
	Products []models.Product
}

func Default() (Data, error) {
	var d Data
	if err := decode("data/users.yaml", &d.Users); err != nil {
		return Data{}, err
	}
	if err := decode("data/products.yaml", &d.Products); err != nil {
		return Data{}, err
	}
	return d, nil
}

// MustDefault panics on malformed embedded data, which only a broken build can produce.
func MustDefault() Data {
	d, err := Default()
	if err != nil {
		panic(err)
	}
	return d
}

func decode(name string, dst any) error {
	raw, err := files.ReadFile(name)
	if err != nil {
		return fmt.Errorf("seed: read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("seed: decode %s: %w", name, err)
	}
	return nil
}
