package models

// Update structs list exactly the fields a caller may change. A nil field is left as is.

type UserUpdate struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
	UserName *string `json:"userName"`
	Role     *string `json:"role"`
	Address  *string `json:"address"`
	Phone    *string `json:"phone"`
}

func (p UserUpdate) Apply(u *User) {
	set(&u.Email, p.Email)
	set(&u.UserName, p.UserName)
	set(&u.Role, p.Role)
	set(&u.Address, p.Address)
	set(&u.Phone, p.Phone)
	// an empty password in an edit form means "keep the current one"
	if p.Password != nil && *p.Password != "" {
		u.Password = *p.Password
	}
}

// ProfileUpdate is what a signed-in user may edit about themselves.
type ProfileUpdate struct {
	UserName *string `json:"userName"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
}

func (p ProfileUpdate) Apply(u *User) {
	set(&u.UserName, p.UserName)
	set(&u.Email, p.Email)
	set(&u.Phone, p.Phone)
	set(&u.Address, p.Address)
}

type ProductUpdate struct {
	Slug     *string   `json:"slug"`
	Name     *string   `json:"name"`
	Price    *int64    `json:"price"`
	OldPrice *int64    `json:"oldPrice"`
	Image    *string   `json:"image"`
	Colors   *[]string `json:"colors"`
	Sizes    *[]string `json:"sizes"`
	Rating   *int      `json:"rating"`
	Sold     *int      `json:"sold"`
	Reviews  *int      `json:"reviews"`
	Category *string   `json:"category"`
}

func (p ProductUpdate) Apply(pr *Product) {
	set(&pr.Slug, p.Slug)
	set(&pr.Name, p.Name)
	set(&pr.Price, p.Price)
	if p.OldPrice != nil {
		v := *p.OldPrice
		pr.OldPrice = &v
	}
	set(&pr.Image, p.Image)
	if p.Colors != nil {
		pr.Colors = append([]string(nil), (*p.Colors)...)
	}
	if p.Sizes != nil {
		pr.Sizes = append([]string(nil), (*p.Sizes)...)
	}
	set(&pr.Rating, p.Rating)
	set(&pr.Sold, p.Sold)
	set(&pr.Reviews, p.Reviews)
	set(&pr.Category, p.Category)
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Ptr is a helper for building update structs.
func Ptr[T any](v T) *T { return &v }
