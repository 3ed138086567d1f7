package models

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	StatusCompleted = "completed"
	StatusPending   = "pending"
	StatusCanceled  = "canceled"
)

// OrderStatuses lists every status an order can carry.
var OrderStatuses = []string{StatusCompleted, StatusPending, StatusCanceled}

// User passwords are kept and compared in plaintext.
type User struct {
	ID       int    `json:"id"       yaml:"id"`
	Email    string `json:"email"    yaml:"email"`
	Password string `json:"password" yaml:"password"`
	UserName string `json:"userName" yaml:"userName"`
	Role     string `json:"role"     yaml:"role"`
	Address  string `json:"address"  yaml:"address"`
	Phone    string `json:"phone"    yaml:"phone"`
}

func (u *User) GetID() int   { return u.ID }
func (u *User) SetID(id int) { u.ID = id }

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

type Product struct {
	ID       int      `json:"id"                 yaml:"id"`
	Slug     string   `json:"slug"               yaml:"slug"`
	Name     string   `json:"name"               yaml:"name"`
	Price    int64    `json:"price"              yaml:"price"`
	OldPrice *int64   `json:"oldPrice,omitempty" yaml:"oldPrice,omitempty"`
	Image    string   `json:"image"              yaml:"image"`
	Colors   []string `json:"colors"             yaml:"colors"`
	Sizes    []string `json:"sizes"              yaml:"sizes"`
	Rating   int      `json:"rating"             yaml:"rating"`
	Sold     int      `json:"sold"               yaml:"sold"`
	Reviews  int      `json:"reviews"            yaml:"reviews"`
	Category string   `json:"category"           yaml:"category"`
}

func (p *Product) GetID() int   { return p.ID }
func (p *Product) SetID(id int) { p.ID = id }

// CartLine is one variant, identified by (ProductID, Color, Size).
type CartLine struct {
	ProductID int    `json:"productId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Image     string `json:"image"`
	Color     string `json:"color"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

func (l CartLine) Matches(productID int, color, size string) bool {
	return l.ProductID == productID && l.Color == color && l.Size == size
}

func (l CartLine) Subtotal() int64 {
	return l.Price * int64(l.Quantity)
}

// NewCartLine copies the display fields of p into a line.
func NewCartLine(p Product, color, size string, quantity int) CartLine {
	return CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
		Color:     color,
		Size:      size,
		Quantity:  quantity,
	}
}

func LinesTotal(lines []CartLine) int64 {
	var total int64
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}

type UserCart struct {
	UserID int        `json:"userId"`
	Items  []CartLine `json:"items"`
}

type Order struct {
	ID            int        `json:"id"`
	UserID        int        `json:"userId"`
	Items         []CartLine `json:"items"`
	Date          string     `json:"date"`
	Status        string     `json:"status"`
	PaymentMethod string     `json:"paymentMethod"`
}

func (o *Order) GetID() int   { return o.ID }
func (o *Order) SetID(id int) { o.ID = id }

func (o Order) Total() int64 {
	return LinesTotal(o.Items)
}
