package order

// Order statuses. Only admins move an order between them; customers only
// ever create orders in StatusPending.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusPreparing = "preparing"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// Statuses lists every status the back-office may set.
var Statuses = []string{
	StatusPending,
	StatusConfirmed,
	StatusPreparing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

func ValidStatus(s string) bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Order is one checkout. TotalPrice is a snapshot taken at submission time
// and is never recomputed from the items afterwards.
type Order struct {
	ID              string  `json:"id"`
	UserID          string  `json:"user_id"`
	CustomerName    string  `json:"customer_name"`
	CustomerPhone   string  `json:"customer_phone"`
	CustomerAddress string  `json:"customer_address"`
	TotalPrice      int     `json:"total_price"`
	Notes           *string `json:"notes,omitempty"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"created_at"`
	Items           []Item  `json:"order_items,omitempty"`
}

// Item is a denormalized snapshot of a product at order time. It references
// the product only by the copied name/price/weight fields, so later catalog
// edits and deletions cannot rewrite order history. Items are never updated
// after creation.
type Item struct {
	ID            string `json:"id"`
	OrderID       string `json:"order_id"`
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	ProductPrice  int    `json:"product_price"`
	ProductWeight string `json:"product_weight"`
	Quantity      int    `json:"quantity"`
}
