package product

// Product represents a catalog item and maps to the `public.products` table.
// Price is stored in the smallest currency unit. Weight is a display string
// ("500 g" style), not a number, because jars are labelled, not weighed.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	Image       string `json:"image"`
	Weight      string `json:"weight"`
	CreatedAt   string `json:"created_at,omitempty"`
}
