package category

// Category is a browsing shelf in the storefront. The list is fixed; jars
// are not tagged with a category column, the shelves only feed the search
// page with a prefilled query.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	NameFa      string `json:"name_fa"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// Catalog contains the supported shelves in display order.
var Catalog = []Category{
	{ID: "fruit-pickles", Name: "Fruit pickles", NameFa: "ترشی میوه", Description: "Sweet and surprising", Image: "/images/categories/fruit.jpg"},
	{ID: "vegetable-pickles", Name: "Vegetable pickles", NameFa: "ترشی سبزیجات", Description: "The classic home taste", Image: "/images/categories/vegetable.jpg"},
	{ID: "mixed-pickles", Name: "Mixed pickles", NameFa: "ترشی مخلوط", Description: "A blend of the best", Image: "/images/categories/mixed.jpg"},
	{ID: "brined", Name: "Brined", NameFa: "شور", Description: "Salt-cured favourites", Image: "/images/categories/brined.jpg"},
	{ID: "olives", Name: "Olives", NameFa: "زیتون", Description: "Marinated and plain", Image: "/images/categories/olives.jpg"},
	{ID: "paste", Name: "Pastes and seasonings", NameFa: "رب و چاشنی", Description: "Depth for every dish", Image: "/images/categories/paste.jpg"},
}
