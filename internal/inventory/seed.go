package inventory

type seedCategory struct {
	name, description string
}

type seedProduct struct {
	name, sku   string
	stock       int
	price       float64
	categoryID  int
	status      Status
	description string
}

var seedCategories = []seedCategory{
	{"Electronics", "Electronic devices and accessories"},
	{"Clothing", "Apparel and fashion items"},
	{"Books", "Books and educational materials"},
	{"Home & Garden", "Home improvement and gardening supplies"},
	{"Sports & Outdoors", "Sports equipment and outdoor gear"},
	{"Food & Beverage", "Food items and beverages"},
}

var seedProducts = []seedProduct{
	{"Smartphone", "ELEC-001", 50, 699.99, 1, StatusActive, "Latest smartphone with advanced features"},
	{"Laptop", "ELEC-002", 25, 1299.99, 1, StatusActive, "High-performance laptop for work and gaming"},
	{"Wireless Headphones", "ELEC-003", 100, 199.99, 1, StatusActive, "Noise-canceling wireless headphones"},
	{"Smart Watch", "ELEC-004", 0, 299.99, 1, StatusOutOfStock, "Fitness tracking smartwatch"},

	{"T-Shirt", "CLOTH-001", 200, 19.99, 2, StatusActive, "Comfortable cotton t-shirt"},
	{"Jeans", "CLOTH-002", 75, 59.99, 2, StatusActive, "Classic blue jeans"},
	{"Sneakers", "CLOTH-003", 30, 89.99, 2, StatusActive, "Comfortable running sneakers"},
	{"Winter Jacket", "CLOTH-004", 15, 149.99, 2, StatusInactive, "Warm winter jacket"},

	{"Programming Book", "BOOK-001", 40, 49.99, 3, StatusActive, "Learn Python programming"},
	{"Novel", "BOOK-002", 60, 14.99, 3, StatusActive, "Bestselling fiction novel"},
	{"Cookbook", "BOOK-003", 35, 29.99, 3, StatusActive, "Healthy cooking recipes"},
	{"History Book", "BOOK-004", 20, 39.99, 3, StatusDiscontinued, "World history textbook"},

	{"Garden Hose", "HOME-001", 25, 39.99, 4, StatusActive, "50ft expandable garden hose"},
	{"Plant Pot", "HOME-002", 80, 12.99, 4, StatusActive, "Ceramic plant pot with drainage"},
	{"Tool Set", "HOME-003", 15, 79.99, 4, StatusActive, "Complete home repair tool set"},
	{"Lawn Mower", "HOME-004", 5, 299.99, 4, StatusActive, "Electric lawn mower"},

	{"Basketball", "SPORT-001", 30, 24.99, 5, StatusActive, "Official size basketball"},
	{"Camping Tent", "SPORT-002", 12, 149.99, 5, StatusActive, "4-person camping tent"},

	{"Coffee Beans", "FOOD-001", 100, 15.99, 6, StatusActive, "Premium arabica coffee beans"},
	{"Energy Drink", "FOOD-002", 200, 2.99, 6, StatusActive, "Sugar-free energy drink"},
}

// seed must run on an empty store so the dataset gets ids 1..n.
func (s *MemStore) seed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range seedCategories {
		s.insertCategory(CreateCategoryCommand{Name: c.name, Description: &c.description})
	}
	for _, p := range seedProducts {
		s.insertProduct(CreateProductCommand{
			Name:        p.name,
			SKU:         p.sku,
			Stock:       p.stock,
			Price:       p.price,
			CategoryID:  p.categoryID,
			Status:      p.status,
			Description: &p.description,
		})
	}
}
