package domain

// Order is the normalized order payload invoices are generated from.
// Monetary values arrive as strings and are parsed with decimal to keep
// the platform's exact representation.
type Order struct {
	ID              string           `json:"id"`
	Number          string           `json:"number"`
	Customer        OrderCustomer    `json:"customer"`
	BillingAddress  OrderAddress     `json:"billing_address"`
	ShippingAddress OrderAddress     `json:"shipping_address"`
	LineItems       []OrderLineItem  `json:"line_items"`
	ShippingLines   []ShippingLine   `json:"shipping_lines"`
	DiscountCodes   []DiscountCode   `json:"discount_codes"`
}

type OrderCustomer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	GSTIN     string `json:"gstin"`
}

type OrderAddress struct {
	Name     string `json:"name"`
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	City     string `json:"city"`
	Province string `json:"province"`
	Zip      string `json:"zip"`
	Country  string `json:"country"`
	Phone    string `json:"phone"`
}

type OrderLineItem struct {
	ProductID     string   `json:"product_id"`
	VariantID     string   `json:"variant_id"`
	Title         string   `json:"title"`
	SKU           string   `json:"sku"`
	Quantity      int64    `json:"quantity"`
	Price         string   `json:"price"`
	TotalDiscount string   `json:"total_discount"`
	CollectionIDs []string `json:"collection_ids"`
}

type ShippingLine struct {
	Price string `json:"price"`
}

type DiscountCode struct {
	Code   string `json:"code"`
	Amount string `json:"amount"`
}
