package domain

type PaymentStatus string

const (
	PaymentOnline PaymentStatus = "Online"
	PaymentCash   PaymentStatus = "Cash"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentOnline, PaymentCash:
		return true
	}
	return false
}

type DeliveryStatus string

const (
	DeliveryDone        DeliveryStatus = "Done"
	DeliveryPending     DeliveryStatus = "Pending"
	DeliveryCancel      DeliveryStatus = "Cancel"
	DeliveryFullPayment DeliveryStatus = "Full Payment"
	DeliveryHalfPayment DeliveryStatus = "Half Payment"
)

func (s DeliveryStatus) Valid() bool {
	switch s {
	case DeliveryDone, DeliveryPending, DeliveryCancel, DeliveryFullPayment, DeliveryHalfPayment:
		return true
	}
	return false
}

// Order is one purchase order, stored as the document at orders/{order_number}.
// OrderNumber is assigned at creation and never changes, and TotalPrice is
// fixed at creation and not recomputed afterwards. Only AmountReceived,
// PaymentStatus and DeliveryStatus are mutable after creation.
type Order struct {
	OrderNumber    int64          `json:"order_number"`
	EmployeeID     string         `json:"employee_id"`
	CustomerName   string         `json:"customer_name"`
	ContactNumber  *int64         `json:"contact_number,omitempty"`
	OrderDate      string         `json:"order_date"`
	DeliveryDate   string         `json:"delivery_date"`
	ProductID      string         `json:"product_id"`
	Quantity       float64        `json:"quantity"`
	Price          float64        `json:"price"`
	TotalPrice     float64        `json:"total_price"`
	ShopName       string         `json:"shop_name"`
	Location       string         `json:"location"`
	Landmark       string         `json:"landmark"`
	Remarks        string         `json:"remarks"`
	AmountReceived float64        `json:"amount_received"`
	PaymentStatus  PaymentStatus  `json:"payment_status,omitempty"`
	DeliveryStatus DeliveryStatus `json:"delivery_status,omitempty"`
}
