package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// statusTransitions defines the legal order lifecycle. Delivered and
// Cancelled are terminal.
var statusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered: {},
	OrderStatusCancelled: {},
}

// CanTransitionTo reports whether moving from s to next is a legal transition
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ParseOrderStatus validates a raw status string
func ParseOrderStatus(raw string) (OrderStatus, bool) {
	status := OrderStatus(raw)
	_, known := statusTransitions[status]
	return status, known
}

type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "cod"
	PaymentMethodOnline PaymentMethod = "online"
)

type ShippingMethod string

const (
	ShippingMethodStandard ShippingMethod = "standard"
	ShippingMethodExpress  ShippingMethod = "express"
)

// OrderItem records the unit price at order time; it is never looked up
// again from the product collection
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"product_id"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Price     float64            `bson:"price" json:"price"`
}

// Order is immutable once created except for the status field
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	OrderNumber     string             `bson:"orderNumber"`
	UserID          primitive.ObjectID `bson:"userId"`
	Products        []OrderItem        `bson:"products"`
	TotalAmount     float64            `bson:"totalAmount"`
	PaymentMethod   PaymentMethod      `bson:"paymentMethod"`
	ShippingMethod  ShippingMethod     `bson:"shippingMethod"`
	ShippingAddress string             `bson:"shippingAddress"`
	Status          OrderStatus        `bson:"status"`
	OrderedAt       time.Time          `bson:"orderedAt"`
}
