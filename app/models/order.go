package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Order status progression. Orders start Pending and can only be cancelled
// before they reach Delivered.
const (
	OrderPending    = "Pending"
	OrderProcessing = "Processing"
	OrderDelivered  = "Delivered"
)

// CustomerRef is the customer identity denormalized into each order document.
type CustomerRef struct {
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
	Email string `bson:"email"          json:"email"`
}

// Order references its plant by hex string rather than ObjectID; the listing
// pipelines convert it back with $toObjectId before the lookup.
type Order struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"     json:"_id,omitempty"`
	Customer CustomerRef        `bson:"customer"          json:"customer"`
	Seller   string             `bson:"seller"            json:"seller"`
	PlantID  string             `bson:"plantId"           json:"plantId"`
	Quantity int                `bson:"quantity"          json:"quantity"`
	Price    float64            `bson:"price"             json:"price"`
	Address  string             `bson:"address,omitempty" json:"address,omitempty"`
	Status   string             `bson:"status"            json:"status"`
}

// EnrichedOrder is an order joined with its plant's display fields. PlantID
// comes back as an ObjectID because the pipeline converts it for the lookup.
type EnrichedOrder struct {
	ID       primitive.ObjectID `bson:"_id"                json:"_id"`
	Customer CustomerRef        `bson:"customer"           json:"customer"`
	Seller   string             `bson:"seller"             json:"seller"`
	PlantID  primitive.ObjectID `bson:"plantId"            json:"plantId"`
	Quantity int                `bson:"quantity"           json:"quantity"`
	Price    float64            `bson:"price"              json:"price"`
	Address  string             `bson:"address,omitempty"  json:"address,omitempty"`
	Status   string             `bson:"status"             json:"status"`
	Name     string             `bson:"name,omitempty"     json:"name,omitempty"`
	Category string             `bson:"category,omitempty" json:"category,omitempty"`
	Image    string             `bson:"image,omitempty"    json:"image,omitempty"`
}

// ChartRow is one per-day bucket of order volume, keyed by the creation date
// recovered from the order's ObjectID.
type ChartRow struct {
	Date     string  `bson:"_id"      json:"date"`
	Quantity int     `bson:"quantity" json:"quantity"`
	Price    float64 `bson:"price"    json:"price"`
	Order    int     `bson:"order"    json:"order"`
}

// AdminStats is the dashboard payload for the admin overview.
type AdminStats struct {
	TotalUsers   int64      `json:"totalUser"`
	TotalPlants  int64      `json:"totalPlants"`
	TotalOrders  int64      `json:"totalOrders"`
	TotalRevenue float64    `json:"totalRevenue"`
	ChartData    []ChartRow `json:"chartData"`
}
