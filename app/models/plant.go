package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// SellerRef is the seller identity denormalized into each plant document.
type SellerRef struct {
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
	Email string `bson:"email"          json:"email"`
}

type Plant struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"         json:"_id,omitempty"`
	Name        string             `bson:"name"                  json:"name"`
	Category    string             `bson:"category,omitempty"    json:"category,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Image       string             `bson:"image,omitempty"       json:"image,omitempty"`
	Price       float64            `bson:"price"                 json:"price"`
	Quantity    int                `bson:"quantity"              json:"quantity"`
	Seller      SellerRef          `bson:"seller"                json:"seller"`
}
