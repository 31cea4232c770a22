package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Roles controlling operation access.
const (
	RoleCustomer = "customer"
	RoleSeller   = "seller"
	RoleAdmin    = "admin"
)

// Seller-request lifecycle.
const (
	StatusRequested = "Requested"
	StatusVerified  = "Verified"
)

// User is created on first authenticated contact (upsert by email) and never
// deleted by the system.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"       json:"_id,omitempty"`
	Name      string             `bson:"name,omitempty"      json:"name,omitempty"`
	Image     string             `bson:"image,omitempty"     json:"image,omitempty"`
	Email     string             `bson:"email"               json:"email"`
	Role      string             `bson:"role,omitempty"      json:"role,omitempty"`
	Status    string             `bson:"status,omitempty"    json:"status,omitempty"`
	Timestamp int64              `bson:"timestamp,omitempty" json:"timestamp,omitempty"` // ms since epoch
}
