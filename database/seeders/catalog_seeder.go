package seeders

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/plantnet-dev/plantnet/app/models"
)

func init() {
	Register("accounts", seedAccounts)
	Register("catalog", seedCatalog)
}

// seedAccounts upserts a known admin and seller so a fresh database is
// usable immediately. Reruns leave existing documents alone.
func seedAccounts(ctx context.Context, db *mongo.Database) error {
	users := []models.User{
		{Name: "Admin", Email: "admin@plantnet.app", Role: models.RoleAdmin, Status: models.StatusVerified},
		{Name: "Demo Seller", Email: "seller@plantnet.app", Role: models.RoleSeller, Status: models.StatusVerified},
	}
	col := db.Collection("users")
	for _, u := range users {
		u.Timestamp = time.Now().UnixMilli()
		_, err := col.UpdateOne(ctx,
			bson.D{{Key: "email", Value: u.Email}},
			bson.D{{Key: "$setOnInsert", Value: u}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return fmt.Errorf("seeders: account %s: %w", u.Email, err)
		}
	}
	return nil
}

func seedCatalog(ctx context.Context, db *mongo.Database) error {
	col := db.Collection("plants")
	n, err := col.EstimatedDocumentCount(ctx)
	if err != nil {
		return fmt.Errorf("seeders: count plants: %w", err)
	}
	if n > 0 {
		return nil
	}

	seller := models.SellerRef{Name: "Demo Seller", Email: "seller@plantnet.app"}
	plants := []interface{}{
		models.Plant{Name: "Monstera Deliciosa", Category: "Indoor", Price: 35, Quantity: 12, Seller: seller,
			Description: "Split-leaf philodendron, tolerates low light."},
		models.Plant{Name: "Snake Plant", Category: "Succulent", Price: 18, Quantity: 30, Seller: seller,
			Description: "Nearly indestructible, purifies air."},
		models.Plant{Name: "Fiddle Leaf Fig", Category: "Indoor", Price: 48, Quantity: 7, Seller: seller,
			Description: "Statement plant, wants bright indirect light."},
		models.Plant{Name: "Rosemary", Category: "Herb", Price: 9, Quantity: 40, Seller: seller,
			Description: "Hardy kitchen herb for a sunny sill."},
	}
	if _, err := col.InsertMany(ctx, plants); err != nil {
		return fmt.Errorf("seeders: insert plants: %w", err)
	}
	return nil
}
