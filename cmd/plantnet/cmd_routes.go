package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/plantnet-dev/plantnet/internal/server"
	"github.com/plantnet-dev/plantnet/pkg/collection"
	"github.com/plantnet-dev/plantnet/pkg/workerpool"
)

var routesCmd = &cobra.Command{
	Use:   "route:list",
	Short: "Print the named routes the API exposes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(_ context.Context, db *mongo.Database) error {
			pool := workerpool.New(1)
			defer pool.Shutdown()

			r := server.BuildRouter(db, pool)

			type row struct{ name, path string }
			rows := []row{}
			for name, path := range r.Routes() {
				rows = append(rows, row{name, path})
			}
			rows = collection.SortBy(rows, func(a, b row) bool { return a.name < b.name })

			for _, rt := range rows {
				fmt.Printf("%-24s %s\n", rt.name, rt.path)
			}
			return nil
		})
	},
}
