package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/greenpantry/storefront/app/configs"
	"github.com/greenpantry/storefront/app/db/seeders"
	"github.com/greenpantry/storefront/app/models/migrations"
	"github.com/greenpantry/storefront/app/services"
	"github.com/greenpantry/storefront/app/storage"
	"github.com/greenpantry/storefront/app/utils/format"
	"github.com/urfave/cli/v3"
)

const defaultCartDir = "./data/carts"

func RunCli() {
	cmd := &cli.Command{
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection()
					if err != nil {
						return err
					}
					if err := migrations.AutoMigrate(db); err != nil {
						return err
					}
					log.Println("✅ Migration complete")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Populate the catalog with sample products and bundles",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection()
					if err != nil {
						return err
					}
					if err := migrations.AutoMigrate(db); err != nil {
						return err
					}
					if err := seeders.DBSeed(db); err != nil {
						return err
					}
					log.Println("✅ Seeding complete")
					return nil
				},
			},
			{
				Name:  "generate-keys",
				Usage: "Generate new session authentication and encryption keys for .env",
				Action: func(ctx context.Context, c *cli.Command) error {
					if err := configs.GenerateAndPrintSessionKeys(); err != nil {
						return err
					}
					log.Println("✅ Key generation complete. Please copy the keys to your .env file.")
					return nil
				},
			},
			{
				Name:  "cart",
				Usage: "Inspect or clear a file-backed guest cart",
				Commands: []*cli.Command{
					{
						Name:  "show",
						Usage: "Print the guest cart",
						Flags: []cli.Flag{cartDirFlag()},
						Action: func(ctx context.Context, c *cli.Command) error {
							svc, err := fileCartService(c.String("dir"))
							if err != nil {
								return err
							}

							cart := svc.Load(ctx)
							if len(cart.Items) == 0 {
								fmt.Println("Cart is empty.")
								return nil
							}

							for i := range cart.Items {
								item := &cart.Items[i]
								fmt.Printf("%dx %-40s %s (%s each)\n",
									item.Quantity,
									item.DisplayName(),
									format.FormatPrice(item.Total),
									format.FormatPrice(item.Price),
								)
							}
							fmt.Printf("\nSubtotal: %s\n", format.FormatPrice(cart.TotalPrice))
							fmt.Printf("Shipping: %s\n", format.FormatPrice(cart.ShippingCharge))
							fmt.Printf("Total:    %s\n", format.FormatPrice(cart.FinalPrice))
							return nil
						},
					},
					{
						Name:  "clear",
						Usage: "Delete the guest cart record",
						Flags: []cli.Flag{cartDirFlag()},
						Action: func(ctx context.Context, c *cli.Command) error {
							svc, err := fileCartService(c.String("dir"))
							if err != nil {
								return err
							}
							svc.Clear(ctx)
							fmt.Println("Cart cleared.")
							return nil
						},
					},
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func cartDirFlag() cli.Flag {
	dir := defaultCartDir
	if configs.LoadENV.CartDir != "" {
		dir = configs.LoadENV.CartDir
	}
	return &cli.StringFlag{
		Name:  "dir",
		Usage: "directory the cart files live in",
		Value: dir,
	}
}

func fileCartService(dir string) (*services.GuestCartService, error) {
	store, err := storage.NewFileStore(dir)
	if err != nil {
		return nil, err
	}
	return services.NewGuestCartService(store, "", configs.LoadENV.ShippingPolicy()), nil
}
