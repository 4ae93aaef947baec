package main

import (
	"context"
	"fmt"

	"vistonomade/internal/checklist"
	"vistonomade/internal/db"
	"vistonomade/internal/seed"
	"vistonomade/internal/store"

	"github.com/k0kubun/pp/v3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with initial data",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "show-catalog",
			Usage: "Print the static checklist catalog and exit",
		},
	},
	Action: func(c *cli.Context) error {
		if c.Bool("show-catalog") {
			pp.Println(checklist.SystemCatalog)
			return nil
		}

		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logrus.Info("Connected to database")

		guideRepo := store.NewGuideRepository(pool)

		logrus.Info("Seeding guides...")
		if err := seed.SeedGuides(ctx, guideRepo); err != nil {
			return fmt.Errorf("failed to seed guides: %w", err)
		}

		logrus.Info("Guides seeded successfully")

		return nil
	},
}
