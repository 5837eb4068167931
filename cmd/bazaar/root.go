package main

import (
	"github.com/bazaar-dev/bazaar/db"
	"github.com/bazaar-dev/bazaar/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRootCommand() *cobra.Command {
	v := config.New()

	root := &cobra.Command{
		Use:           "bazaar",
		Short:         "Blog and store web application",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("db-driver", "", "database driver: postgres or mysql (env DB_DRIVER)")
	root.PersistentFlags().String("database-url", "", "database connection string (env DATABASE_URL)")
	_ = v.BindPFlag("db_driver", root.PersistentFlags().Lookup("db-driver"))
	_ = v.BindPFlag("db_url", root.PersistentFlags().Lookup("database-url"))

	root.AddCommand(
		newServeCommand(v),
		newMigrateCommand(v),
		newCreateSuperuserCommand(v),
	)

	return root
}

// connect loads the configuration and opens the database.
func connect(v *viper.Viper) (*config.Config, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}

	if err := db.ConnectDatabase(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func newMigrateCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := connect(v); err != nil {
				return err
			}
			defer db.Close()

			if err := db.MigrateDatabase(); err != nil {
				return err
			}

			cmd.Println("Database schema is up to date")
			return nil
		},
	}
}
