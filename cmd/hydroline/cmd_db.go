package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hydroline/hydroline/config"
	"github.com/hydroline/hydroline/database/seeders"
	"github.com/hydroline/hydroline/pkg/database"
	"github.com/hydroline/hydroline/pkg/migration"
)

// bootDB loads config and opens the database connection.
func bootDB() (*database.DB, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}
	return database.Open(config.DatabaseDriver(), config.DatabaseDSN())
}

// hydroline migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := bootDB()
		if err != nil {
			return err
		}
		defer db.Close()
		fmt.Println("Running migrations…")
		return migration.New(db.Gorm).Run()
	},
}

// hydroline migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := bootDB()
		if err != nil {
			return err
		}
		defer db.Close()
		fmt.Println("Rolling back last batch…")
		return migration.New(db.Gorm).Rollback()
	},
}

// hydroline migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := bootDB()
		if err != nil {
			return err
		}
		defer db.Close()
		return migration.New(db.Gorm).Status()
	},
}

// hydroline seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := bootDB()
		if err != nil {
			return err
		}
		defer db.Close()
		fmt.Println("Running seeders…")
		return seeders.RunAll(db.Gorm)
	},
}
