package cmd

import (
	"fmt"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"cashbox/internal/storage"
	"cashbox/internal/storage/local"
	"cashbox/internal/storage/postgres"
	"cashbox/pkg/logger"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed demo data",
	Long:  `Write the demo users and transactions into the configured backends`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSeeder(); err != nil {
			fmt.Fprintf(os.Stderr, "Seeding failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func runSeeder() error {
	config, err := loadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Logging.Level, config.Logging.Format)
	log := logger.LoggerWrapper()

	store, err := local.Open(config.Storage.LocalPath)
	if err != nil {
		return fmt.Errorf("failed to open local store: %w", err)
	}

	users := storage.SeedUsers()
	txs := storage.SeedTransactions()

	localUsers := local.NewUserRepository(store, users)
	localTxs := local.NewTransactionRepository(store, txs)
	if clearData {
		if err := localUsers.Reset(users); err != nil {
			return fmt.Errorf("failed to reset local users: %w", err)
		}
		if err := localTxs.Reset(txs); err != nil {
			return fmt.Errorf("failed to reset local transactions: %w", err)
		}
		log.Info("local snapshots reset to seed data")
	} else {
		// The local repositories write the seed lists through on first read.
		if _, err := localUsers.ReadAll(); err != nil {
			return fmt.Errorf("failed to seed local users: %w", err)
		}
		if _, err := localTxs.ReadAll(); err != nil {
			return fmt.Errorf("failed to seed local transactions: %w", err)
		}
		log.Info("local snapshots seeded")
	}

	if !config.RemoteEnabled() {
		return nil
	}

	db, err := sqlx.Connect("pgx", config.Database.Source)
	if err != nil {
		return fmt.Errorf("failed to connect to remote database: %w", err)
	}
	defer db.Close()

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to open remote database: %w", err)
	}

	remoteUsers := postgres.NewUserRepository(gormDB)
	existing, err := remoteUsers.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to read remote users: %w", err)
	}
	present := make(map[string]bool, len(existing))
	for _, u := range existing {
		present[u.ID] = true
	}
	for _, u := range users {
		if present[u.ID] {
			continue
		}
		if err := remoteUsers.Insert(u); err != nil {
			return fmt.Errorf("failed to seed remote user %s: %w", u.Username, err)
		}
	}

	remoteTxs := postgres.NewTransactionRepository(gormDB)
	existingTxs, err := remoteTxs.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to read remote transactions: %w", err)
	}
	presentTx := make(map[string]bool, len(existingTxs))
	for _, t := range existingTxs {
		presentTx[t.ID] = true
	}
	for _, t := range txs {
		if presentTx[t.ID] {
			continue
		}
		if err := remoteTxs.Insert(t); err != nil {
			return fmt.Errorf("failed to seed remote transaction %s: %w", t.ID, err)
		}
	}

	log.Info("remote backend seeded", "users", len(users), "transactions", len(txs))
	return nil
}
