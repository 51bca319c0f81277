package repository

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kutbudev/taskpilot/pkg/config"
	"github.com/kutbudev/taskpilot/pkg/models"
)

// Database manages the database connection
type Database struct {
	DB *gorm.DB
}

var db *Database

// NewDatabase opens the postgres connection, configures the pool and runs
// the schema migration. Subsequent calls return the existing connection.
func NewDatabase(cfg *config.Config) (*Database, error) {
	if db != nil {
		return db, nil
	}

	var logLevel logger.LogLevel
	if cfg.Debug {
		logLevel = logger.Info
	} else {
		logLevel = logger.Warn
	}

	gormConfig := &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	}

	sqlDB, err := sql.Open("postgres", cfg.GetDatabaseDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	database, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db = &Database{DB: database}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Info("Database connection established successfully")
	return db, nil
}

// GetDB returns the current database connection.
func GetDB() *Database {
	if db == nil {
		panic("Database not initialized. Call NewDatabase first.")
	}
	return db
}

// Migrate creates or updates the database schema.
func (d *Database) Migrate() error {
	return d.DB.AutoMigrate(
		&models.Project{},
		&models.Tag{},
		&models.Task{},
		&models.Comment{},
	)
}

// Close closes the database connection.
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Health checks database health.
func (d *Database) Health() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
