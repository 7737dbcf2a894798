package config

import (
	"fmt"
	"strings"

	model "github.com/venchfc/litmusEU/repository"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var enumQueries = []string{
	`CREATE TYPE litmus.score_state AS ENUM ('DRAFT', 'LOCKED')`,
	`CREATE TYPE litmus.user_role AS ENUM ('admin', 'tabulator', 'judge')`,
	`CREATE TYPE litmus.event_status AS ENUM ('active', 'completed')`,
}

func InitDB(host string, port string, user string, password string, dbName string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", host, port, user, password, dbName)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   "litmus.",
			SingularTable: false,
		},
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	return db, Migrate(db)
}

// Migrate creates the schema, enum types and tables. Safe to run repeatedly.
func Migrate(db *gorm.DB) error {
	x := db.Exec(`CREATE SCHEMA IF NOT EXISTS litmus`)
	if x.Error != nil {
		return x.Error
	}
	for _, query := range enumQueries {
		x := db.Exec(query)
		if x.Error != nil {
			if strings.Contains(x.Error.Error(), "already exists") {
				continue
			}
			return x.Error
		}
	}

	return db.AutoMigrate(
		&model.Event{},
		&model.Competition{},
		&model.Contestant{},
		&model.Criterion{},
		&model.Judge{},
		&model.User{},
		&model.ScoreEntry{},
	)
}
