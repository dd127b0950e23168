package db

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"restaurant-pos/internal/domain"
)

// NewFromEnv opens the embedded sqlite store by default (POS_DB_PATH,
// pos.db when unset). Setting MYSQL_HOST switches to a shared MySQL server
// for multi-terminal deployments.
func NewFromEnv() (*gorm.DB, error) {
	if os.Getenv("MYSQL_HOST") != "" {
		return openMySQL()
	}
	path := os.Getenv("POS_DB_PATH")
	if path == "" {
		path = "pos.db"
	}
	return Open(sqlite.Open(path))
}

func openMySQL() (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		os.Getenv("MYSQL_USER"), os.Getenv("MYSQL_PASSWORD"),
		os.Getenv("MYSQL_HOST"), os.Getenv("MYSQL_PORT"), os.Getenv("MYSQL_DATABASE"))
	return Open(mysql.Open(dsn))
}

// Open connects and migrates the POS tables.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	gdb, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := gdb.AutoMigrate(
		&domain.Item{},
		&domain.Customer{},
		&domain.User{},
		&domain.Order{},
		&domain.OrderLine{},
	); err != nil {
		return nil, err
	}
	return gdb, nil
}
