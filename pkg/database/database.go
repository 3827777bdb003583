package database

import (
	"fmt"

	"deepeng_backend/internal/config"
	"deepeng_backend/internal/model"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	if err := SeedIfEmpty(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Module{},
		&model.Exercise{},
		&model.Progress{},
		&model.Assignment{},
		&model.DictionaryEntry{},
		&model.PlacementQuestion{},
	)
	if err != nil {
		return err
	}
	zap.L().Info("database migration completed")
	return nil
}
