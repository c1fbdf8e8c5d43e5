package db

import (
	"hms/src/lib/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var db *gorm.DB

// GetDb returns the shared connection, or nil before Connect or NewDB.
func GetDb() *gorm.DB {
	return db
}

// Connect opens the shared connection on first use.
func Connect(dsn string) (*gorm.DB, error) {
	if db != nil {
		return db, nil
	}
	_db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		logger.Log.Errorf("Error connecting to database: %s", err.Error())
		return nil, err
	}
	sqlDB, err := _db.DB()
	if err != nil {
		logger.Log.Errorf("Error establishing connection to database: %s", err.Error())
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	db = _db
	return _db, nil
}

func NewDB(newdb *gorm.DB) {
	db = newdb
}
