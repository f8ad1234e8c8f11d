package main

import (
	"strings"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	"github.com/spf13/viper"

	"github.com/healthtrack-app/healthtrack-api/schema"
)

func init() {
	viper.AutomaticEnv()
	viper.SetEnvPrefix("steps")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

func main() {
	db, err := gorm.Open("postgres", viper.GetString("orm.conn"))
	if err != nil {
		panic(err)
	}

	if err := db.Exec(`CREATE SCHEMA IF NOT EXISTS steps`).Error; err != nil {
		panic(err)
	}

	if err := db.Exec("SET search_path TO steps").Error; err != nil {
		panic(err)
	}

	if err := db.AutoMigrate(
		&schema.SessionRecord{},
	).Error; err != nil {
		panic(err)
	}

	if err := db.Model(schema.SessionRecord{}).
		AddIndex("step_sessions_account_started", "account_number", "started_at").Error; err != nil {
		panic(err)
	}

	if viper.GetString("mongo.conn") != "" {
		schema.NewMongoDBIndexer(viper.GetString("mongo.conn"), viper.GetString("mongo.database")).IndexAll()
	}
}
