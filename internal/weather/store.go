package weather

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/xaitan80/cricfanzz/internal/apperr"
)

// Collection is where snapshots live in MongoDB.
const Collection = "WeatherData"

type Store interface {
	Save(ctx context.Context, s Snapshot) error
}

type snapshotRow struct {
	ID          string `gorm:"primaryKey"`
	City        string
	Date        string
	Temperature float64
	Humidity    float64
	WindSpeed   float64
	CloudCover  float64
	Conditions  string
	FetchedAt   time.Time
}

func (snapshotRow) TableName() string { return "weather_snapshots" }

// GormStore writes to the weather_snapshots table.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{db: db} }

func (s *GormStore) Save(ctx context.Context, snap Snapshot) error {
	row := snapshotRow(snap)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return apperr.Storage("save weather", err)
	}
	return nil
}

type snapshotDoc struct {
	ID          string    `bson:"_id"`
	City        string    `bson:"city"`
	Date        string    `bson:"date"`
	Temperature float64   `bson:"temperature"`
	Humidity    float64   `bson:"humidity"`
	WindSpeed   float64   `bson:"windSpeed"`
	CloudCover  float64   `bson:"cloudCover"`
	Conditions  string    `bson:"conditions"`
	FetchedAt   time.Time `bson:"fetchedAt"`
}

type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(coll *mongo.Collection) *MongoStore { return &MongoStore{coll: coll} }

func (s *MongoStore) Save(ctx context.Context, snap Snapshot) error {
	if _, err := s.coll.InsertOne(ctx, snapshotDoc(snap)); err != nil {
		return apperr.Storage("save weather", err)
	}
	return nil
}
