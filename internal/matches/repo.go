package matches

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xaitan80/cricfanzz/internal/apperr"
	"github.com/xaitan80/cricfanzz/internal/scorecard"
)

// Repo is the SQLite gateway. The schema comes from db.Migrate.
type Repo struct {
	db  *gorm.DB
	now func() time.Time
}

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db, now: time.Now} }

// InsertBatch writes the whole batch in one transaction.
func (r *Repo) InsertBatch(ctx context.Context, records []scorecard.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	stamped, err := stamp(records, r.now())
	if err != nil {
		return 0, apperr.Storage("insert batch", err)
	}
	rows := make([]scorecardRow, 0, len(stamped))
	for _, rec := range stamped {
		rows = append(rows, toRow(rec))
	}
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&rows).Error
	})
	if err != nil {
		return 0, apperr.Storage("insert batch", err)
	}
	return len(rows), nil
}

func (r *Repo) ListRecent(ctx context.Context, limit int) ([]scorecard.Record, error) {
	var rows []scorecardRow
	err := r.preloaded(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(clampLimit(limit)).
		Find(&rows).Error
	if err != nil {
		return nil, apperr.Storage("list recent", err)
	}
	out := make([]scorecard.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromRow(row))
	}
	return out, nil
}

func (r *Repo) FindByID(ctx context.Context, id string) (scorecard.Record, error) {
	var row scorecardRow
	err := r.preloaded(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return scorecard.Record{}, apperr.NotFound("find match", id)
	}
	if err != nil {
		return scorecard.Record{}, apperr.Storage("find match", err)
	}
	return fromRow(row), nil
}

func (r *Repo) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return apperr.Storage("ping", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return apperr.Storage("ping", err)
	}
	return nil
}

func (r *Repo) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Innings", func(db *gorm.DB) *gorm.DB { return db.Order("number") }).
		Preload("Innings.Batting", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Innings.Bowling", func(db *gorm.DB) *gorm.DB { return db.Order("position") })
}
