package matches

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/xaitan80/cricfanzz/internal/apperr"
	"github.com/xaitan80/cricfanzz/internal/scorecard"
)

// Collection is where scorecards live in MongoDB.
const Collection = "MatchData"

type scorecardDoc struct {
	ID               string     `bson:"_id"`
	Status           string     `bson:"status"`
	Team1            string     `bson:"team1"`
	Team2            string     `bson:"team2"`
	Score1           string     `bson:"score1"`
	Score2           string     `bson:"score2"`
	MatchResult      string     `bson:"match_result"`
	MatchURL         string     `bson:"match_url"`
	Venue            string     `bson:"venue"`
	Date             string     `bson:"date"`
	Toss             string     `bson:"toss"`
	PlayerOfTheMatch string     `bson:"player_of_the_match"`
	CurrentRunRate   string     `bson:"current_run_rate"`
	Inning1          *inningDoc `bson:"inning_1,omitempty"`
	Inning2          *inningDoc `bson:"inning_2,omitempty"`
	CreatedAt        time.Time  `bson:"createdAt"`
}

type inningDoc struct {
	BattingTeam string      `bson:"batting_team"`
	BowlingTeam string      `bson:"bowling_team"`
	Batting     []batterDoc `bson:"batting"`
	Bowling     []bowlerDoc `bson:"bowling"`
}

type batterDoc struct {
	Name       string `bson:"name"`
	Runs       string `bson:"runs"`
	Balls      string `bson:"balls"`
	Fours      string `bson:"fours"`
	Sixes      string `bson:"sixes"`
	StrikeRate string `bson:"strike_rate"`
}

type bowlerDoc struct {
	Name         string `bson:"name"`
	Overs        string `bson:"overs"`
	Maidens      string `bson:"maidens"`
	RunsConceded string `bson:"runs_conceded"`
	Wickets      string `bson:"wickets"`
	Economy      string `bson:"economy"`
}

// MongoRepo is the MongoDB gateway.
type MongoRepo struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewMongoRepo(coll *mongo.Collection) *MongoRepo {
	return &MongoRepo{coll: coll, now: time.Now}
}

// EnsureIndexes creates the recency index used by ListRecent.
func (r *MongoRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}},
	})
	if err != nil {
		return apperr.Storage("ensure indexes", err)
	}
	return nil
}

// InsertBatch inserts in order. A standalone server has no multi-document
// transactions, so on failure the ids of the batch are deleted again before
// the error is returned.
func (r *MongoRepo) InsertBatch(ctx context.Context, records []scorecard.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	stamped, err := stamp(records, r.now())
	if err != nil {
		return 0, apperr.Storage("insert batch", err)
	}
	docs := make([]interface{}, 0, len(stamped))
	ids := make([]string, 0, len(stamped))
	for _, rec := range stamped {
		docs = append(docs, toDoc(rec))
		ids = append(ids, rec.ID)
	}

	if _, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if _, derr := r.coll.DeleteMany(cleanupCtx, bson.M{"_id": bson.M{"$in": ids}}); derr != nil {
			zerolog.Ctx(ctx).Error().Err(derr).Int("batch", len(ids)).Msg("rollback of partial insert failed")
		}
		return 0, apperr.Storage("insert batch", err)
	}
	return len(docs), nil
}

func (r *MongoRepo) ListRecent(ctx context.Context, limit int) ([]scorecard.Record, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(clampLimit(limit)))
	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, apperr.Storage("list recent", err)
	}
	var docs []scorecardDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, apperr.Storage("list recent", err)
	}
	out := make([]scorecard.Record, 0, len(docs))
	for _, d := range docs {
		out = append(out, fromDoc(d))
	}
	return out, nil
}

func (r *MongoRepo) FindByID(ctx context.Context, id string) (scorecard.Record, error) {
	var doc scorecardDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return scorecard.Record{}, apperr.NotFound("find match", id)
	}
	if err != nil {
		return scorecard.Record{}, apperr.Storage("find match", err)
	}
	return fromDoc(doc), nil
}

func (r *MongoRepo) Ping(ctx context.Context) error {
	if err := r.coll.Database().Client().Ping(ctx, readpref.Primary()); err != nil {
		return apperr.Storage("ping", err)
	}
	return nil
}

func toDoc(r scorecard.Record) scorecardDoc {
	return scorecardDoc{
		ID:               r.ID,
		Status:           r.Status,
		Team1:            r.Team1,
		Team2:            r.Team2,
		Score1:           r.Score1,
		Score2:           r.Score2,
		MatchResult:      r.MatchResult,
		MatchURL:         r.MatchURL,
		Venue:            r.Venue,
		Date:             r.Date,
		Toss:             r.Toss,
		PlayerOfTheMatch: r.PlayerOfTheMatch,
		CurrentRunRate:   r.CurrentRunRate,
		Inning1:          toInningDoc(r.Inning1),
		Inning2:          toInningDoc(r.Inning2),
		CreatedAt:        r.CreatedAt,
	}
}

func toInningDoc(in *scorecard.Inning) *inningDoc {
	if in == nil {
		return nil
	}
	d := &inningDoc{
		BattingTeam: in.BattingTeam,
		BowlingTeam: in.BowlingTeam,
		Batting:     make([]batterDoc, 0, len(in.Batting)),
		Bowling:     make([]bowlerDoc, 0, len(in.Bowling)),
	}
	for _, b := range in.Batting {
		d.Batting = append(d.Batting, batterDoc{
			Name:       b.Name,
			Runs:       b.Runs.Text,
			Balls:      b.Balls.Text,
			Fours:      b.Fours.Text,
			Sixes:      b.Sixes.Text,
			StrikeRate: b.StrikeRate.Text,
		})
	}
	for _, b := range in.Bowling {
		d.Bowling = append(d.Bowling, bowlerDoc{
			Name:         b.Name,
			Overs:        b.Overs.Text,
			Maidens:      b.Maidens.Text,
			RunsConceded: b.RunsConceded.Text,
			Wickets:      b.Wickets.Text,
			Economy:      b.Economy.Text,
		})
	}
	return d
}

func fromDoc(d scorecardDoc) scorecard.Record {
	r := scorecard.Record{
		ID:               d.ID,
		Status:           d.Status,
		Team1:            d.Team1,
		Team2:            d.Team2,
		Score1:           d.Score1,
		Score2:           d.Score2,
		MatchResult:      d.MatchResult,
		MatchURL:         d.MatchURL,
		Venue:            d.Venue,
		Date:             d.Date,
		Toss:             d.Toss,
		PlayerOfTheMatch: d.PlayerOfTheMatch,
		CurrentRunRate:   d.CurrentRunRate,
		Inning1:          fromInningDoc(d.Inning1),
		Inning2:          fromInningDoc(d.Inning2),
		CreatedAt:        d.CreatedAt.UTC(),
	}
	// Documents written by older ingesters carry no attribution.
	r.Normalize()
	return r
}

func fromInningDoc(d *inningDoc) *scorecard.Inning {
	if d == nil {
		return nil
	}
	in := &scorecard.Inning{
		BattingTeam: d.BattingTeam,
		BowlingTeam: d.BowlingTeam,
		Batting:     make([]scorecard.BatterLine, 0, len(d.Batting)),
		Bowling:     make([]scorecard.BowlerLine, 0, len(d.Bowling)),
	}
	for _, b := range d.Batting {
		in.Batting = append(in.Batting, scorecard.BatterLine{
			Name:       b.Name,
			Runs:       scorecard.ParseStat(b.Runs),
			Balls:      scorecard.ParseStat(b.Balls),
			Fours:      scorecard.ParseStat(b.Fours),
			Sixes:      scorecard.ParseStat(b.Sixes),
			StrikeRate: scorecard.ParseStat(b.StrikeRate),
		})
	}
	for _, b := range d.Bowling {
		in.Bowling = append(in.Bowling, scorecard.BowlerLine{
			Name:         b.Name,
			Overs:        scorecard.ParseStat(b.Overs),
			Maidens:      scorecard.ParseStat(b.Maidens),
			RunsConceded: scorecard.ParseStat(b.RunsConceded),
			Wickets:      scorecard.ParseStat(b.Wickets),
			Economy:      scorecard.ParseStat(b.Economy),
		})
	}
	return in
}
