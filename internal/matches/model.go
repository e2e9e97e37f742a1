package matches

import (
	"time"

	"github.com/xaitan80/cricfanzz/internal/scorecard"
)

// Rows for the SQLite store. Stats are kept as the text they arrived with.

type scorecardRow struct {
	ID               string `gorm:"primaryKey"`
	Status           string
	Team1            string `gorm:"column:team1"`
	Team2            string `gorm:"column:team2"`
	Score1           string `gorm:"column:score1"`
	Score2           string `gorm:"column:score2"`
	MatchResult      string
	MatchURL         string `gorm:"column:match_url"`
	Venue            string
	Date             string
	Toss             string
	PlayerOfTheMatch string
	CurrentRunRate   string
	CreatedAt        time.Time
	Innings          []inningRow `gorm:"foreignKey:ScorecardID"`
}

func (scorecardRow) TableName() string { return "scorecards" }

type inningRow struct {
	ID          uint `gorm:"primaryKey"`
	ScorecardID string
	Number      int
	BattingTeam string
	BowlingTeam string
	Batting     []batterRow `gorm:"foreignKey:InningID"`
	Bowling     []bowlerRow `gorm:"foreignKey:InningID"`
}

func (inningRow) TableName() string { return "innings" }

type batterRow struct {
	ID         uint `gorm:"primaryKey"`
	InningID   uint
	Position   int
	Name       string
	Runs       string
	Balls      string
	Fours      string
	Sixes      string
	StrikeRate string
}

func (batterRow) TableName() string { return "batter_lines" }

type bowlerRow struct {
	ID           uint `gorm:"primaryKey"`
	InningID     uint
	Position     int
	Name         string
	Overs        string
	Maidens      string
	RunsConceded string
	Wickets      string
	Economy      string
}

func (bowlerRow) TableName() string { return "bowler_lines" }

func toRow(r scorecard.Record) scorecardRow {
	row := scorecardRow{
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
		CreatedAt:        r.CreatedAt,
	}
	for _, in := range r.Innings() {
		ir := inningRow{
			Number:      in.Number,
			BattingTeam: in.BattingTeam,
			BowlingTeam: in.BowlingTeam,
		}
		for i, b := range in.Batting {
			ir.Batting = append(ir.Batting, batterRow{
				Position:   i,
				Name:       b.Name,
				Runs:       b.Runs.Text,
				Balls:      b.Balls.Text,
				Fours:      b.Fours.Text,
				Sixes:      b.Sixes.Text,
				StrikeRate: b.StrikeRate.Text,
			})
		}
		for i, b := range in.Bowling {
			ir.Bowling = append(ir.Bowling, bowlerRow{
				Position:     i,
				Name:         b.Name,
				Overs:        b.Overs.Text,
				Maidens:      b.Maidens.Text,
				RunsConceded: b.RunsConceded.Text,
				Wickets:      b.Wickets.Text,
				Economy:      b.Economy.Text,
			})
		}
		row.Innings = append(row.Innings, ir)
	}
	return row
}

func fromRow(row scorecardRow) scorecard.Record {
	r := scorecard.Record{
		ID:               row.ID,
		Status:           row.Status,
		Team1:            row.Team1,
		Team2:            row.Team2,
		Score1:           row.Score1,
		Score2:           row.Score2,
		MatchResult:      row.MatchResult,
		MatchURL:         row.MatchURL,
		Venue:            row.Venue,
		Date:             row.Date,
		Toss:             row.Toss,
		PlayerOfTheMatch: row.PlayerOfTheMatch,
		CurrentRunRate:   row.CurrentRunRate,
		CreatedAt:        row.CreatedAt.UTC(),
	}
	for _, ir := range row.Innings {
		in := &scorecard.Inning{
			BattingTeam: ir.BattingTeam,
			BowlingTeam: ir.BowlingTeam,
			Batting:     make([]scorecard.BatterLine, 0, len(ir.Batting)),
			Bowling:     make([]scorecard.BowlerLine, 0, len(ir.Bowling)),
		}
		for _, b := range ir.Batting {
			in.Batting = append(in.Batting, scorecard.BatterLine{
				Name:       b.Name,
				Runs:       scorecard.ParseStat(b.Runs),
				Balls:      scorecard.ParseStat(b.Balls),
				Fours:      scorecard.ParseStat(b.Fours),
				Sixes:      scorecard.ParseStat(b.Sixes),
				StrikeRate: scorecard.ParseStat(b.StrikeRate),
			})
		}
		for _, b := range ir.Bowling {
			in.Bowling = append(in.Bowling, scorecard.BowlerLine{
				Name:         b.Name,
				Overs:        scorecard.ParseStat(b.Overs),
				Maidens:      scorecard.ParseStat(b.Maidens),
				RunsConceded: scorecard.ParseStat(b.RunsConceded),
				Wickets:      scorecard.ParseStat(b.Wickets),
				Economy:      scorecard.ParseStat(b.Economy),
			})
		}
		switch ir.Number {
		case 1:
			r.Inning1 = in
		case 2:
			r.Inning2 = in
		}
	}
	return r
}
