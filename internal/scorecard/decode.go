package scorecard

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/xaitan80/cricfanzz/internal/apperr"
)

var ErrNotArray = errors.New("expected a JSON array")

// maxBatchBytes bounds a single /save-data body.
const maxBatchBytes = 8 << 20

// DecodeBatch reads a JSON array of scorecards. Anything that is not an array
// of scorecard objects is an invalid-input error. Every record is normalized.
func DecodeBatch(r io.Reader) ([]Record, error) {
	body, err := io.ReadAll(io.LimitReader(r, maxBatchBytes+1))
	if err != nil {
		return nil, apperr.InvalidInput("decode batch", err)
	}
	if len(body) > maxBatchBytes {
		return nil, apperr.InvalidInput("decode batch", fmt.Errorf("body larger than %d bytes", maxBatchBytes))
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '[' {
		return nil, apperr.InvalidInput("decode batch", ErrNotArray)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, apperr.InvalidInput("decode batch", err)
	}
	out := make([]Record, 0, len(raw))
	for i, item := range raw {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || item[0] != '{' {
			return nil, apperr.InvalidInput("decode batch", fmt.Errorf("element %d is not an object", i))
		}
		var w wireRecord
		if err := json.Unmarshal(item, &w); err != nil {
			return nil, apperr.InvalidInput("decode batch", fmt.Errorf("element %d: %w", i, err))
		}
		rec := w.record()
		rec.Normalize()
		out = append(out, rec)
	}
	return out, nil
}

// freeText is a free-text field as sent by an ingester. Any JSON scalar is kept
// as its text, so 5 and "5" arrive the same.
type freeText string

func (t *freeText) UnmarshalJSON(b []byte) error {
	s, err := scalarText(b)
	if err != nil {
		return err
	}
	*t = freeText(s)
	return nil
}

// wireRecord is the accepted shape of one /save-data element. It has no _id
// or createdAt: the store assigns both.
type wireRecord struct {
	Status           freeText    `json:"status"`
	Team1            freeText    `json:"team1"`
	Team2            freeText    `json:"team2"`
	Score1           freeText    `json:"score1"`
	Score2           freeText    `json:"score2"`
	MatchResult      freeText    `json:"match_result"`
	MatchURL         freeText    `json:"match_url"`
	Venue            freeText    `json:"venue"`
	Date             freeText    `json:"date"`
	Toss             freeText    `json:"toss"`
	PlayerOfTheMatch freeText    `json:"player_of_the_match"`
	CurrentRunRate   freeText    `json:"current_run_rate"`
	Inning1          *wireInning `json:"inning_1"`
	Inning2          *wireInning `json:"inning_2"`
}

type wireInning struct {
	BattingTeam freeText     `json:"batting_team"`
	BowlingTeam freeText     `json:"bowling_team"`
	Batting     []wireBatter `json:"batting"`
	Bowling     []wireBowler `json:"bowling"`
}

type wireBatter struct {
	Name       freeText `json:"name"`
	Runs       Stat `json:"runs"`
	Balls      Stat `json:"balls"`
	Fours      Stat `json:"fours"`
	Sixes      Stat `json:"sixes"`
	StrikeRate Stat `json:"strike_rate"`
}

type wireBowler struct {
	Name         freeText `json:"name"`
	Overs        Stat `json:"overs"`
	Maidens      Stat `json:"maidens"`
	RunsConceded Stat `json:"runs_conceded"`
	Wickets      Stat `json:"wickets"`
	Economy      Stat `json:"economy"`
}

func (w wireRecord) record() Record {
	return Record{
		Status:           string(w.Status),
		Team1:            string(w.Team1),
		Team2:            string(w.Team2),
		Score1:           string(w.Score1),
		Score2:           string(w.Score2),
		MatchResult:      string(w.MatchResult),
		MatchURL:         string(w.MatchURL),
		Venue:            string(w.Venue),
		Date:             string(w.Date),
		Toss:             string(w.Toss),
		PlayerOfTheMatch: string(w.PlayerOfTheMatch),
		CurrentRunRate:   string(w.CurrentRunRate),
		Inning1:          w.Inning1.inning(),
		Inning2:          w.Inning2.inning(),
	}
}

func (w *wireInning) inning() *Inning {
	if w == nil {
		return nil
	}
	in := &Inning{
		BattingTeam: string(w.BattingTeam),
		BowlingTeam: string(w.BowlingTeam),
		Batting:     make([]BatterLine, 0, len(w.Batting)),
		Bowling:     make([]BowlerLine, 0, len(w.Bowling)),
	}
	for _, b := range w.Batting {
		in.Batting = append(in.Batting, BatterLine{
			Name:       string(b.Name),
			Runs:       b.Runs,
			Balls:      b.Balls,
			Fours:      b.Fours,
			Sixes:      b.Sixes,
			StrikeRate: b.StrikeRate,
		})
	}
	for _, b := range w.Bowling {
		in.Bowling = append(in.Bowling, BowlerLine{
			Name:         string(b.Name),
			Overs:        b.Overs,
			Maidens:      b.Maidens,
			RunsConceded: b.RunsConceded,
			Wickets:      b.Wickets,
			Economy:      b.Economy,
		})
	}
	return in
}
