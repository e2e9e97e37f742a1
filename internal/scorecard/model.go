// Package scorecard is the cricket match scorecard model and its presentation.
package scorecard

import "time"

// StatusResult marks a concluded match.
const StatusResult = "RESULT"

type BatterLine struct {
	Name       string `json:"name"`
	Runs       Stat   `json:"runs"`
	Balls      Stat   `json:"balls"`
	Fours      Stat   `json:"fours"`
	Sixes      Stat   `json:"sixes"`
	StrikeRate Stat   `json:"strike_rate"`
}

type BowlerLine struct {
	Name         string `json:"name"`
	Overs        Stat   `json:"overs"`
	Maidens      Stat   `json:"maidens"`
	RunsConceded Stat   `json:"runs_conceded"`
	Wickets      Stat   `json:"wickets"`
	Economy      Stat   `json:"economy"`
}

// Inning holds one innings. Batting and Bowling keep batting and bowling order.
type Inning struct {
	BattingTeam string       `json:"batting_team"`
	BowlingTeam string       `json:"bowling_team"`
	Batting     []BatterLine `json:"batting"`
	Bowling     []BowlerLine `json:"bowling"`
}

// Record is one match scorecard. ID and CreatedAt are assigned by the store.
type Record struct {
	ID               string    `json:"_id,omitempty"`
	Status           string    `json:"status"`
	Team1            string    `json:"team1"`
	Team2            string    `json:"team2"`
	Score1           string    `json:"score1"`
	Score2           string    `json:"score2"`
	MatchResult      string    `json:"match_result"`
	MatchURL         string    `json:"match_url"`
	Venue            string    `json:"venue"`
	Date             string    `json:"date"`
	Toss             string    `json:"toss"`
	PlayerOfTheMatch string    `json:"player_of_the_match"`
	CurrentRunRate   string    `json:"current_run_rate"`
	Inning1          *Inning   `json:"inning_1,omitempty"`
	Inning2          *Inning   `json:"inning_2,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Normalize fills innings attribution from the team order when the payload
// left it out (inning 1: team1 bats, team2 bowls; inning 2 reversed) and
// replaces nil line slices with empty ones.
func (r *Record) Normalize() {
	r.Inning1.attribute(r.Team1, r.Team2)
	r.Inning2.attribute(r.Team2, r.Team1)
}

func (in *Inning) attribute(batting, bowling string) {
	if in == nil {
		return
	}
	if in.BattingTeam == "" {
		in.BattingTeam = batting
	}
	if in.BowlingTeam == "" {
		in.BowlingTeam = bowling
	}
	if in.Batting == nil {
		in.Batting = []BatterLine{}
	}
	if in.Bowling == nil {
		in.Bowling = []BowlerLine{}
	}
}

// Innings returns the present innings with their number, in order.
func (r Record) Innings() []NumberedInning {
	var out []NumberedInning
	if r.Inning1 != nil {
		out = append(out, NumberedInning{Number: 1, Inning: *r.Inning1})
	}
	if r.Inning2 != nil {
		out = append(out, NumberedInning{Number: 2, Inning: *r.Inning2})
	}
	return out
}

type NumberedInning struct {
	Number int
	Inning
}
