package scorecard

import "strconv"

var (
	BattingColumns = []string{"Batsman", "Runs", "Balls", "4s", "6s", "SR"}
	BowlingColumns = []string{"Bowler", "Overs", "Maidens", "Runs", "Wickets", "Economy"}
)

type TableKind string

const (
	KindBatting TableKind = "batting"
	KindBowling TableKind = "bowling"
)

// View is everything a client needs to draw one match.
type View struct {
	ID      string         `json:"id"`
	Header  Header         `json:"header"`
	Meta    Meta           `json:"meta"`
	Innings []InningsPanel `json:"innings"`
}

type Header struct {
	Status string       `json:"status"`
	Team1  string       `json:"team1"`
	Score1 string       `json:"score1"`
	Team2  string       `json:"team2"`
	Score2 string       `json:"score2"`
	Result *ResultBlock `json:"result,omitempty"`
}

type ResultBlock struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type Meta struct {
	Toss             string `json:"toss"`
	Venue            string `json:"venue"`
	Date             string `json:"date"`
	PlayerOfTheMatch string `json:"player_of_the_match"`
	CurrentRunRate   string `json:"current_run_rate"`
	MatchResult      string `json:"match_result"`
}

type InningsPanel struct {
	Number  int   `json:"number"`
	Batting Table `json:"batting"`
	Bowling Table `json:"bowling"`
}

type Table struct {
	Kind    TableKind  `json:"kind"`
	Team    string     `json:"team"`
	Title   string     `json:"title"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Totals  []string   `json:"totals"`
}

// BuildView derives the renderable view of a record. It does no I/O.
func BuildView(r Record) View {
	v := View{
		ID: r.ID,
		Header: Header{
			Status: r.Status,
			Team1:  r.Team1,
			Score1: r.Score1,
			Team2:  r.Team2,
			Score2: r.Score2,
		},
		Meta: Meta{
			Toss:             r.Toss,
			Venue:            r.Venue,
			Date:             r.Date,
			PlayerOfTheMatch: r.PlayerOfTheMatch,
			CurrentRunRate:   r.CurrentRunRate,
			MatchResult:      r.MatchResult,
		},
		Innings: []InningsPanel{},
	}
	if r.Status == StatusResult {
		v.Header.Result = &ResultBlock{Title: "MATCH RESULT", Text: r.MatchResult}
	}

	for _, in := range r.Innings() {
		batting, bowling := in.BattingTeam, in.BowlingTeam
		// Records stored before attribution existed fall back to team order.
		if batting == "" {
			batting = pick(in.Number == 1, r.Team1, r.Team2)
		}
		if bowling == "" {
			bowling = pick(in.Number == 1, r.Team2, r.Team1)
		}
		v.Innings = append(v.Innings, InningsPanel{
			Number:  in.Number,
			Batting: battingTable(batting, in.Batting),
			Bowling: bowlingTable(bowling, in.Bowling),
		})
	}
	return v
}

func pick(first bool, a, b string) string {
	if first {
		return a
	}
	return b
}

func battingTable(team string, lines []BatterLine) Table {
	t := Table{
		Kind:    KindBatting,
		Team:    team,
		Title:   team + " Batting",
		Columns: BattingColumns,
		Rows:    make([][]string, 0, len(lines)),
	}
	var runs, balls, fours, sixes int
	for _, l := range lines {
		t.Rows = append(t.Rows, []string{l.Name, l.Runs.Text, l.Balls.Text, l.Fours.Text, l.Sixes.Text, l.StrikeRate.Text})
		runs += l.Runs.Int()
		balls += l.Balls.Int()
		fours += l.Fours.Int()
		sixes += l.Sixes.Int()
	}
	t.Totals = []string{"Total", itoa(runs), itoa(balls), itoa(fours), itoa(sixes), ""}
	return t
}

func bowlingTable(team string, lines []BowlerLine) Table {
	t := Table{
		Kind:    KindBowling,
		Team:    team,
		Title:   team + " Bowling",
		Columns: BowlingColumns,
		Rows:    make([][]string, 0, len(lines)),
	}
	var balls, maidens, runs, wickets int
	for _, l := range lines {
		t.Rows = append(t.Rows, []string{l.Name, l.Overs.Text, l.Maidens.Text, l.RunsConceded.Text, l.Wickets.Text, l.Economy.Text})
		if b, ok := OversToBalls(l.Overs); ok {
			balls += b
		}
		maidens += l.Maidens.Int()
		runs += l.RunsConceded.Int()
		wickets += l.Wickets.Int()
	}
	t.Totals = []string{"Total", BallsToOvers(balls), itoa(maidens), itoa(runs), itoa(wickets), ""}
	return t
}

func itoa(n int) string { return strconv.Itoa(n) }
