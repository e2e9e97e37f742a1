package scorecard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xaitan80/cricfanzz/internal/apperr"
)

const kohliBatch = `[{"team1":"IND","team2":"AUS","status":"LIVE","inning_1":{"batting":[{"name":"Kohli","runs":"45","balls":"30","fours":"5","sixes":"1","strike_rate":"150"}],"bowling":[]}}]`

func TestDecodeBatch_Scenario(t *testing.T) {
	recs, err := DecodeBatch(strings.NewReader(kohliBatch))
	require.NoError(t, err)
	require.Len(t, recs, 1)

	r := recs[0]
	assert.Equal(t, "LIVE", r.Status)
	require.NotNil(t, r.Inning1)
	assert.Nil(t, r.Inning2)
	assert.Equal(t, "Kohli", r.Inning1.Batting[0].Name)
	assert.Equal(t, 45, r.Inning1.Batting[0].Runs.Int())
	assert.Equal(t, "IND", r.Inning1.BattingTeam)
	assert.Equal(t, "AUS", r.Inning1.BowlingTeam)
	assert.NotNil(t, r.Inning1.Bowling)
	assert.Empty(t, r.Inning1.Bowling)
}

func TestDecodeBatch_RejectsNonArrays(t *testing.T) {
	for _, body := range []string{
		`{"team1":"X"}`,
		``,
		`   `,
		`"abc"`,
		`[{"team1":"X"}`,
		`[1, 2]`,
		`[{"team1": {"name":"IND"}}]`,
	} {
		_, err := DecodeBatch(strings.NewReader(body))
		assert.ErrorIs(t, err, apperr.ErrInvalidInput, "body %q", body)
	}
}

func TestDecodeBatch_EmptyArray(t *testing.T) {
	recs, err := DecodeBatch(strings.NewReader(" [ ] "))
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestDecodeBatch_IgnoresClientIdentity(t *testing.T) {
	recs, err := DecodeBatch(strings.NewReader(`[{"_id":"client-chosen","team1":"A","team2":"B","createdAt":"2001-01-01T00:00:00Z"}]`))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Empty(t, recs[0].ID)
	assert.True(t, recs[0].CreatedAt.IsZero())
}

func TestDecodeBatch_ExplicitAttributionWins(t *testing.T) {
	body := `[{"team1":"IND","team2":"AUS","inning_1":{"batting_team":"AUS","bowling_team":"IND","batting":[],"bowling":[]},"inning_2":{}}]`
	recs, err := DecodeBatch(strings.NewReader(body))
	require.NoError(t, err)

	r := recs[0]
	assert.Equal(t, "AUS", r.Inning1.BattingTeam)
	assert.Equal(t, "IND", r.Inning1.BowlingTeam)
	// An empty object is still a present innings, attributed by position.
	require.NotNil(t, r.Inning2)
	assert.Equal(t, "AUS", r.Inning2.BattingTeam)
	assert.Equal(t, "IND", r.Inning2.BowlingTeam)
	assert.NotNil(t, r.Inning2.Batting)
}

func TestDecodeBatch_NullInning(t *testing.T) {
	recs, err := DecodeBatch(strings.NewReader(`[{"team1":"A","team2":"B","inning_1":null}]`))
	require.NoError(t, err)
	assert.Nil(t, recs[0].Inning1)
}

func TestDecodeBatch_IgnoresMalformedIdentity(t *testing.T) {
	recs, err := DecodeBatch(strings.NewReader(`[{"_id":42,"team1":"IND","createdAt":"today"}]`))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "IND", recs[0].Team1)
	assert.Empty(t, recs[0].ID)
	assert.True(t, recs[0].CreatedAt.IsZero())
}

func TestDecodeBatch_ScalarsBecomeText(t *testing.T) {
	body := `[{"team1":5,"team2":"AUS","score1":120.5,"status":true,
	  "inning_1":{"batting":[{"name":7,"runs":true,"balls":30}],"bowling":[{"name":"Starc","wickets":false,"overs":3.4}]}}]`
	recs, err := DecodeBatch(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, recs, 1)

	r := recs[0]
	assert.Equal(t, "5", r.Team1)
	assert.Equal(t, "120.5", r.Score1)
	assert.Equal(t, "true", r.Status)
	assert.Equal(t, "5", r.Inning1.BattingTeam)

	b := r.Inning1.Batting[0]
	assert.Equal(t, "7", b.Name)
	assert.Equal(t, "true", b.Runs.Text)
	assert.False(t, b.Runs.Valid)
	assert.Equal(t, 30, b.Balls.Int())

	w := r.Inning1.Bowling[0]
	assert.Equal(t, "false", w.Wickets.Text)
	balls, ok := OversToBalls(w.Overs)
	assert.True(t, ok)
	assert.Equal(t, 22, balls)
}
