package scorecard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Stat is a numeric scorecard figure. It keeps the text it arrived with so the
// wire format is returned unchanged, and carries the parsed value for sums.
type Stat struct {
	Text  string
	Value float64
	Valid bool
}

// MaxStat bounds the magnitude of a Valid stat so sums stay in int range.
const MaxStat = 1e6

// ParseStat parses text like "45", " 150.00 " or "12*". Anything else ("-",
// "N/A", "", or a magnitude above MaxStat) keeps its text and is not Valid.
func ParseStat(text string) Stat {
	s := Stat{Text: text}
	num := strings.TrimSuffix(strings.TrimSpace(text), "*")
	v, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > MaxStat {
		return s
	}
	s.Value, s.Valid = v, true
	return s
}

// NumStat builds a Stat from a number.
func NumStat(v float64) Stat {
	return Stat{Text: strconv.FormatFloat(v, 'f', -1, 64), Value: v, Valid: true}
}

func (s Stat) String() string { return s.Text }

// Int returns the value truncated to an int, 0 when not Valid.
func (s Stat) Int() int {
	if !s.Valid {
		return 0
	}
	return int(s.Value)
}

func (s Stat) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Text)
}

// UnmarshalJSON accepts any JSON scalar. null leaves an empty, invalid Stat.
func (s *Stat) UnmarshalJSON(b []byte) error {
	text, err := scalarText(b)
	if err != nil {
		return err
	}
	*s = ParseStat(text)
	return nil
}

// scalarText returns the text of a JSON string, number or bool. null is "".
// Objects and arrays are errors.
func scalarText(b []byte) (string, error) {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		return "", nil
	case bytes.Equal(b, []byte("true")), bytes.Equal(b, []byte("false")):
		return string(b), nil
	case len(b) > 0 && b[0] == '"':
		var text string
		if err := json.Unmarshal(b, &text); err != nil {
			return "", err
		}
		return text, nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return "", fmt.Errorf("want a string, number or bool: %w", err)
	}
	return n.String(), nil
}

// OversToBalls converts cricket overs notation ("3.4" = 3 overs, 4 balls) to balls.
func OversToBalls(s Stat) (int, bool) {
	text := strings.TrimSpace(s.Text)
	if !s.Valid || text == "" {
		return 0, false
	}
	whole, part, _ := strings.Cut(text, ".")
	overs, err := strconv.Atoi(whole)
	if err != nil || overs < 0 || overs > MaxStat {
		return 0, false
	}
	balls := 0
	if part != "" {
		balls, err = strconv.Atoi(part)
		if err != nil || balls < 0 || balls > 5 {
			return 0, false
		}
	}
	return overs*6 + balls, true
}

// BallsToOvers renders a ball count back in overs notation.
func BallsToOvers(balls int) string {
	if balls%6 == 0 {
		return strconv.Itoa(balls / 6)
	}
	return strconv.Itoa(balls/6) + "." + strconv.Itoa(balls%6)
}
