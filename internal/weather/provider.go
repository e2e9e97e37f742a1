// Package weather fetches today's conditions for a city from a third-party
// provider and records them.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/xaitan80/cricfanzz/internal/apperr"
)

const (
	VisualCrossingURL = "https://weather.visualcrossing.com/VisualCrossingWebServices/rest/services/timeline"
	OpenWeatherURL    = "https://api.openweathermap.org/data/2.5/weather"
)

var ErrMissingKey = errors.New("missing API key")

// Snapshot is one stored weather observation.
type Snapshot struct {
	ID          string    `json:"_id"`
	City        string    `json:"city"`
	Date        string    `json:"date"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
	WindSpeed   float64   `json:"windSpeed"`
	CloudCover  float64   `json:"cloudCover"`
	Conditions  string    `json:"conditions"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Provider returns today's weather for a city. ID and FetchedAt are left empty.
type Provider interface {
	Today(ctx context.Context, city string) (Snapshot, error)
}

// VisualCrossing reads the first day of the timeline API.
type VisualCrossing struct {
	BaseURL string
	Key     string
	Client  *http.Client
}

func NewVisualCrossing(key string, timeout time.Duration) *VisualCrossing {
	return &VisualCrossing{BaseURL: VisualCrossingURL, Key: key, Client: &http.Client{Timeout: timeout}}
}

func (p *VisualCrossing) Today(ctx context.Context, city string) (Snapshot, error) {
	if p.Key == "" {
		return Snapshot{}, apperr.Upstream("visual crossing", ErrMissingKey)
	}
	q := url.Values{}
	q.Set("unitGroup", "metric")
	q.Set("key", p.Key)
	q.Set("contentType", "json")
	u := p.BaseURL + "/" + url.PathEscape(city) + "?" + q.Encode()

	var body struct {
		Days []struct {
			Datetime   string  `json:"datetime"`
			Temp       float64 `json:"temp"`
			Humidity   float64 `json:"humidity"`
			WindSpeed  float64 `json:"windspeed"`
			CloudCover float64 `json:"cloudcover"`
			Conditions string  `json:"conditions"`
		} `json:"days"`
	}
	if err := getJSON(ctx, p.Client, u, &body); err != nil {
		return Snapshot{}, apperr.Upstream("visual crossing", err)
	}
	if len(body.Days) == 0 {
		return Snapshot{}, apperr.Upstream("visual crossing", errors.New("response has no days"))
	}
	d := body.Days[0]
	return Snapshot{
		City:        city,
		Date:        d.Datetime,
		Temperature: d.Temp,
		Humidity:    d.Humidity,
		WindSpeed:   d.WindSpeed,
		CloudCover:  d.CloudCover,
		Conditions:  d.Conditions,
	}, nil
}

// OpenWeather reads the current-weather endpoint. It has no date of its own,
// so the snapshot carries today's UTC date.
type OpenWeather struct {
	BaseURL string
	Key     string
	Client  *http.Client
	now     func() time.Time
}

func NewOpenWeather(key string, timeout time.Duration) *OpenWeather {
	return &OpenWeather{BaseURL: OpenWeatherURL, Key: key, Client: &http.Client{Timeout: timeout}, now: time.Now}
}

func (p *OpenWeather) Today(ctx context.Context, city string) (Snapshot, error) {
	if p.Key == "" {
		return Snapshot{}, apperr.Upstream("openweather", ErrMissingKey)
	}
	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", p.Key)
	q.Set("units", "metric")

	var body struct {
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity float64 `json:"humidity"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Clouds struct {
			All float64 `json:"all"`
		} `json:"clouds"`
		Weather []struct {
			Main string `json:"main"`
		} `json:"weather"`
	}
	if err := getJSON(ctx, p.Client, p.BaseURL+"?"+q.Encode(), &body); err != nil {
		return Snapshot{}, apperr.Upstream("openweather", err)
	}
	now := time.Now
	if p.now != nil {
		now = p.now
	}
	s := Snapshot{
		City:        city,
		Date:        now().UTC().Format(time.DateOnly),
		Temperature: body.Main.Temp,
		Humidity:    body.Main.Humidity,
		WindSpeed:   body.Wind.Speed,
		CloudCover:  body.Clouds.All,
	}
	if len(body.Weather) > 0 {
		s.Conditions = body.Weather[0].Main
	}
	return s, nil
}

func getJSON(ctx context.Context, client *http.Client, u string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return redact(err)
	}
	req.Header.Set("Accept", "application/json")
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return redact(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// secretParams are query parameters that carry provider credentials.
var secretParams = []string{"key", "appid"}

// redact masks credentials in the URL a transport error quotes.
func redact(err error) error {
	var ue *url.Error
	if !errors.As(err, &ue) {
		return err
	}
	masked := "(redacted)"
	if u, perr := url.Parse(ue.URL); perr == nil {
		q := u.Query()
		for _, p := range secretParams {
			if q.Has(p) {
				q.Set(p, "REDACTED")
			}
		}
		u.RawQuery = q.Encode()
		masked = u.String()
	}
	return &url.Error{Op: ue.Op, URL: masked, Err: ue.Err}
}
