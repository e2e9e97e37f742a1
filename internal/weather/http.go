package weather

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/xaitan80/cricfanzz/internal/apperr"
)

// Service fetches a snapshot and stores it.
type Service struct {
	provider     Provider
	store        Store
	storeTimeout time.Duration
	now          func() time.Time
}

func NewService(p Provider, s Store, storeTimeout time.Duration) *Service {
	if storeTimeout <= 0 {
		storeTimeout = 5 * time.Second
	}
	return &Service{provider: p, store: s, storeTimeout: storeTimeout, now: time.Now}
}

// Fetch asks the provider for today's weather in city, stamps the result and
// saves it. Nothing is stored when the provider fails.
func (s *Service) Fetch(ctx context.Context, city string) (Snapshot, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return Snapshot{}, apperr.InvalidInput("fetch weather", errors.New("empty city"))
	}
	snap, err := s.provider.Today(ctx, city)
	if err != nil {
		return Snapshot{}, err
	}
	id, err := uuid.NewV7()
	if err != nil {
		return Snapshot{}, apperr.Storage("fetch weather", err)
	}
	snap.ID = id.String()
	snap.City = city
	snap.FetchedAt = s.now().UTC().Truncate(time.Millisecond)

	sctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	if err := s.store.Save(sctx, snap); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func RegisterRoutes(r gin.IRouter, svc *Service) {
	r.GET("/fetch-weather/:city", func(c *gin.Context) {
		ctx := c.Request.Context()
		snap, err := svc.Fetch(ctx, c.Param("city"))
		if err != nil {
			msg := "Failed to fetch weather data."
			if errors.Is(err, ErrMissingKey) {
				msg = "Missing API key"
			}
			zerolog.Ctx(ctx).Error().Err(err).Str("city", c.Param("city")).Msg("weather fetch failed")
			c.JSON(apperr.Status(err), gin.H{"error": msg})
			return
		}
		zerolog.Ctx(ctx).Info().Str("city", snap.City).Str("id", snap.ID).Msg("weather data saved")
		c.JSON(http.StatusOK, snap)
	})
}
