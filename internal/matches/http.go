package matches

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/xaitan80/cricfanzz/internal/apperr"
	"github.com/xaitan80/cricfanzz/internal/scorecard"
)

// RouteConfig tunes the match routes.
type RouteConfig struct {
	MaxLimit     int
	StoreTimeout time.Duration
}

func RegisterRoutes(r gin.IRouter, repo Gateway, cfg RouteConfig) {
	if cfg.StoreTimeout <= 0 {
		cfg.StoreTimeout = 5 * time.Second
	}
	storeCtx := func(c *gin.Context) (context.Context, context.CancelFunc) {
		return context.WithTimeout(c.Request.Context(), cfg.StoreTimeout)
	}

	r.POST("/save-data", func(c *gin.Context) {
		records, err := scorecard.DecodeBatch(c.Request.Body)
		if err != nil {
			fail(c, err, "Invalid data format. Expected an array.")
			return
		}
		ctx, cancel := storeCtx(c)
		defer cancel()
		n, err := repo.InsertBatch(ctx, records)
		if err != nil {
			fail(c, err, "Failed to save match data.")
			return
		}
		zerolog.Ctx(ctx).Info().Int("saved", n).Msg("match data saved")
		c.String(http.StatusOK, "Match data saved successfully.")
	})

	r.GET("/get-data", func(c *gin.Context) {
		limit := parseLimit(c.Query("limit"), cfg.MaxLimit)
		ctx, cancel := storeCtx(c)
		defer cancel()
		list, err := repo.ListRecent(ctx, limit)
		if err != nil {
			fail(c, err, "Failed to fetch match data.")
			return
		}
		c.JSON(http.StatusOK, list)
	})

	r.GET("/get-match/:id", func(c *gin.Context) {
		ctx, cancel := storeCtx(c)
		defer cancel()
		m, ok := findMatch(ctx, c, repo)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, m)
	})

	r.GET("/view-match/:id", func(c *gin.Context) {
		ctx, cancel := storeCtx(c)
		defer cancel()
		m, ok := findMatch(ctx, c, repo)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, scorecard.BuildView(m))
	})

	// CSV or XLSX download of the match view
	r.GET("/get-match/:id/export", func(c *gin.Context) {
		format := strings.ToLower(c.DefaultQuery("format", "csv"))
		if format != "csv" && format != "xlsx" {
			fail(c, apperr.InvalidInput("export", fmt.Errorf("unknown format %q", format)), "Unknown export format.")
			return
		}
		ctx, cancel := storeCtx(c)
		defer cancel()
		m, ok := findMatch(ctx, c, repo)
		if !ok {
			return
		}
		v := scorecard.BuildView(m)

		var buf bytes.Buffer
		contentType := "text/csv; charset=utf-8"
		if format == "xlsx" {
			contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
			if err := scorecard.WriteXLSX(&buf, v); err != nil {
				fail(c, err, "Failed to export match.")
				return
			}
		} else if err := scorecard.WriteCSV(&buf, v); err != nil {
			fail(c, err, "Failed to export match.")
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=match_%s.%s", m.ID, format))
		c.Data(http.StatusOK, contentType, buf.Bytes())
	})

	r.GET("/healthz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := repo.Ping(ctx); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Msg("store unhealthy")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}

func findMatch(ctx context.Context, c *gin.Context, repo Gateway) (scorecard.Record, bool) {
	m, err := repo.FindByID(ctx, c.Param("id"))
	if err != nil {
		msg := "Failed to fetch match by ID."
		if errors.Is(err, apperr.ErrNotFound) {
			msg = "Match not found"
		}
		fail(c, err, msg)
		return scorecard.Record{}, false
	}
	return m, true
}

// fail logs err and answers with the status its kind maps to.
func fail(c *gin.Context, err error, msg string) {
	status := apperr.Status(err)
	level := zerolog.ErrorLevel
	if status < http.StatusInternalServerError {
		level = zerolog.WarnLevel
	}
	zerolog.Ctx(c.Request.Context()).WithLevel(level).Err(err).Int("status", status).Msg(msg)

	if status == http.StatusNotFound {
		c.JSON(status, gin.H{"message": msg})
		return
	}
	c.String(status, msg)
}

func parseLimit(raw string, max int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return DefaultLimit
	}
	if max > 0 && n > max {
		return max
	}
	return n
}
