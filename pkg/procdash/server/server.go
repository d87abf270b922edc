// Package server exposes the dashboard and its chart options over HTTP.
package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ukaji3/procdash-go/internal/logger"
	"github.com/ukaji3/procdash-go/pkg/procdash/refresh"
	"github.com/ukaji3/procdash-go/pkg/procdash/render"
)

// Handler serves the latest snapshot of a refresher.
type Handler struct {
	refresher *refresh.Refresher
}

// New builds the router.
func New(r *refresh.Refresher) *gin.Engine {
	h := &Handler{refresher: r}
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())

	engine.GET("/", h.dashboard)
	engine.GET("/healthz", h.health)
	api := engine.Group("/api")
	api.GET("/charts", h.charts)
	api.GET("/charts/:id", h.chart)
	api.GET("/diagnostics", h.diagnostics)
	return engine
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.L().Debug("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"elapsed", time.Since(start))
	}
}

func (h *Handler) snapshot(c *gin.Context) *refresh.Snapshot {
	snap := h.refresher.Slot().Load()
	if snap == nil {
		msg := "dashboard not loaded yet"
		if err := h.refresher.LastError(); err != nil {
			msg = err.Error()
		}
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": msg})
		return nil
	}
	return snap
}

func (h *Handler) dashboard(c *gin.Context) {
	snap := h.snapshot(c)
	if snap == nil {
		return
	}
	var buf bytes.Buffer
	if err := render.HTML(&buf, snap.Dashboard); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("ETag", `"`+snap.Version+`"`)
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (h *Handler) charts(c *gin.Context) {
	snap := h.snapshot(c)
	if snap == nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"version": snap.Version,
		"charts":  snap.Dashboard.Charts,
	})
}

func (h *Handler) chart(c *gin.Context) {
	snap := h.snapshot(c)
	if snap == nil {
		return
	}
	chart, ok := snap.Dashboard.Chart(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown chart " + c.Param("id")})
		return
	}
	c.JSON(http.StatusOK, chart)
}

func (h *Handler) diagnostics(c *gin.Context) {
	body := gin.H{
		"source": h.refresher.Source().Name(),
	}
	if err := h.refresher.LastError(); err != nil {
		body["last_error"] = err.Error()
	}
	if snap := h.refresher.Slot().Load(); snap != nil {
		body["version"] = snap.Version
		body["origin"] = snap.Origin
		body["loaded_at"] = snap.LoadedAt
		body["dropped"] = snap.Dashboard.Dropped()
	}
	c.JSON(http.StatusOK, body)
}

func (h *Handler) health(c *gin.Context) {
	status := "ok"
	if h.refresher.Slot().Load() == nil {
		status = "starting"
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

// Serve runs engine on addr until ctx is done, then shuts down gracefully.
func Serve(ctx context.Context, addr string, engine http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Infof("http server listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}
