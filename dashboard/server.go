package dashboard

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Uranury/sensorlog/sensors"
)

// NewRouter wires the dashboard routes. The sensor list is captured once;
// the manager is not touched after this returns.
func NewRouter(hub *Hub, m *sensors.Manager, gatherer prometheus.Gatherer) *gin.Engine {
	types := m.Types()
	columns := m.Columns()

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/ws", hub.handleWebSocket)

	r.GET("/api/sensors", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"types":   types,
			"columns": columns,
		})
	})

	r.GET("/api/latest", func(c *gin.Context) {
		s, ok := hub.Latest()
		if !ok {
			c.Status(http.StatusNoContent)
			return
		}
		c.JSON(http.StatusOK, s)
	})

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	return r
}

// Serve runs handler on addr until ctx is done.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Dashboard listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shCtx)
}
