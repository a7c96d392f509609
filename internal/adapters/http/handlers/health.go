// Package handlers provides the HTTP request handlers mounted by the
// router: the echo endpoints over the assembled service chain, and the
// operational endpoints.
package handlers

import (
	"net/http"
	"runtime"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jsamuelsen/go-api-runtime/internal/ports"
)

// BuildInfo is the payload of /-/build; Version, Commit and BuildTime are
// injected through ldflags at build time.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
}

// NewBuildInfo fills in the running toolchain's version alongside the
// injected values.
func NewBuildInfo(version, commit, buildTime string) BuildInfo {
	return BuildInfo{
		Version:   version,
		Commit:    commit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
	}
}

// HealthHandler serves the operational endpoints under /-/. They sit
// outside the credential middleware: probes and scrapers do not
// authenticate.
type HealthHandler struct {
	registry  ports.HealthRegistry
	buildInfo BuildInfo
}

func NewHealthHandler(registry ports.HealthRegistry, buildInfo BuildInfo) *HealthHandler {
	return &HealthHandler{
		registry:  registry,
		buildInfo: buildInfo,
	}
}

type livenessResponse struct {
	Status string `json:"status"`
}

type readinessResponse struct {
	Status string                        `json:"status"`
	Checks map[string]*ports.CheckResult `json:"checks,omitempty"`
}

// Liveness answers 200 whenever the process is up. It deliberately checks
// nothing else; dependency state belongs to Readiness.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, livenessResponse{Status: "ok"})
}

// Readiness runs the registered checks (the relay's downstream probe among
// them) and answers 503 when any fails, so the load balancer drains this
// instance instead of routing into failures.
func (h *HealthHandler) Readiness(c *gin.Context) {
	result := h.registry.CheckAll(c.Request.Context())

	status := http.StatusOK
	if result.Status == ports.HealthStatusUnhealthy {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, readinessResponse{
		Status: string(result.Status),
		Checks: result.Checks,
	})
}

// BuildInfoHandler serves the build stamp.
func (h *HealthHandler) BuildInfoHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.buildInfo)
}

// MetricsHandler exposes the Prometheus registry; wrap with gin.WrapH.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

// RegisterHealthRoutes mounts live, ready, build and metrics on rg.
func (h *HealthHandler) RegisterHealthRoutes(rg *gin.RouterGroup) {
	rg.GET("/live", h.Liveness)
	rg.GET("/ready", h.Readiness)
	rg.GET("/build", h.BuildInfoHandler)
	rg.GET("/metrics", gin.WrapH(MetricsHandler()))
}

// RegisterHealthRoutesOnEngine mounts the same routes under the /- group.
func (h *HealthHandler) RegisterHealthRoutesOnEngine(engine *gin.Engine) {
	h.RegisterHealthRoutes(engine.Group("/-"))
}
