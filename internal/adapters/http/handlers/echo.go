package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/go-api-runtime/chain"
	"github.com/jsamuelsen/go-api-runtime/internal/adapters/http/dto"
	"github.com/jsamuelsen/go-api-runtime/internal/domain"
	"github.com/jsamuelsen/go-api-runtime/internal/platform/telemetry"
)

// EchoService is a fully assembled wrapper chain. The outermost wrapper
// materializes the typed context from the request context, so from the
// handler's point of view it is an ordinary body-in/reply-out service.
type EchoService = chain.Service[domain.EchoRequest, *domain.EchoReply]

// EchoHandler handles the echo HTTP endpoints.
type EchoHandler struct {
	echo    EchoService
	ping    EchoService
	relay   EchoService
	metrics *telemetry.Metrics
}

// NewEchoHandler creates a new echo handler. The relay service may be nil
// when no downstream deployment is configured; the relay route is then not
// registered. Metrics may be nil when telemetry is disabled.
func NewEchoHandler(echo, ping, relay EchoService, metrics *telemetry.Metrics) *EchoHandler {
	return &EchoHandler{
		echo:    echo,
		ping:    ping,
		relay:   relay,
		metrics: metrics,
	}
}

// PostEcho handles POST /api/v1/echo
// Echoes the message back with the verified caller identity.
//
// @Summary Echo a message
// @Description Echoes the message along with the authenticated subject
// @Tags echo
// @Accept json
// @Produce json
// @Success 200 {object} dto.EchoResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/v1/echo [post]
func (h *EchoHandler) PostEcho(c *gin.Context) {
	h.handle(c, h.echo)
}

// PostRelay handles POST /api/v1/echo/relay
// Forwards the message to a downstream deployment, re-presenting the
// caller's credentials on the outgoing request.
//
// @Summary Relay a message downstream
// @Tags echo
// @Accept json
// @Produce json
// @Success 200 {object} dto.EchoResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/v1/echo/relay [post]
func (h *EchoHandler) PostRelay(c *gin.Context) {
	h.handle(c, h.relay)
}

// PostPing handles POST /api/v1/ping
// A context-free legacy endpoint: no credentials required, the typed
// context is dropped before the inner service runs.
//
// @Summary Ping the service
// @Tags echo
// @Accept json
// @Produce json
// @Success 200 {object} dto.EchoResponse
// @Router /api/v1/ping [post]
func (h *EchoHandler) PostPing(c *gin.Context) {
	h.handle(c, h.ping)
}

// handle binds the request body and dispatches it into the given chain.
func (h *EchoHandler) handle(c *gin.Context, svc EchoService) {
	var req dto.EchoRequest

	err := dto.BindAndValidate(c, &req)
	if err != nil {
		respondBindingError(c, err)
		return
	}

	reply, err := svc.Call(c.Request.Context(), req.ToDomain())
	if err != nil {
		var enrichErr *chain.EnrichmentError
		if errors.As(err, &enrichErr) {
			h.metrics.RecordEnrichmentFailure(c, enrichErr.Field)
		}

		dto.HandleError(c, err)

		return
	}

	c.JSON(http.StatusOK, dto.ToEchoResponse(reply))
}

// respondBindingError writes a 400 for binding and validation failures,
// with field-level details when available.
func respondBindingError(c *gin.Context, err error) {
	if fieldErrors := dto.ValidationErrors(err); len(fieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithDetails(
			dto.ErrorCodeValidation,
			"request validation failed",
			fieldErrors,
		).WithTraceID(dto.GetTraceID(c)))

		return
	}

	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
		dto.ErrorCodeBadRequest,
		"malformed request body",
	).WithTraceID(dto.GetTraceID(c)))
}

// RegisterEchoRoutes registers echo routes on the given router group.
func (h *EchoHandler) RegisterEchoRoutes(rg *gin.RouterGroup) {
	rg.POST("/echo", h.PostEcho)
	rg.POST("/ping", h.PostPing)

	if h.relay != nil {
		rg.POST("/echo/relay", h.PostRelay)
	}
}
