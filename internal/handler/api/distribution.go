package api

import (
	"net/http"

	reqdto "eventcast/internal/handler/dto/request"
	resdto "eventcast/internal/handler/dto/response"
	"eventcast/internal/handler/httperr"
	"eventcast/internal/pkg/errs"
	"eventcast/internal/usecase/commands"
	"eventcast/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type DistributionHandler struct {
	cmds commands.DistributionCommands
	q    queries.DistributionQueries
}

func NewDistributionHandler(cmds commands.DistributionCommands, q queries.DistributionQueries) *DistributionHandler {
	return &DistributionHandler{cmds: cmds, q: q}
}

// @Summary Distribute event
// @Description Distribute an event to the requested channels (all ready channels by default)
// @Tags distributions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.DistributeRequest true "Distribute request"
// @Success 200 {object} resdto.DistributionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /distributions [post]
func (h *DistributionHandler) Create(c *gin.Context) {
	var req reqdto.DistributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	h.distribute(c, req)
}

// @Summary Distribute event to one channel
// @Description Distribute an event to a single named channel
// @Tags distributions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param channel path string true "Channel name (facebook, eventbrite, press)"
// @Param request body reqdto.DistributeRequest true "Distribute request"
// @Success 200 {object} resdto.DistributionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /distributions/{channel} [post]
func (h *DistributionHandler) CreateForChannel(c *gin.Context) {
	var req reqdto.DistributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	// The path parameter wins over any channels in the body.
	req.Channels = []string{c.Param("channel")}
	h.distribute(c, req)
}

func (h *DistributionHandler) distribute(c *gin.Context, req reqdto.DistributeRequest) {
	cmd, err := req.ToCommand()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid event", nil)
		return
	}
	report, err := h.cmds.DistributeAll(c.Request.Context(), cmd)
	if err != nil {
		if errs.Is(err, commands.ErrNoChannels) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "No distributable channels", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Distribution failed", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReport(report))
}

// @Summary Channel readiness
// @Description Report which channels are configured and ready to receive distributions
// @Tags distributions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.StatusResponse
// @Failure 401 {object} map[string]string
// @Router /distributions/status [get]
func (h *DistributionHandler) Status(c *gin.Context) {
	views := h.q.CheckStatus()
	resp, err := resdto.FromStatusViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build status", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}
