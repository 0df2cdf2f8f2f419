package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yizeng/gab/gin/gorm/event-booking/internal/api/handler/v1/response"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/api/middleware"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/service"
)

type DashboardService interface {
	GetAdminDashboard(ctx context.Context) (service.AdminDashboard, error)
	GetEventStats(ctx context.Context, eventID uint) (service.EventStats, error)
	GetUserDashboard(ctx context.Context, userID uint) (service.UserDashboard, error)
}

type DashboardHandler struct {
	svc DashboardService
}

func NewDashboardHandler(svc DashboardService) *DashboardHandler {
	return &DashboardHandler{
		svc: svc,
	}
}

// HandleAdminDashboard godoc
// @Summary      Site-wide booking and revenue summary (admin)
// @Tags         dashboard
// @Produce      json
// @Success      200      {object}   service.AdminDashboard
// @Failure      500      {object}   response.Err
// @Router       /admin/dashboard [get]
func (h *DashboardHandler) HandleAdminDashboard(ctx *gin.Context) {
	dashboard, err := h.svc.GetAdminDashboard(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleAdminDashboard -> h.svc.GetAdminDashboard -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, dashboard)
}

// HandleEventStats godoc
// @Summary      Per-event sales and RSVP stats (admin)
// @Tags         dashboard
// @Produce      json
// @Param        eventID  path       int  true "event ID"
// @Success      200      {object}   service.EventStats
// @Failure      400,404  {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/events/{eventID}/stats [get]
func (h *DashboardHandler) HandleEventStats(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	stats, err := h.svc.GetEventStats(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEventNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleEventStats -> h.svc.GetEventStats -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// HandleUserDashboard godoc
// @Summary      The authenticated user's bookings split into upcoming and past
// @Tags         dashboard
// @Produce      json
// @Success      200      {object}   service.UserDashboard
// @Failure      500      {object}   response.Err
// @Router       /dashboard [get]
func (h *DashboardHandler) HandleUserDashboard(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	dashboard, err := h.svc.GetUserDashboard(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleUserDashboard -> h.svc.GetUserDashboard -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, dashboard)
}
