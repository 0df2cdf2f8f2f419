package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yizeng/gab/gin/gorm/event-booking/internal/api/handler/v1/request"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/api/handler/v1/response"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/api/middleware"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/domain"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/service"
)

type RSVPService interface {
	Respond(ctx context.Context, eventID, userID uint, status domain.RSVPStatus, guestCount int) (domain.RSVP, error)
	GetResponse(ctx context.Context, eventID, userID uint) (domain.RSVP, error)
	ListEventResponses(ctx context.Context, eventID uint) ([]domain.RSVP, error)
	ListUserResponses(ctx context.Context, userID uint) ([]domain.RSVP, error)
	Withdraw(ctx context.Context, eventID, userID uint) error
	CountEventResponses(ctx context.Context, eventID uint) (service.EventCounts, error)
}

type RSVPHandler struct {
	svc RSVPService
}

func NewRSVPHandler(svc RSVPService) *RSVPHandler {
	return &RSVPHandler{
		svc: svc,
	}
}

// HandleRespond godoc
// @Summary      RSVP to an event
// @Tags         rsvps
// @Produce      json
// @Param        eventID  path       int  true "event ID"
// @Param        request  body       request.RSVPRequest true "request body"
// @Success      200      {object}   domain.RSVP
// @Failure      400,404  {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/{eventID}/rsvp [post]
func (h *RSVPHandler) HandleRespond(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.RSVPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	rsvp, err := h.svc.Respond(ctx.Request.Context(), eventID, userID, domain.RSVPStatus(req.Status), req.GuestCount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEventNotFound))
		case errors.Is(err, service.ErrRSVPDisabled):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrRSVPDisabled))
		case errors.Is(err, service.ErrInvalidStatus):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidStatus))
		default:
			err = fmt.Errorf("v1.HandleRespond -> h.svc.Respond -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, rsvp)
}

// HandleGetMyResponse godoc
// @Summary      Get the authenticated user's RSVP for an event
// @Tags         rsvps
// @Produce      json
// @Param        eventID  path       int  true "event ID"
// @Success      200      {object}   domain.RSVP
// @Failure      400,404  {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/{eventID}/rsvp [get]
func (h *RSVPHandler) HandleGetMyResponse(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	rsvp, err := h.svc.GetResponse(ctx.Request.Context(), eventID, userID)
	if err != nil {
		if errors.Is(err, service.ErrRSVPNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrRSVPNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetMyResponse -> h.svc.GetResponse -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, rsvp)
}

// HandleWithdraw godoc
// @Summary      Withdraw the authenticated user's RSVP for an event
// @Tags         rsvps
// @Param        eventID  path       int  true "event ID"
// @Success      204
// @Failure      400,404  {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/{eventID}/rsvp [delete]
func (h *RSVPHandler) HandleWithdraw(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.Withdraw(ctx.Request.Context(), eventID, userID); err != nil {
		if errors.Is(err, service.ErrRSVPNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrRSVPNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleWithdraw -> h.svc.Withdraw -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleCountEventResponses godoc
// @Summary      Count RSVP answers for an event
// @Tags         rsvps
// @Produce      json
// @Param        eventID  path       int  true "event ID"
// @Success      200      {object}   service.EventCounts
// @Failure      400,500  {object}   response.Err
// @Router       /events/{eventID}/rsvp/counts [get]
func (h *RSVPHandler) HandleCountEventResponses(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	counts, err := h.svc.CountEventResponses(ctx.Request.Context(), eventID)
	if err != nil {
		err = fmt.Errorf("v1.HandleCountEventResponses -> h.svc.CountEventResponses -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, counts)
}

// HandleListEventResponses godoc
// @Summary      List RSVP answers for an event (admin)
// @Tags         rsvps
// @Produce      json
// @Param        eventID  path       int  true "event ID"
// @Success      200      {object}   []domain.RSVP
// @Failure      400,500  {object}   response.Err
// @Router       /admin/events/{eventID}/rsvps [get]
func (h *RSVPHandler) HandleListEventResponses(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	rsvps, err := h.svc.ListEventResponses(ctx.Request.Context(), eventID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListEventResponses -> h.svc.ListEventResponses -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, rsvps)
}
