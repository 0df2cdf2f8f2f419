package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yizeng/gab/gin/gorm/event-booking/internal/api/handler/v1/request"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/api/handler/v1/response"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/domain"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/service"
)

type EventService interface {
	CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error)
	UpdateEvent(ctx context.Context, event domain.Event) (domain.Event, error)
	GetEvent(ctx context.Context, id uint) (domain.Event, error)
	GetPublishedEvent(ctx context.Context, id uint) (domain.Event, error)
	ListEvents(ctx context.Context, status domain.EventStatus, upcomingOnly bool) ([]domain.Event, error)
	ListPublishedEvents(ctx context.Context, upcomingOnly bool) ([]domain.Event, error)
	PublishEvent(ctx context.Context, id uint) (domain.Event, error)
	CancelEvent(ctx context.Context, id uint) (domain.Event, error)
	DeleteEvent(ctx context.Context, id uint) error
}

type EventHandler struct {
	svc EventService
}

func NewEventHandler(svc EventService) *EventHandler {
	return &EventHandler{
		svc: svc,
	}
}

// HandleListEvents godoc
// @Summary      List published events
// @Tags         events
// @Produce      json
// @Param        upcoming  query      bool false "only events that have not happened yet"
// @Success      200       {object}   []domain.Event
// @Failure      500       {object}   response.Err
// @Router       /events [get]
func (h *EventHandler) HandleListEvents(ctx *gin.Context) {
	upcomingOnly := ctx.Query("upcoming") == "true"

	events, err := h.svc.ListPublishedEvents(ctx.Request.Context(), upcomingOnly)
	if err != nil {
		err = fmt.Errorf("v1.HandleListEvents -> h.svc.ListPublishedEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, events)
}

// HandleGetEvent godoc
// @Summary      Get a published event by ID
// @Tags         events
// @Produce      json
// @Param        eventID  path       int  true "event ID"
// @Success      200      {object}   domain.Event
// @Failure      400,404  {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/{eventID} [get]
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.GetPublishedEvent(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEventNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetEvent -> h.svc.GetPublishedEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleListAllEvents godoc
// @Summary      List events of any status (admin)
// @Tags         events
// @Produce      json
// @Param        status    query      string false "filter by status"
// @Success      200       {object}   []domain.Event
// @Failure      500       {object}   response.Err
// @Router       /admin/events [get]
func (h *EventHandler) HandleListAllEvents(ctx *gin.Context) {
	status := domain.EventStatus(ctx.Query("status"))

	events, err := h.svc.ListEvents(ctx.Request.Context(), status, false)
	if err != nil {
		err = fmt.Errorf("v1.HandleListAllEvents -> h.svc.ListEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, events)
}

// HandleCreateEvent godoc
// @Summary      Create an event (admin)
// @Tags         events
// @Produce      json
// @Param        request  body       request.CreateEventRequest true "request body"
// @Success      201      {object}   domain.Event
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/events [post]
func (h *EventHandler) HandleCreateEvent(ctx *gin.Context) {
	var req request.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.CreateEvent(ctx.Request.Context(), eventFromRequest(0, req))
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateEvent -> h.svc.CreateEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, event)
}

// HandleUpdateEvent godoc
// @Summary      Update an event (admin)
// @Tags         events
// @Produce      json
// @Param        eventID  path       int  true "event ID"
// @Param        request  body       request.UpdateEventRequest true "request body"
// @Success      200      {object}   domain.Event
// @Failure      400,404  {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/events/{eventID} [put]
func (h *EventHandler) HandleUpdateEvent(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.UpdateEvent(ctx.Request.Context(), eventFromRequest(id, req.CreateEventRequest))
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEventNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateEvent -> h.svc.UpdateEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandlePublishEvent godoc
// @Summary      Publish an event (admin)
// @Tags         events
// @Produce      json
// @Param        eventID  path       int  true "event ID"
// @Success      200      {object}   domain.Event
// @Failure      400,404  {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/events/{eventID}/publish [post]
func (h *EventHandler) HandlePublishEvent(ctx *gin.Context) {
	h.setStatus(ctx, h.svc.PublishEvent)
}

// HandleCancelEvent godoc
// @Summary      Cancel an event (admin)
// @Tags         events
// @Produce      json
// @Param        eventID  path       int  true "event ID"
// @Success      200      {object}   domain.Event
// @Failure      400,404  {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/events/{eventID}/cancel [post]
func (h *EventHandler) HandleCancelEvent(ctx *gin.Context) {
	h.setStatus(ctx, h.svc.CancelEvent)
}

func (h *EventHandler) setStatus(ctx *gin.Context, apply func(context.Context, uint) (domain.Event, error)) {
	id, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := apply(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEventNotFound))
			return
		}

		err = fmt.Errorf("v1.EventHandler.setStatus -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleDeleteEvent godoc
// @Summary      Delete an event (admin)
// @Tags         events
// @Param        eventID  path       int  true "event ID"
// @Success      204
// @Failure      400,404  {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/events/{eventID} [delete]
func (h *EventHandler) HandleDeleteEvent(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.DeleteEvent(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEventNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteEvent -> h.svc.DeleteEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

func eventFromRequest(id uint, req request.CreateEventRequest) domain.Event {
	enableTicketing := true
	if req.EnableTicketing != nil {
		enableTicketing = *req.EnableTicketing
	}
	enableRSVP := true
	if req.EnableRSVP != nil {
		enableRSVP = *req.EnableRSVP
	}

	ticketTypes := make([]domain.TicketType, 0, len(req.TicketTypes))
	for _, t := range req.TicketTypes {
		ticketTypes = append(ticketTypes, domain.TicketType{
			ID:                t.ID,
			EventID:           id,
			Name:              t.Name,
			Description:       t.Description,
			Price:             t.Price,
			AvailableQuantity: t.AvailableQuantity,
			MaxPerOrder:       t.MaxPerOrder,
		})
	}

	return domain.Event{
		ID:              id,
		Title:           req.Title,
		Description:     req.Description,
		Image:           req.Image,
		Date:            req.Date,
		Venue:           req.Venue,
		Location:        req.Location,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		ShowMap:         req.ShowMap,
		EnableTicketing: enableTicketing,
		EnableRSVP:      enableRSVP,
		Price:           req.Price,
		TotalSeats:      req.TotalSeats,
		Status:          domain.EventStatus(req.Status),
		TicketTypes:     ticketTypes,
	}
}

func parseIDParam(ctx *gin.Context, name string) (uint, error) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %v", name)
	}

	return uint(id), nil
}
