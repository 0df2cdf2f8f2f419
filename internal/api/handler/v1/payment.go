package v1

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yizeng/gab/gin/gorm/event-booking/internal/api/handler/v1/request"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/api/handler/v1/response"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/api/middleware"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/domain"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/gateway"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/service"
)

type PaymentService interface {
	StartCheckout(ctx context.Context, bookingID, userID uint, gatewayName string) (domain.Booking, gateway.CheckoutSession, error)
	HandleCallback(ctx context.Context, gatewayName string, cb gateway.Callback) (domain.Booking, error)
	GetBookingByReference(ctx context.Context, reference string) (domain.Booking, error)
	FailBooking(ctx context.Context, bookingID uint) error
	EnabledGateways(ctx context.Context) []string
}

type PaymentHandler struct {
	svc PaymentService
}

func NewPaymentHandler(svc PaymentService) *PaymentHandler {
	return &PaymentHandler{
		svc: svc,
	}
}

// HandleCheckout godoc
// @Summary      Start a checkout with a payment gateway
// @Tags         payments
// @Produce      json
// @Param        gateway  path       string true "gateway name"
// @Param        request  body       request.CheckoutRequest true "request body"
// @Success      200      {object}   response.CheckoutResponse
// @Failure      400,403,404 {object} response.Err
// @Failure      409,502  {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /payments/{gateway}/checkout [post]
func (h *PaymentHandler) HandleCheckout(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	gatewayName := ctx.Param("gateway")

	var req request.CheckoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	booking, session, err := h.svc.StartCheckout(ctx.Request.Context(), req.BookingID, userID, gatewayName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrBookingNotFound))
		case errors.Is(err, service.ErrPermissionDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrPermissionDenied))
		case errors.Is(err, service.ErrUnknownGateway), errors.Is(err, service.ErrGatewayDisabled):
			response.RenderErr(ctx, response.ErrNotFound(err))
		case errors.Is(err, service.ErrBookingNotPending):
			response.RenderErr(ctx, response.ErrConflict(service.ErrBookingNotPending))
		case errors.Is(err, service.ErrGatewayUnavailable):
			response.RenderErr(ctx, response.ErrBadGateway(err))
		case errors.Is(err, service.ErrPaymentDeclined):
			response.RenderErr(ctx, response.ErrConflict(service.ErrPaymentDeclined))
		default:
			err = fmt.Errorf("v1.HandleCheckout -> h.svc.StartCheckout -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.CheckoutResponse{
		Booking:      booking,
		Gateway:      gatewayName,
		CheckoutRef:  session.CheckoutRef,
		RedirectURL:  session.RedirectURL,
		ClientParams: session.ClientParams,
	})
}

// HandleWebhook godoc
// @Summary      Receive a payment gateway webhook
// @Tags         payments
// @Produce      json
// @Param        gateway  path       string true "gateway name"
// @Success      200      {object}   map[string]string
// @Failure      400,404  {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /payments/{gateway}/webhook [post]
func (h *PaymentHandler) HandleWebhook(ctx *gin.Context) {
	gatewayName := ctx.Param("gateway")

	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("unreadable body")))
		return
	}

	cb := gateway.Callback{
		Body:    body,
		Headers: ctx.Request.Header,
		Query:   ctx.Request.URL.Query(),
	}

	_, err = h.svc.HandleCallback(ctx.Request.Context(), gatewayName, cb)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidSignature):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidSignature))
		case errors.Is(err, service.ErrUnknownGateway), errors.Is(err, service.ErrGatewayDisabled):
			response.RenderErr(ctx, response.ErrNotFound(err))
		case errors.Is(err, service.ErrUnknownReference):
			// Acknowledged so the gateway stops retrying; redelivery can
			// never make the reference known.
			ctx.JSON(http.StatusOK, gin.H{"status": "ignored"})
		default:
			err = fmt.Errorf("v1.HandleWebhook -> h.svc.HandleCallback -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// HandlePaymentSuccess godoc
// @Summary      Payment success redirect target
// @Tags         payments
// @Produce      json
// @Param        gateway  query      string true "gateway name"
// @Param        ref      query      string true "booking reference"
// @Success      200      {object}   domain.Booking
// @Failure      400,404  {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /payments/success [get]
func (h *PaymentHandler) HandlePaymentSuccess(ctx *gin.Context) {
	gatewayName := ctx.Query("gateway")
	reference := ctx.Query("ref")

	// Stripe confirms exclusively on the webhook; the redirect only reports
	// current state. PayPal and Razorpay carry proof in the redirect itself,
	// so those run through callback interpretation.
	if gatewayName != gateway.GatewayStripe {
		cb := gateway.Callback{
			Headers: ctx.Request.Header,
			Query:   ctx.Request.URL.Query(),
		}

		booking, err := h.svc.HandleCallback(ctx.Request.Context(), gatewayName, cb)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidSignature):
				response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidSignature))
			case errors.Is(err, service.ErrUnknownGateway), errors.Is(err, service.ErrGatewayDisabled):
				response.RenderErr(ctx, response.ErrNotFound(err))
			case errors.Is(err, service.ErrUnknownReference):
				response.RenderErr(ctx, response.ErrNotFound(service.ErrBookingNotFound))
			case errors.Is(err, service.ErrPaymentDeclined):
				response.RenderErr(ctx, response.ErrConflict(service.ErrPaymentDeclined))
			default:
				err = fmt.Errorf("v1.HandlePaymentSuccess -> h.svc.HandleCallback -> %w", err)
				response.RenderErr(ctx, response.ErrInternalServerError(err))
			}
			return
		}

		ctx.JSON(http.StatusOK, booking)
		return
	}

	booking, err := h.svc.GetBookingByReference(ctx.Request.Context(), reference)
	if err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrBookingNotFound))
			return
		}

		err = fmt.Errorf("v1.HandlePaymentSuccess -> h.svc.GetBookingByReference -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, booking)
}

// HandlePaymentCancel godoc
// @Summary      Payment cancel redirect target
// @Tags         payments
// @Produce      json
// @Param        ref      query      string true "booking reference"
// @Success      200      {object}   domain.Booking
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /payments/cancel [get]
func (h *PaymentHandler) HandlePaymentCancel(ctx *gin.Context) {
	reference := ctx.Query("ref")

	booking, err := h.svc.GetBookingByReference(ctx.Request.Context(), reference)
	if err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrBookingNotFound))
			return
		}

		err = fmt.Errorf("v1.HandlePaymentCancel -> h.svc.GetBookingByReference -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	if err := h.svc.FailBooking(ctx.Request.Context(), booking.ID); err != nil {
		err = fmt.Errorf("v1.HandlePaymentCancel -> h.svc.FailBooking -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	booking.PaymentStatus = domain.PaymentFailed

	ctx.JSON(http.StatusOK, booking)
}

// HandleListGateways godoc
// @Summary      List enabled payment gateways
// @Tags         payments
// @Produce      json
// @Success      200      {object}   response.GatewaysResponse
// @Router       /payments/gateways [get]
func (h *PaymentHandler) HandleListGateways(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, response.GatewaysResponse{
		Gateways: h.svc.EnabledGateways(ctx.Request.Context()),
	})
}
