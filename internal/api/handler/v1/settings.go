package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yizeng/gab/gin/gorm/event-booking/internal/api/handler/v1/request"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/api/handler/v1/response"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/domain"
)

type SettingsService interface {
	GetSettings(ctx context.Context) (domain.WebsiteSettings, error)
	GetPublicSettings(ctx context.Context) (domain.WebsiteSettings, error)
	UpdateSettings(ctx context.Context, settings domain.WebsiteSettings) (domain.WebsiteSettings, error)
}

type SettingsHandler struct {
	svc SettingsService
}

func NewSettingsHandler(svc SettingsService) *SettingsHandler {
	return &SettingsHandler{
		svc: svc,
	}
}

// HandleGetPublicSettings godoc
// @Summary      Get website settings without gateway credentials
// @Tags         settings
// @Produce      json
// @Success      200      {object}   domain.WebsiteSettings
// @Failure      500      {object}   response.Err
// @Router       /settings [get]
func (h *SettingsHandler) HandleGetPublicSettings(ctx *gin.Context) {
	settings, err := h.svc.GetPublicSettings(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetPublicSettings -> h.svc.GetPublicSettings -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, settings)
}

// HandleGetSettings godoc
// @Summary      Get website settings (admin)
// @Tags         settings
// @Produce      json
// @Success      200      {object}   domain.WebsiteSettings
// @Failure      500      {object}   response.Err
// @Router       /admin/settings [get]
func (h *SettingsHandler) HandleGetSettings(ctx *gin.Context) {
	settings, err := h.svc.GetSettings(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetSettings -> h.svc.GetSettings -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, settings)
}

// HandleUpdateSettings godoc
// @Summary      Update website settings (admin)
// @Tags         settings
// @Produce      json
// @Param        request  body       request.UpdateSettingsRequest true "request body"
// @Success      200      {object}   domain.WebsiteSettings
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/settings [put]
func (h *SettingsHandler) HandleUpdateSettings(ctx *gin.Context) {
	var req request.UpdateSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	settings, err := h.svc.UpdateSettings(ctx.Request.Context(), domain.WebsiteSettings{
		SiteName:     req.SiteName,
		SiteTagline:  req.SiteTagline,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		SocialLinks:  req.SocialLinks,
		Payment: domain.PaymentSettings{
			Currency:              req.Payment.Currency,
			StripeEnabled:         req.Payment.StripeEnabled,
			StripeSecretKey:       req.Payment.StripeSecretKey,
			StripePublicKey:       req.Payment.StripePublicKey,
			StripeWebhookKey:      req.Payment.StripeWebhookKey,
			PayPalEnabled:         req.Payment.PayPalEnabled,
			PayPalMode:            req.Payment.PayPalMode,
			PayPalClientID:        req.Payment.PayPalClientID,
			PayPalSecret:          req.Payment.PayPalSecret,
			RazorpayEnabled:       req.Payment.RazorpayEnabled,
			RazorpayKeyID:         req.Payment.RazorpayKeyID,
			RazorpaySecret:        req.Payment.RazorpaySecret,
			RazorpayWebhookSecret: req.Payment.RazorpayWebhookSecret,
		},
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleUpdateSettings -> h.svc.UpdateSettings -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, settings)
}
