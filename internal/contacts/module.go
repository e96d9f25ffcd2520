// Package contacts provides the contact reconciliation bounded context module.
// It decides which referral contact field holds the mobile and which the landline number.
package contacts

import (
	"referral_portal_backend/internal/contacts/domain"
	"referral_portal_backend/internal/contacts/handler"
	"referral_portal_backend/internal/contacts/service"
	apphttp "referral_portal_backend/internal/http"
	"referral_portal_backend/platform/config"
	"referral_portal_backend/platform/logger"
	"referral_portal_backend/platform/phone"
	"referral_portal_backend/platform/validator"
)

// ModuleConfig combines the config interfaces needed by the contacts module.
type ModuleConfig interface {
	config.PhoneConfig
	config.BatchConfig
}

// Module is the contacts bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the contacts module with all its dependencies.
// It fails when configured number patterns do not compile.
func NewModule(cfg ModuleConfig, val *validator.Validator, log *logger.Logger) (*Module, error) {
	classifier, err := phone.NewClassifier(cfg.GetUKMobilePattern(), cfg.GetUKLandlinePattern())
	if err != nil {
		return nil, err
	}

	reconciler := domain.NewReconciler(service.StripMarkup(phone.DefaultSanitizer, classifier), classifier)
	svc := service.New(reconciler, val, log, cfg.GetReconcileBatchConcurrency())

	return &Module{
		handler: handler.New(svc),
		service: svc,
	}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "contacts"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts contact routes on the authenticated API group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/contacts")
	group.POST("/reconcile", m.handler.Reconcile)
	group.POST("/reconcile/batch", m.handler.ReconcileBatch)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
