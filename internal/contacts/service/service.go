// Package service exposes contact reconciliation to the HTTP layer and CLI tools.
package service

import (
	"context"
	"errors"
	"strings"

	"referral_portal_backend/internal/contacts/domain"
	"referral_portal_backend/internal/contacts/transport"
	"referral_portal_backend/platform/apperr"
	"referral_portal_backend/platform/logger"
	"referral_portal_backend/platform/phone"
	"referral_portal_backend/platform/sanitize"
	"referral_portal_backend/platform/validator"

	"golang.org/x/sync/errgroup"
)

const msgValidationFailed = "validation failed"

// Service reconciles referral contact numbers.
type Service struct {
	reconciler  *domain.Reconciler
	val         *validator.Validator
	log         *logger.Logger
	concurrency int
}

// New creates a contacts service. concurrency bounds the goroutines used per batch.
func New(reconciler *domain.Reconciler, val *validator.Validator, log *logger.Logger, concurrency int) *Service {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Service{
		reconciler:  reconciler,
		val:         val,
		log:         log,
		concurrency: concurrency,
	}
}

// Reconcile validates and reconciles a single pair.
func (s *Service) Reconcile(ctx context.Context, req transport.ReconcileRequest) (transport.ReconcileResponse, error) {
	if err := s.Validate(req); err != nil {
		return transport.ReconcileResponse{}, err
	}
	if err := ctx.Err(); err != nil {
		return transport.ReconcileResponse{}, canceled(err, "contacts.Reconcile")
	}

	resp := s.reconcile(req)
	s.log.WithContext(ctx).ContactReconciled(resp.Outcome, resp.IsMobileValid, resp.IsTelephoneValid)
	return resp, nil
}

// Validate reports whether Reconcile would accept req.
func (s *Service) Validate(req transport.ReconcileRequest) error {
	if err := s.val.Struct(req); err != nil {
		return apperr.Validation(msgValidationFailed).WithDetails(err.Error()).WithOp("contacts.Reconcile")
	}
	return nil
}

// ReconcileBatch reconciles every item concurrently and returns results in request order.
func (s *Service) ReconcileBatch(ctx context.Context, req transport.BatchReconcileRequest) (transport.BatchReconcileResponse, error) {
	if err := s.val.Struct(req); err != nil {
		return transport.BatchReconcileResponse{}, apperr.Validation(msgValidationFailed).WithDetails(err.Error()).WithOp("contacts.ReconcileBatch")
	}

	items := make([]transport.ReconcileResponse, len(req.Items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, item := range req.Items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			items[i] = s.reconcile(item)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return transport.BatchReconcileResponse{}, canceled(err, "contacts.ReconcileBatch")
	}

	summary := make(map[string]int)
	for _, item := range items {
		summary[item.Outcome]++
	}
	s.log.WithContext(ctx).BatchReconciled(len(items), summary)

	return transport.BatchReconcileResponse{Items: items, Summary: summary}, nil
}

func (s *Service) reconcile(req transport.ReconcileRequest) transport.ReconcileResponse {
	result, outcome := s.reconciler.ReconcileWithOutcome(domain.ContactPair{
		Mobile:    req.Mobile,
		Telephone: req.Telephone,
	})

	resp := transport.ReconcileResponse{
		Mobile:           result.Mobile,
		Telephone:        result.Telephone,
		IsMobileValid:    result.IsMobileValid,
		IsTelephoneValid: result.IsTelephoneValid,
		Outcome:          string(outcome),
	}
	if result.IsMobileValid && result.Mobile != nil {
		resp.MobileE164 = e164(*result.Mobile)
	}
	if result.IsTelephoneValid && result.Telephone != nil {
		resp.TelephoneE164 = e164(*result.Telephone)
	}
	return resp
}

// e164 returns nil when the number is not a valid E.164 number.
func e164(number string) *string {
	formatted := phone.NormalizeE164(number)
	if len(formatted) == 0 || formatted[0] != '+' {
		return nil
	}
	return &formatted
}

// StripMarkup returns a Sanitizer that removes HTML from web form input before
// handing it to next. A value that loses markup is only accepted when the
// result is a UK mobile or landline; otherwise it fails so the reconciler keeps
// the submitted text untouched.
func StripMarkup(next domain.Sanitizer, classifier domain.Classifier) domain.Sanitizer {
	return phone.SanitizerFunc(func(raw string, preferUK bool) (string, error) {
		stripped := sanitize.StripHTML(raw)
		if stripped == strings.TrimSpace(raw) {
			return next.Sanitize(raw, preferUK)
		}
		if stripped == "" {
			return "", &phone.FormatError{Input: raw}
		}
		cleaned, err := next.Sanitize(stripped, preferUK)
		if err != nil {
			return "", err
		}
		if !classifier.IsUKMobile(cleaned) && !classifier.IsUKLandline(cleaned) {
			return "", &phone.FormatError{Input: raw}
		}
		return cleaned, nil
	})
}

func canceled(err error, op string) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return apperr.Wrap(apperr.KindCanceled, "request canceled", err).WithOp(op)
	}
	return apperr.Wrap(apperr.KindInternal, "reconciliation failed", err).WithOp(op)
}
