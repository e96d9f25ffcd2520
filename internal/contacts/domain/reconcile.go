// Package domain holds the contact number reconciliation rules for referral records.
package domain

import "strings"

// ContactPair is the mobile/telephone pair captured on a referral.
// A nil field means the value is absent.
type ContactPair struct {
	Mobile           *string
	Telephone        *string
	IsMobileValid    bool
	IsTelephoneValid bool
}

// Sanitizer normalizes a raw value into a phone number skeleton.
type Sanitizer interface {
	Sanitize(raw string, preferUK bool) (string, error)
}

// Classifier recognizes UK mobile and landline formats.
type Classifier interface {
	IsUKMobile(s string) bool
	IsUKLandline(s string) bool
}

// Outcome describes what reconciliation did to a pair.
type Outcome string

const (
	OutcomeUnchanged        Outcome = "unchanged"
	OutcomeNormalized       Outcome = "normalized"
	OutcomeSwapped          Outcome = "swapped"
	OutcomeMovedToMobile    Outcome = "moved_to_mobile"
	OutcomeMovedToTelephone Outcome = "moved_to_telephone"
	OutcomeDuplicateDropped Outcome = "duplicate_dropped"
)

// Reconciler places mobile and landline numbers in the slot their format indicates.
// It holds no per-call state and is safe for concurrent use.
type Reconciler struct {
	sanitizer  Sanitizer
	classifier Classifier
}

// NewReconciler creates a Reconciler from the given capabilities.
func NewReconciler(sanitizer Sanitizer, classifier Classifier) *Reconciler {
	return &Reconciler{sanitizer: sanitizer, classifier: classifier}
}

// Reconcile returns a new pair with values moved into the right slots and the
// validity flags set. Input flags are ignored and the input is not modified.
func (r *Reconciler) Reconcile(pair ContactPair) ContactPair {
	result, _ := r.ReconcileWithOutcome(pair)
	return result
}

// ReconcileWithOutcome is Reconcile that also reports which rule fired.
func (r *Reconciler) ReconcileWithOutcome(pair ContactPair) (ContactPair, Outcome) {
	rawMobile := valueOf(pair.Mobile)
	rawTelephone := valueOf(pair.Telephone)

	mobile := r.sanitize(rawMobile)
	telephone := r.sanitize(rawTelephone)

	outcome := OutcomeUnchanged
	if mobile != rawMobile || telephone != rawTelephone {
		outcome = OutcomeNormalized
	}

	var mobileValid, telephoneValid bool

	// Order matters: each branch is terminal and later checks assume earlier ones failed.
	switch {
	case r.classifier.IsUKMobile(mobile):
		mobileValid = true
	case r.classifier.IsUKMobile(telephone):
		if r.classifier.IsUKLandline(mobile) {
			mobile, telephone = telephone, mobile
			mobileValid = true
			telephoneValid = true
			outcome = OutcomeSwapped
		} else {
			mobile = telephone
			mobileValid = true
			telephone = ""
			telephoneValid = false
			outcome = OutcomeMovedToMobile
		}
	default:
		switch {
		case r.classifier.IsUKLandline(telephone):
			telephoneValid = true
		case r.classifier.IsUKLandline(mobile):
			telephone = mobile
			telephoneValid = true
			mobile = ""
			outcome = OutcomeMovedToTelephone
		default:
			telephoneValid = false
		}
		mobileValid = false
	}

	// Telephone is re-examined after any move above.
	if telephone != "" && r.classifier.IsUKLandline(telephone) {
		telephoneValid = true
		if mobile != "" && r.classifier.IsUKLandline(mobile) {
			mobile = ""
			outcome = OutcomeDuplicateDropped
		}
	} else {
		if telephone != "" && r.classifier.IsUKMobile(telephone) && mobileValid {
			telephone = ""
			outcome = OutcomeDuplicateDropped
		}
		telephoneValid = false
	}

	return ContactPair{
		Mobile:           ptrOrNil(mobile),
		Telephone:        ptrOrNil(telephone),
		IsMobileValid:    mobileValid,
		IsTelephoneValid: telephoneValid,
	}, outcome
}

// sanitize keeps the raw value when the sanitizer cannot interpret it.
func (r *Reconciler) sanitize(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	cleaned, err := r.sanitizer.Sanitize(raw, true)
	if err != nil {
		return raw
	}
	return cleaned
}

func valueOf(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ptrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
