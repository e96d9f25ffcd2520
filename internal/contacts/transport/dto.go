package transport

// MaxBatchSize caps the number of pairs accepted by one batch request.
const MaxBatchSize = 500

// ReconcileRequest is a raw mobile/telephone pair as captured on a referral.
type ReconcileRequest struct {
	Mobile    *string `json:"mobile" validate:"omitempty,max=64,contactvalue"`
	Telephone *string `json:"telephone" validate:"omitempty,max=64,contactvalue"`
}

// ReconcileResponse is the reconciled pair. Absent numbers are null.
type ReconcileResponse struct {
	Mobile           *string `json:"mobile"`
	Telephone        *string `json:"telephone"`
	MobileE164       *string `json:"mobileE164,omitempty"`
	TelephoneE164    *string `json:"telephoneE164,omitempty"`
	IsMobileValid    bool    `json:"isMobileValid"`
	IsTelephoneValid bool    `json:"isTelephoneValid"`
	Outcome          string  `json:"outcome"`
}

// BatchReconcileRequest reconciles several pairs in one call.
type BatchReconcileRequest struct {
	Items []ReconcileRequest `json:"items" validate:"required,min=1,max=500,dive"`
}

// BatchReconcileResponse keeps the order of the request items.
type BatchReconcileResponse struct {
	Items   []ReconcileResponse `json:"items"`
	Summary map[string]int      `json:"summary"`
}
