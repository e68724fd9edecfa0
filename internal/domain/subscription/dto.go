package subscription

type SubscribeRequest struct {
	Plan         string `json:"plan" binding:"required"`
	BillingCycle string `json:"billing_cycle" binding:"required"`
}

type ChangePlanRequest struct {
	Plan string `json:"plan" binding:"required"`
}

type ChangeBillingCycleRequest struct {
	BillingCycle string `json:"billing_cycle" binding:"required"`
}

type ChangeStartDateRequest struct {
	StartDate string `json:"start_date" binding:"required"`
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

type PaymentRequest struct {
	PaymentMethod string `json:"payment_method"`
}

// PlanResponse describes one tier for the public plan listing.
type PlanResponse struct {
	Plan     string   `json:"plan"`
	Features Features `json:"features"`
}
