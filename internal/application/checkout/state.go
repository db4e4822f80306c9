package checkout

// State represents the position of the session in the checkout flow
type State string

const (
	StateBrowsing     State = "BROWSING"
	StatePreviewOpen  State = "PREVIEW_OPEN"
	StateBasketOpen   State = "BASKET_OPEN"
	StateAddressStep  State = "ADDRESS_STEP"
	StateContactStep  State = "CONTACT_STEP"
	StateSubmitting   State = "SUBMITTING"
	StateSuccessShown State = "SUCCESS_SHOWN"
)

// IsValid checks if the state is a valid State
func (s State) IsValid() bool {
	switch s {
	case StateBrowsing, StatePreviewOpen, StateBasketOpen, StateAddressStep,
		StateContactStep, StateSubmitting, StateSuccessShown:
		return true
	}
	return false
}

// String returns the string representation of State
func (s State) String() string {
	return string(s)
}

// CanTransitionTo checks if the state can transition to the target state
func (s State) CanTransitionTo(target State) bool {
	switch s {
	case StateBrowsing:
		return target == StatePreviewOpen || target == StateBasketOpen
	case StatePreviewOpen:
		return target == StateBrowsing || target == StateBasketOpen
	case StateBasketOpen:
		return target == StatePreviewOpen || target == StateAddressStep || target == StateBrowsing
	case StateAddressStep:
		return target == StateContactStep || target == StateBrowsing
	case StateContactStep:
		return target == StateSubmitting || target == StateBrowsing
	case StateSubmitting:
		// Failure is retryable: submission drops back to the contact step
		return target == StateSuccessShown || target == StateContactStep
	case StateSuccessShown:
		return target == StateBrowsing
	}
	return false
}
