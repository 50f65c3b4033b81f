package checkout

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/schedule"
	"storefront/internal/core/domain/model/store"
)

// SubmissionLockTimeout bounds how long a stored submitting mark blocks new
// submissions of the same session.
const SubmissionLockTimeout = 2 * time.Minute

// DefaultPhoneDigits is the digit count of a WhatsApp number in the default flow.
const DefaultPhoneDigits = 10

// DefaultRequiredAddressFields are the address fields a delivery needs.
var DefaultRequiredAddressFields = []AddressField{
	AddressStreet,
	AddressNumber,
	AddressNeighborhood,
	AddressDwellingType,
}

// Rules are the policy constants step validators read.
type Rules struct {
	PhoneDigits           int
	RequiredAddressFields []AddressField
}

func DefaultRules() Rules {
	return Rules{
		PhoneDigits:           DefaultPhoneDigits,
		RequiredAddressFields: slices.Clone(DefaultRequiredAddressFields),
	}
}

// StepRule describes one step of a Flow. Include decides whether the step is
// part of the session's path (nil means always); Validate gates leaving the
// step forward (nil means always valid).
type StepRule struct {
	Step     Step
	Include  func(s *Session) bool
	Validate func(s *Session, rules Rules) error
}

// Flow drives sessions through an ordered list of steps. Every checkout
// variant is a Flow with its own steps and rules.
type Flow struct {
	steps []StepRule
	rules Rules
}

// NewFlow builds a flow. Steps must be unique and Submitted is reserved as the
// terminal state; the last step is the one submissions are made from.
func NewFlow(rules Rules, steps ...StepRule) (Flow, error) {
	if len(steps) == 0 {
		return Flow{}, errors.New("flow needs at least one step")
	}
	if rules.PhoneDigits <= 0 {
		return Flow{}, fmt.Errorf("phone digits must be positive, got %d", rules.PhoneDigits)
	}

	seen := make(map[Step]bool, len(steps))
	for _, rule := range steps {
		if rule.Step == "" || rule.Step == StepSubmitted {
			return Flow{}, fmt.Errorf("step %q cannot be part of a flow", rule.Step)
		}
		if seen[rule.Step] {
			return Flow{}, fmt.Errorf("step %q is listed twice", rule.Step)
		}
		seen[rule.Step] = true
	}

	return Flow{steps: slices.Clone(steps), rules: rules}, nil
}

// DefaultFlow is CustomerInfo → DeliveryMethod → [Address] → Payment → Confirm.
func DefaultFlow(rules Rules) Flow {
	flow, err := NewFlow(rules,
		StepRule{Step: StepCustomerInfo, Validate: validateCustomerInfo},
		StepRule{Step: StepDeliveryMethod, Validate: validateDeliveryMethod},
		StepRule{Step: StepAddress, Include: isDelivery, Validate: validateAddress},
		StepRule{Step: StepPayment, Validate: validatePayment},
		StepRule{Step: StepConfirm},
	)
	if err != nil {
		panic(err)
	}
	return flow
}

func (f Flow) Rules() Rules {
	return f.rules
}

// Steps lists the flow's steps in order.
func (f Flow) Steps() []Step {
	steps := make([]Step, 0, len(f.steps))
	for _, rule := range f.steps {
		steps = append(steps, rule.Step)
	}
	return steps
}

// StepsFor lists the steps included for s given its current choices, for
// example without Address for pickup.
func (f Flow) StepsFor(s *Session) []Step {
	steps := make([]Step, 0, len(f.steps))
	for _, rule := range f.steps {
		if rule.Include == nil || rule.Include(s) {
			steps = append(steps, rule.Step)
		}
	}
	return steps
}

// FinalStep is the step submissions are made from.
func (f Flow) FinalStep() Step {
	return f.steps[len(f.steps)-1].Step
}

// Start opens a session on the flow's first step.
func (f Flow) Start(id kernel.UUID, st *store.Store, c cart.Cart, now time.Time) (*Session, error) {
	return NewSession(id, st, c, f.steps[0].Step, now)
}

// ValidateStep runs the validator of step against the session.
func (f Flow) ValidateStep(s *Session, step Step) error {
	idx := f.indexOf(step)
	if idx < 0 {
		return fmt.Errorf("step %q is not part of the flow", step)
	}
	rule := f.steps[idx]
	if rule.Validate == nil {
		return nil
	}
	if err := rule.Validate(s, f.rules); err != nil {
		return NewStepValidationError(step, err)
	}
	return nil
}

// Next validates the current step and moves to the next included one.
func (f Flow) Next(s *Session) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s.IsClosed() {
		return ErrSessionIsClosed
	}
	if err := f.ValidateStep(s, s.currentStep); err != nil {
		return err
	}

	next, ok := f.nextIncluded(s, f.indexOf(s.currentStep))
	if !ok {
		return ErrNoNextStep
	}

	s.path = append(s.path, s.currentStep)
	s.currentStep = next
	return nil
}

// Back returns to the previous step of the path taken. Leaving Address
// cancels any quote in flight.
func (f Flow) Back(s *Session) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s.IsClosed() {
		return ErrSessionIsClosed
	}
	if len(s.path) == 0 {
		return ErrNoPreviousStep
	}

	if s.currentStep == StepAddress {
		s.CancelQuote()
	}
	s.currentStep = s.path[len(s.path)-1]
	s.path = s.path[:len(s.path)-1]
	return nil
}

// BeginSubmission gates and starts a submission. Every step on the session's
// current route is validated again, whether or not the shopper walked it. The
// submission is refused while another one is in flight, while a required
// delivery quote is absent, pending, stale or out of area, and when the store
// is closed at now. On success the session is marked as submitting until
// MarkSubmitted or AbortSubmission; a mark older than SubmissionLockTimeout
// no longer blocks.
func (f Flow) BeginSubmission(s *Session, evaluator schedule.Evaluator, now time.Time) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s.IsClosed() {
		return ErrSessionIsClosed
	}
	if s.currentStep != f.FinalStep() {
		return ErrNotOnConfirmStep
	}
	if s.submitting && now.Sub(s.submittingAt) < SubmissionLockTimeout {
		return ErrSubmissionInProgress
	}

	for _, step := range f.StepsFor(s) {
		if step == s.currentStep {
			break
		}
		if err := f.ValidateStep(s, step); err != nil {
			return err
		}
	}
	if s.deliveryMethod.IsDelivery() {
		if err := requireUsableQuote(s); err != nil {
			return NewStepValidationError(s.currentStep, err)
		}
	}

	if !s.store.IsOpen(evaluator, now) {
		return ErrStoreClosed
	}

	s.submitting = true
	s.submittingAt = now
	return nil
}

// Reroute moves the session back to the first step where the path walked so
// far departs from the route its current choices produce, for example to
// Address after switching from pickup to delivery on Confirm. It reports
// whether the session moved.
func (f Flow) Reroute(s *Session) bool {
	if s.IsClosed() || s.submitting {
		return false
	}

	route := f.StepsFor(s)
	for i, step := range s.path {
		if i < len(route) && route[i] == step {
			continue
		}
		if i >= len(route) {
			return false
		}
		s.path = s.path[:i]
		s.currentStep = route[i]
		return true
	}

	n := len(s.path)
	if n < len(route) && route[n] != s.currentStep {
		if s.currentStep == StepAddress {
			s.CancelQuote()
		}
		s.currentStep = route[n]
		return true
	}
	return false
}

// AbortSubmission clears the in-flight flag after a submission that failed
// before reaching the merchant.
func (f Flow) AbortSubmission(s *Session) {
	s.submitting = false
	s.submittingAt = time.Time{}
}

// MarkSubmitted moves the session to its terminal state.
func (f Flow) MarkSubmitted(s *Session) error {
	if !s.submitting {
		return errors.New("no submission in progress")
	}
	s.path = append(s.path, s.currentStep)
	s.currentStep = StepSubmitted
	s.submitting = false
	s.submittingAt = time.Time{}
	return nil
}

func (f Flow) indexOf(step Step) int {
	return slices.IndexFunc(f.steps, func(rule StepRule) bool { return rule.Step == step })
}

func (f Flow) nextIncluded(s *Session, from int) (Step, bool) {
	if from < 0 {
		return "", false
	}
	for _, rule := range f.steps[from+1:] {
		if rule.Include == nil || rule.Include(s) {
			return rule.Step, true
		}
	}
	return "", false
}

func isDelivery(s *Session) bool {
	return s.deliveryMethod.IsDelivery()
}

func validateCustomerInfo(s *Session, rules Rules) error {
	return s.customer.Validate(rules.PhoneDigits)
}

func validateDeliveryMethod(s *Session, _ Rules) error {
	return s.deliveryMethod.Validate()
}

func validateAddress(s *Session, rules Rules) error {
	if s.address == nil {
		return ErrAddressIsRequired
	}
	if err := s.address.Validate(rules.RequiredAddressFields); err != nil {
		return err
	}
	if s.store.Policy().Mode().RequiresDestination() && s.address.Coordinates == nil {
		return ErrCoordinatesAreRequired
	}
	return requireUsableQuote(s)
}

func validatePayment(s *Session, _ Rules) error {
	return s.payment.Validate(s.AmountDue())
}

func requireUsableQuote(s *Session) error {
	if s.quotePending {
		return ErrQuoteIsPending
	}
	quote, ok := s.CurrentQuote()
	if !ok {
		return ErrQuoteIsRequired
	}
	if !quote.WithinServiceArea() {
		return outOfServiceArea(quote.Message())
	}
	return nil
}
