package store

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"storefront/internal/core/domain/model/delivery"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/schedule"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	// ErrStoreIsNotConstructed is returned when a zero-value Store is used.
	ErrStoreIsNotConstructed = errors.New("store is not constructed")
	// ErrStoreNameIsRequired is returned when the store has no display name.
	ErrStoreNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrWhatsAppNumberIsRequired is returned when the store has no contact number.
	ErrWhatsAppNumberIsRequired = errs.NewValueIsRequiredError("whatsappNumber")
	// ErrDeliveryPolicyIsRequired is returned when the store has no delivery policy.
	ErrDeliveryPolicyIsRequired = errs.NewValueIsRequiredError("deliveryPolicy")
)

// Store is a read-only snapshot of merchant configuration.
type Store struct {
	id                   kernel.UUID
	name                 string
	whatsappNumber       string
	origin               kernel.Coordinates
	policy               delivery.Policy
	schedule             schedule.Spec
	businessHoursEnabled bool

	guard guard.ConstructorGuard
}

// NewStore validates every field and joins the failures. schedule may be nil.
func NewStore(
	id kernel.UUID,
	name string,
	whatsappNumber string,
	origin kernel.Coordinates,
	policy delivery.Policy,
	spec schedule.Spec,
	businessHoursEnabled bool,
) (*Store, error) {
	s := &Store{
		schedule:             spec,
		businessHoursEnabled: businessHoursEnabled,
		guard:                guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setName(name),
		s.setWhatsAppNumber(whatsappNumber),
		s.setOrigin(origin),
		s.setPolicy(policy),
	); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Store) Validate() error {
	if s == nil {
		return ErrStoreIsNotConstructed
	}
	return s.guard.Validate(ErrStoreIsNotConstructed)
}

func (s *Store) ID() kernel.UUID {
	return s.id
}

func (s *Store) Name() string {
	return s.name
}

func (s *Store) WhatsAppNumber() string {
	return s.whatsappNumber
}

func (s *Store) Origin() kernel.Coordinates {
	return s.origin
}

func (s *Store) Policy() delivery.Policy {
	return s.policy
}

func (s *Store) Schedule() schedule.Spec {
	return s.schedule
}

func (s *Store) BusinessHoursEnabled() bool {
	return s.businessHoursEnabled
}

// IsOpen evaluates the store's business hours at now.
func (s *Store) IsOpen(evaluator schedule.Evaluator, now time.Time) bool {
	return evaluator.IsOpen(s.schedule, now, s.businessHoursEnabled)
}

func (s *Store) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	s.id = id
	return nil
}

func (s *Store) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrStoreNameIsRequired
	}
	s.name = name
	return nil
}

func (s *Store) setWhatsAppNumber(number string) error {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, number)
	if digits == "" {
		return ErrWhatsAppNumberIsRequired
	}
	s.whatsappNumber = digits
	return nil
}

func (s *Store) setOrigin(origin kernel.Coordinates) error {
	if err := origin.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("origin", err)
	}
	s.origin = origin
	return nil
}

func (s *Store) setPolicy(policy delivery.Policy) error {
	if policy == nil {
		return ErrDeliveryPolicyIsRequired
	}
	if err := policy.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("deliveryPolicy", err)
	}
	s.policy = policy
	return nil
}
