package ticketing

import (
	"context"

	"github.com/iliyamo/event-ticketing/internal/model"
)

// Fixed parameters for the default catalog.  General Admission is free
// and unlimited; the paid tiers carry hard caps.
const (
	defaultPremiumPriceCents = 2500
	defaultPremiumQuantity   = 50
	defaultVIPPriceCents     = 5000
	defaultVIPQuantity       = 20
)

// ProvisionDefaultTypes creates the standard three-tier catalog for an
// event that has none: General Admission (free, unlimited), Premium and
// VIP.  All three are created as ACTIVE with the event owner as creator,
// regardless of who triggered provisioning.  It returns the General
// Admission type.
//
// The caller must have verified, inside the same transaction, that the
// event has zero ticket types; calling this on an event that already has
// a catalog duplicates tiers.
func ProvisionDefaultTypes(ctx context.Context, store Store, ev model.Event) (model.TicketType, error) {
	general := model.TicketType{
		EventID:    ev.ID,
		CreatedBy:  ev.OwnerID,
		Name:       "General Admission",
		PriceCents: 0,
		Quantity:   0, // unlimited
		Status:     model.TicketTypeStatusActive,
	}
	if err := store.CreateTicketType(ctx, &general); err != nil {
		return model.TicketType{}, err
	}

	premium := model.TicketType{
		EventID:    ev.ID,
		CreatedBy:  ev.OwnerID,
		Name:       "Premium",
		PriceCents: defaultPremiumPriceCents,
		Quantity:   defaultPremiumQuantity,
		Status:     model.TicketTypeStatusActive,
	}
	if err := store.CreateTicketType(ctx, &premium); err != nil {
		return model.TicketType{}, err
	}

	vip := model.TicketType{
		EventID:    ev.ID,
		CreatedBy:  ev.OwnerID,
		Name:       "VIP",
		PriceCents: defaultVIPPriceCents,
		Quantity:   defaultVIPQuantity,
		Status:     model.TicketTypeStatusActive,
	}
	if err := store.CreateTicketType(ctx, &vip); err != nil {
		return model.TicketType{}, err
	}

	return general, nil
}
