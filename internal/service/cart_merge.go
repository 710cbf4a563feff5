package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/wearly/backend/internal/domain"
	"github.com/wearly/backend/internal/repository"
)

// Merge reconciles a guest cart into the authenticated user's cart. Called
// once by the client after sign-in.
//
// The two documents are not updated transactionally. A crash between the
// user-cart save and the guest-cart delete leaves an orphaned guest cart
// behind, which is harmless: authenticated lookups always resolve by user
// id first, and orphans are swept by an external cleanup job.
func (s *CartService) Merge(ctx context.Context, userID, guestID string) (*domain.Cart, error) {
	if guestID == "" {
		return nil, invalidInput("guestId is required")
	}

	guestOwner := domain.GuestOwner(guestID)
	userOwner := domain.UserOwner(userID)

	guestCart, err := s.carts.FindByOwner(ctx, guestOwner)
	if err != nil && !errors.Is(err, repository.ErrCartNotFound) {
		return nil, err
	}
	userCart, err := s.carts.FindByOwner(ctx, userOwner)
	if err != nil && !errors.Is(err, repository.ErrCartNotFound) {
		return nil, err
	}

	if guestCart == nil {
		// Already merged on a previous call.
		if userCart != nil {
			return userCart, nil
		}
		return nil, notFound("guest cart not found")
	}

	// An empty guest cart means the client sent a stale merge; surfacing
	// the error beats silently hiding the bug.
	if len(guestCart.Items) == 0 {
		return nil, invalidState("guest cart is empty")
	}

	if userCart != nil {
		for _, guestItem := range guestCart.Items {
			idx := userCart.FindItem(guestItem.ProductID, guestItem.Size, guestItem.Color)
			if idx >= 0 {
				userCart.Items[idx].Quantity += guestItem.Quantity
			} else {
				// Carried verbatim, keeping the price snapshotted at the
				// time the guest added it.
				userCart.Items = append(userCart.Items, guestItem)
			}
		}
		userCart.RecomputeTotal()

		if err := s.updateCart(ctx, userCart); err != nil {
			return nil, err
		}

		// Best effort: the merge already succeeded, a lingering guest cart
		// is invisible to authenticated lookups.
		if err := s.carts.Delete(ctx, guestOwner); err != nil {
			s.log.Warn("failed to delete guest cart after merge",
				zap.String("guest_id", guestID),
				zap.Error(err))
		}

		s.invalidateCache(guestOwner)
		s.invalidateCache(userOwner)
		return userCart, nil
	}

	// No user cart yet: reassign ownership in place, same document.
	guestCart.UserID = userID
	guestCart.GuestID = ""
	if err := s.updateCart(ctx, guestCart); err != nil {
		return nil, err
	}

	s.invalidateCache(guestOwner)
	s.invalidateCache(userOwner)
	return guestCart, nil
}
