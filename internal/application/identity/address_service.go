package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/shopline/backend/internal/domain/identity"
	"github.com/shopline/backend/internal/domain/shared"
)

// AddressService handles the user's shipping address book
type AddressService struct {
	addressRepo identity.AddressRepository
}

// NewAddressService creates a new AddressService
func NewAddressService(addressRepo identity.AddressRepository) *AddressService {
	return &AddressService{addressRepo: addressRepo}
}

// List returns the caller's addresses, default first
func (s *AddressService) List(ctx context.Context, userID uuid.UUID) ([]AddressResponse, error) {
	addresses, err := s.addressRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	responses := make([]AddressResponse, 0, len(addresses))
	for _, a := range addresses {
		responses = append(responses, ToAddressResponse(a))
	}
	return responses, nil
}

// Create adds an address. The first address of a user becomes the
// default regardless of the request.
func (s *AddressService) Create(ctx context.Context, userID uuid.UUID, req CreateAddressRequest) (*AddressResponse, error) {
	address, err := identity.NewAddress(userID, req.ReceiverName, req.Phone, req.Line, req.Ward, req.District, req.City)
	if err != nil {
		return nil, err
	}

	existing, err := s.addressRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.IsDefault || len(existing) == 0 {
		if err := s.addressRepo.ClearDefault(ctx, userID); err != nil {
			return nil, err
		}
		address.IsDefault = true
	}

	if err := s.addressRepo.Save(ctx, address); err != nil {
		return nil, err
	}
	response := ToAddressResponse(address)
	return &response, nil
}

// Update replaces one of the caller's addresses
func (s *AddressService) Update(ctx context.Context, userID, addressID uuid.UUID, req UpdateAddressRequest) (*AddressResponse, error) {
	address, err := s.owned(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}
	if err := address.Update(req.ReceiverName, req.Phone, req.Line, req.Ward, req.District, req.City); err != nil {
		return nil, err
	}
	if req.IsDefault && !address.IsDefault {
		if err := s.addressRepo.ClearDefault(ctx, userID); err != nil {
			return nil, err
		}
		address.IsDefault = true
	}
	if err := s.addressRepo.Save(ctx, address); err != nil {
		return nil, err
	}
	response := ToAddressResponse(address)
	return &response, nil
}

// SetDefault promotes one of the caller's addresses to default
func (s *AddressService) SetDefault(ctx context.Context, userID, addressID uuid.UUID) (*AddressResponse, error) {
	address, err := s.owned(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}
	if !address.IsDefault {
		if err := s.addressRepo.ClearDefault(ctx, userID); err != nil {
			return nil, err
		}
		address.IsDefault = true
		if err := s.addressRepo.Save(ctx, address); err != nil {
			return nil, err
		}
	}
	response := ToAddressResponse(address)
	return &response, nil
}

// Delete removes one of the caller's addresses
func (s *AddressService) Delete(ctx context.Context, userID, addressID uuid.UUID) error {
	if _, err := s.owned(ctx, userID, addressID); err != nil {
		return err
	}
	return s.addressRepo.Delete(ctx, addressID)
}

func (s *AddressService) owned(ctx context.Context, userID, addressID uuid.UUID) (*identity.Address, error) {
	address, err := s.addressRepo.FindByID(ctx, addressID)
	if err != nil {
		return nil, err
	}
	if address.UserID != userID {
		return nil, shared.ErrNotFound
	}
	return address, nil
}
