package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/hydroline/hydroline/app/models"
	"github.com/hydroline/hydroline/app/repositories"
)

// AddressService manages a user's saved mailing addresses.
type AddressService struct {
	users *repositories.UserRepository
}

func NewAddressService(users *repositories.UserRepository) *AddressService {
	return &AddressService{users: users}
}

// List returns all addresses owned by the user.
func (s *AddressService) List(userID uint) ([]models.Address, error) {
	return s.users.Addresses(userID)
}

// Create saves a new address for the user.
func (s *AddressService) Create(userID uint, addr models.Address) (models.Address, error) {
	addr.UserID = userID
	if err := s.users.CreateAddress(&addr); err != nil {
		return models.Address{}, err
	}
	return addr, nil
}

// Update replaces the mutable fields of an address the user owns.
func (s *AddressService) Update(userID, addressID uint, in models.Address) (models.Address, error) {
	addr, err := s.owned(userID, addressID)
	if err != nil {
		return models.Address{}, err
	}

	addr.FullName = in.FullName
	addr.Phone = in.Phone
	addr.Line1 = in.Line1
	addr.Line2 = in.Line2
	addr.City = in.City
	addr.State = in.State
	addr.Pincode = in.Pincode
	if in.Country != "" {
		addr.Country = in.Country
	}

	if err := s.users.UpdateAddress(&addr); err != nil {
		return models.Address{}, err
	}
	return addr, nil
}

// Delete removes an address the user owns.
func (s *AddressService) Delete(userID, addressID uint) error {
	if _, err := s.owned(userID, addressID); err != nil {
		return err
	}
	return s.users.DeleteAddress(addressID)
}

func (s *AddressService) owned(userID, addressID uint) (models.Address, error) {
	addr, err := s.users.FindAddress(addressID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Address{}, ErrNotFound
	}
	if err != nil {
		return models.Address{}, err
	}
	if addr.UserID != userID {
		return models.Address{}, ErrForbidden
	}
	return addr, nil
}
