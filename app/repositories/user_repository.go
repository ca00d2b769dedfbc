package repositories

import (
	"github.com/hydroline/hydroline/app/models"
	"github.com/hydroline/hydroline/pkg/orm"
)

// UserRepository handles database operations for users and their addresses.
type UserRepository struct {
	q *orm.Query
}

func NewUserRepository(q *orm.Query) *UserRepository {
	return &UserRepository{q: q}
}

// FindByEmail looks up a user by email address.
func (r *UserRepository) FindByEmail(email string) (models.User, error) {
	var user models.User
	err := r.q.Model(&models.User{}).Where("email = ?", email).First(&user)
	return user, err
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(id uint) (models.User, error) {
	var user models.User
	err := r.q.Model(&models.User{}).Where("id = ?", id).First(&user)
	return user, err
}

// Create persists a new user record.
func (r *UserRepository) Create(user *models.User) error {
	return r.q.Create(user)
}

// Update persists changes to an existing user.
func (r *UserRepository) Update(user *models.User) error {
	return r.q.Save(user)
}

// Addresses returns all addresses owned by the user.
func (r *UserRepository) Addresses(userID uint) ([]models.Address, error) {
	var out []models.Address
	err := r.q.Model(&models.Address{}).Where("user_id = ?", userID).Order("id desc").Get(&out)
	return out, err
}

// FindAddress looks up a single address by primary key.
func (r *UserRepository) FindAddress(id uint) (models.Address, error) {
	var addr models.Address
	err := r.q.Model(&models.Address{}).Where("id = ?", id).First(&addr)
	return addr, err
}

// CreateAddress persists a new address for a user.
func (r *UserRepository) CreateAddress(addr *models.Address) error {
	return r.q.Create(addr)
}

// UpdateAddress persists changes to an address.
func (r *UserRepository) UpdateAddress(addr *models.Address) error {
	return r.q.Save(addr)
}

// DeleteAddress removes an address by id.
func (r *UserRepository) DeleteAddress(id uint) error {
	return r.q.Delete(&models.Address{}, id)
}
