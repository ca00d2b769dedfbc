package controllers

import (
	"net/http"

	"github.com/hydroline/hydroline/app/models"
	"github.com/hydroline/hydroline/app/services"
	"github.com/hydroline/hydroline/pkg/bind"
	"github.com/hydroline/hydroline/pkg/response"
)

// AddressController manages the caller's saved addresses.
type AddressController struct {
	addresses *services.AddressService
}

func NewAddressController(addresses *services.AddressService) *AddressController {
	return &AddressController{addresses: addresses}
}

type addressRequest struct {
	FullName string `json:"fullName" validate:"required,max=255"`
	Phone    string `json:"phone" validate:"required,min=7,max=20"`
	Line1    string `json:"line1" validate:"required,max=255"`
	Line2    string `json:"line2" validate:"nullable,max=255"`
	City     string `json:"city" validate:"required,max=100"`
	State    string `json:"state" validate:"required,max=100"`
	Pincode  string `json:"pincode" validate:"required,min=4,max=20"`
	Country  string `json:"country" validate:"nullable,max=100"`
}

func (req addressRequest) model() models.Address {
	return models.Address{
		FullName: req.FullName,
		Phone:    req.Phone,
		Line1:    req.Line1,
		Line2:    req.Line2,
		City:     req.City,
		State:    req.State,
		Pincode:  req.Pincode,
		Country:  req.Country,
	}
}

// List returns all of the caller's addresses.
func (c *AddressController) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	out, err := c.addresses.List(uid)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, out)
}

// Create saves a new address.
func (c *AddressController) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var req addressRequest
	errs, err := bind.JSON(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	addr, err := c.addresses.Create(uid, req.model())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Created(w, addr)
}

// Update replaces one of the caller's addresses.
func (c *AddressController) Update(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	id, err := paramUint(r, "addressId")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid address id")
		return
	}

	var req addressRequest
	errs, err := bind.JSON(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	addr, err := c.addresses.Update(uid, id, req.model())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, addr)
}

// Delete removes one of the caller's addresses.
func (c *AddressController) Delete(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	id, err := paramUint(r, "addressId")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid address id")
		return
	}

	if err := c.addresses.Delete(uid, id); err != nil {
		respondErr(w, r, err)
		return
	}
	response.SuccessMessage(w, "Address deleted", nil)
}
