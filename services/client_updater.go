package services

import (
	"errors"

	"merchline/models"

	"gorm.io/gorm"
)

// ClientUpdater applies client field updates and reconciles the address
// associations. Address rows are never mutated: when any submitted field
// differs from the stored row (exact string comparison, case and whitespace
// included) a fresh row is created and the association repointed, leaving
// the old row orphaned. Identical values keep the existing reference. With
// same_as_main the shipping association is forced to whatever row billing
// ends up on, regardless of the submitted shipping values.
type ClientUpdater struct {
	db     *gorm.DB
	client *models.Client
	params ClientParams
	failed bool
}

func NewClientUpdater(db *gorm.DB, client *models.Client, params ClientParams) *ClientUpdater {
	if client.Errors == nil {
		client.Errors = models.Errors{}
	}
	return &ClientUpdater{db: db, client: client, params: params}
}

func (u *ClientUpdater) Call() *models.Client {
	err := u.db.Transaction(func(tx *gorm.DB) error {
		billing, err := u.replaceIfChanged(tx, u.client.Address, u.params.Address, "address")
		if err != nil {
			return err
		}

		shipping := billing
		if !u.params.SameAsMain {
			shipping, err = u.replaceIfChanged(tx, u.client.ShippingAddress, u.params.ShippingAddress, "shipping_address")
			if err != nil {
				return err
			}
		}

		u.validate()
		if u.client.Errors.Any() {
			return errRollback
		}

		updates := map[string]interface{}{
			"company_name":  u.params.CompanyName,
			"personal_name": u.params.PersonalName,
			"phone_number":  u.params.PhoneNumber,
		}
		if billing != nil {
			updates["address_id"] = billing.ID
		}
		if shipping != nil {
			updates["shipping_address_id"] = shipping.ID
		}

		if err := tx.Model(&models.Client{}).Where("id = ?", u.client.ID).Updates(updates).Error; err != nil {
			return err
		}

		u.client.CompanyName = u.params.CompanyName
		u.client.PersonalName = u.params.PersonalName
		u.client.PhoneNumber = u.params.PhoneNumber
		if billing != nil {
			u.client.AddressID = &billing.ID
			u.client.Address = billing
		}
		if shipping != nil {
			u.client.ShippingAddressID = &shipping.ID
			u.client.ShippingAddress = shipping
		}
		return nil
	})

	if err != nil {
		u.failed = true
		if !errors.Is(err, errRollback) && !u.client.Errors.Any() {
			u.client.Errors.Add("base", err.Error())
		}
	}
	return u.client
}

func (u *ClientUpdater) Failed() bool {
	return u.failed || u.client.Errors.Any()
}

func (u *ClientUpdater) validate() {
	errs := u.client.Errors
	if u.params.CompanyName == "" {
		errs.Add("company_name", "can't be blank")
	}
	if u.params.PersonalName == "" {
		errs.Add("personal_name", "can't be blank")
	}
	if u.params.PhoneNumber == "" {
		errs.Add("phone_number", "can't be blank")
	}
}

func (u *ClientUpdater) replaceIfChanged(tx *gorm.DB, current *models.Address, params AddressParams, field string) (*models.Address, error) {
	if current != nil && current.Matches(params.Street, params.City, params.State, params.ZipCode) {
		return current, nil
	}

	if !validAddress(params) {
		u.client.Errors.Add(field, "street, city, state and zip code are required")
		return current, nil
	}

	addr := &models.Address{
		Street:  params.Street,
		City:    params.City,
		State:   params.State,
		ZipCode: params.ZipCode,
	}
	if err := tx.Create(addr).Error; err != nil {
		return nil, err
	}
	return addr, nil
}
