package services

import (
	"errors"

	"merchline/mailer"
	"merchline/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ClientCreator creates a client together with its billing/shipping
// addresses and any nested users, atomically. With same_as_main the shipping
// association points at the billing row itself; otherwise a second address
// row is created even when the field values match. Each created user gets a
// welcome mail carrying the initial password, enqueued after commit.
type ClientCreator struct {
	db     *gorm.DB
	mailer mailer.Mailer
	params ClientParams
	client *models.Client
	failed bool
}

type pendingWelcome struct {
	userID   uint
	password string
}

func NewClientCreator(db *gorm.DB, m mailer.Mailer, params ClientParams) *ClientCreator {
	return &ClientCreator{
		db:     db,
		mailer: m,
		params: params,
		client: &models.Client{
			CompanyName:  params.CompanyName,
			PersonalName: params.PersonalName,
			PhoneNumber:  params.PhoneNumber,
			Errors:       models.Errors{},
		},
	}
}

func (c *ClientCreator) Call() *models.Client {
	var welcomes []pendingWelcome

	err := c.db.Transaction(func(tx *gorm.DB) error {
		c.validate()
		if c.client.Errors.Any() {
			return errRollback
		}

		billing, err := c.createAddress(tx, c.params.Address, "address")
		if err != nil {
			return err
		}

		shipping := billing
		if !c.params.SameAsMain {
			shipping, err = c.createAddress(tx, c.params.ShippingAddress, "shipping_address")
			if err != nil {
				return err
			}
		}
		if c.client.Errors.Any() {
			return errRollback
		}

		c.client.AddressID = &billing.ID
		c.client.Address = billing
		c.client.ShippingAddressID = &shipping.ID
		c.client.ShippingAddress = shipping

		if err := tx.Omit("Address", "ShippingAddress", "Users").Create(c.client).Error; err != nil {
			return err
		}

		for _, up := range c.params.Users {
			user, err := c.createUser(tx, up)
			if err != nil {
				return err
			}
			welcomes = append(welcomes, pendingWelcome{userID: user.ID, password: up.Password})
		}
		if c.client.Errors.Any() {
			return errRollback
		}
		return nil
	})

	if err != nil {
		c.failed = true
		if !errors.Is(err, errRollback) && !c.client.Errors.Any() {
			c.client.Errors.Add("base", err.Error())
		}
		return c.client
	}

	for _, w := range welcomes {
		c.mailer.WelcomeClient(w.userID, w.password)
	}
	return c.client
}

func (c *ClientCreator) Success() bool {
	return !c.failed && !c.client.Errors.Any()
}

func (c *ClientCreator) validate() {
	errs := c.client.Errors
	if c.client.CompanyName == "" {
		errs.Add("company_name", "can't be blank")
	}
	if c.client.PersonalName == "" {
		errs.Add("personal_name", "can't be blank")
	}
	if c.client.PhoneNumber == "" {
		errs.Add("phone_number", "can't be blank")
	}
}

func (c *ClientCreator) createAddress(tx *gorm.DB, params AddressParams, field string) (*models.Address, error) {
	addr := &models.Address{
		Street:  params.Street,
		City:    params.City,
		State:   params.State,
		ZipCode: params.ZipCode,
	}
	if !validAddress(params) {
		c.client.Errors.Add(field, "street, city, state and zip code are required")
		return addr, nil
	}
	if err := tx.Create(addr).Error; err != nil {
		return nil, err
	}
	return addr, nil
}

func (c *ClientCreator) createUser(tx *gorm.DB, params UserParams) (*models.User, error) {
	if params.Email == "" || params.Password == "" {
		c.client.Errors.Add("users", "email and password are required")
		return nil, errRollback
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    params.Email,
		Password: string(hash),
		Role:     models.RoleClient,
		ClientID: &c.client.ID,
	}
	if err := tx.Create(user).Error; err != nil {
		// Most likely the unique email constraint; report it as a
		// validation failure rather than a fatal error.
		c.client.Errors.Add("users", "email "+params.Email+" is already taken")
		return nil, errRollback
	}
	return user, nil
}

func validAddress(params AddressParams) bool {
	return params.Street != "" && params.City != "" && params.State != "" && params.ZipCode != ""
}
