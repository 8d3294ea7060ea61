package entity

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gofrs/uuid/v5"
)

const (
	CustomerNameMaxLen = 255
	EmailMaxLen        = 254
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type Customer struct {
	ID        uuid.UUID
	Name      string
	Email     string
	CreatedAt time.Time
}

type CustomerFilter struct {
	Search *string
	Page   uint64
	Limit  uint64
}

// NewCustomer builds a customer ready to be stored. Uniqueness of the email
// is checked by the store.
func NewCustomer(name, email string, now time.Time) (Customer, error) {
	c := Customer{
		ID:        uuid.Must(uuid.NewV4()),
		Name:      strings.TrimSpace(name),
		Email:     strings.TrimSpace(email),
		CreatedAt: now,
	}

	err := c.Validate()
	if err != nil {
		return Customer{}, err
	}

	return c, nil
}

func (c Customer) Validate() error {
	verr := &ValidationError{}

	switch {
	case c.Name == "":
		verr.Add("name", "This field may not be blank.")
	case utf8.RuneCountInString(c.Name) > CustomerNameMaxLen:
		verr.Add("name", "Ensure this field has no more than 255 characters.")
	}

	switch {
	case c.Email == "":
		verr.Add("email", "This field may not be blank.")
	case len(c.Email) > EmailMaxLen:
		verr.Add("email", "Ensure this field has no more than 254 characters.")
	case !emailRegexp.MatchString(c.Email):
		verr.Add("email", "Enter a valid email address.")
	}

	return verr.Err()
}
