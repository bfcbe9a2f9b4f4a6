package domain

import (
	"strings"
	"time"
)

// Customer представляет профиль клиента витрины.
type Customer struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	AvatarURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName возвращает отображаемое имя клиента.
func (c *Customer) FullName() string {
	full := strings.TrimSpace(c.FirstName + " " + c.LastName)
	if full == "" {
		return c.Email
	}
	return full
}

// ValidateInvariants проверяет базовые инварианты профиля.
func (c *Customer) ValidateInvariants() []error {
	var errs []error

	email := strings.TrimSpace(c.Email)
	if email == "" {
		errs = append(errs, ErrCustomerEmailRequired)
	} else if !strings.Contains(email[1:], "@") {
		errs = append(errs, ErrCustomerEmailInvalid)
	}

	return errs
}
