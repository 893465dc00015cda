package factories

import (
	"math/rand"

	"github.com/chrisdamba/lunchrush/internal/models"
	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"
)

// CustomerFactory builds arriving parties. Party size is decided by the
// caller; the factory only gives the party an identity.
type CustomerFactory struct {
	fake  faker.Faker
	newID func() string
}

func NewCustomerFactory(seed int64) *CustomerFactory {
	return &CustomerFactory{
		fake:  faker.NewWithSeed(rand.NewSource(seed)),
		newID: cuid.New,
	}
}

func (cf *CustomerFactory) CreateCustomer(partySize int) *models.Customer {
	return models.NewCustomer(cf.newID(), cf.fake.Person().FirstName(), partySize, models.DefaultPatience)
}
