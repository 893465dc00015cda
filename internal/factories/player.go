package factories

import (
	"fmt"

	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"
)

var fake = faker.New()

// PlayerName makes up a name for a player who did not give one.
func PlayerName() string {
	return fmt.Sprintf("%s%d", fake.Person().FirstName(), fake.IntBetween(1, 99))
}

// SessionID identifies one game in the event stream.
func SessionID() string {
	return cuid.New()
}
