package testutils

import (
	"fmt"
	"time"

	registrationdb "github.com/Black-And-White-Club/gala-night/app/modules/registration/infrastructure/repositories"
	"github.com/brianvoe/gofakeit/v7"
)

// TestDataGenerator provides methods to create test data for integration tests
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewTestDataGenerator creates a new test data generator with optional seed
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}
	return &TestDataGenerator{faker: gofakeit.New(uint64(s)), seed: s}
}

// Seed returns the seed, for reproducing a failing run.
func (g *TestDataGenerator) Seed() int64 {
	return g.seed
}

// GenerateRegistrations creates guests with unique emails and a mix of paid and unpaid.
func (g *TestDataGenerator) GenerateRegistrations(count int) []*registrationdb.Registration {
	regs := make([]*registrationdb.Registration, count)
	for i := range regs {
		first, last := g.faker.FirstName(), g.faker.LastName()
		quote := g.faker.Quote()
		regs[i] = &registrationdb.Registration{
			Name:          first + " " + last,
			Email:         fmt.Sprintf("guest%d.%s@example.org", i, g.faker.LetterN(6)),
			Phone:         g.faker.Phone(),
			PaymentAmount: float64(g.faker.Number(1, 20) * 25),
			PaymentStatus: g.faker.Bool(),
			Quote:         &quote,
		}
	}
	return regs
}

// GenerateBidderNames returns count distinct bidder names.
func (g *TestDataGenerator) GenerateBidderNames(count int) []string {
	names := make([]string, count)
	for i := range names {
		names[i] = fmt.Sprintf("%s %s #%d", g.faker.FirstName(), g.faker.LastName(), i)
	}
	return names
}

// GenerateItemTitle returns a plausible auction lot title.
func (g *TestDataGenerator) GenerateItemTitle() string {
	return fmt.Sprintf("%s %s", g.faker.Adjective(), g.faker.ProductName())
}
