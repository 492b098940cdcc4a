package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/fleetscope/fleetscope/pkg/domain/model"
	"github.com/fleetscope/fleetscope/pkg/domain/types"
)

const (
	// DefaultCount is the mock dataset size
	DefaultCount = 240

	// DefaultPassRatio is the fraction of generated records that pass
	DefaultPassRatio = 0.7

	// spreadDays is how far back lastSeen dates reach, covering the
	// longest trend window (6 months at 30 days each)
	spreadDays = 180
)

// Generator produces a deterministic mock dataset from the catalog values.
// It stands in for the external data source until a real fetch succeeds.
type Generator struct {
	catalog   *model.Catalog
	count     int
	passRatio float64
	seed      int64
	now       func() time.Time
}

// Option configures the Generator
type Option func(*Generator)

// WithCount sets the number of generated records
func WithCount(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.count = n
		}
	}
}

// WithPassRatio sets the fraction of passing records
func WithPassRatio(ratio float64) Option {
	return func(g *Generator) {
		if ratio >= 0 && ratio <= 1 {
			g.passRatio = ratio
		}
	}
}

// WithSeed fixes the random seed
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// WithClock overrides the time source (for tests)
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// New creates a new mock dataset generator
func New(catalog *model.Catalog, opts ...Option) *Generator {
	g := &Generator{
		catalog:   catalog,
		count:     DefaultCount,
		passRatio: DefaultPassRatio,
		seed:      1,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate produces the mock records. The same seed always yields the
// same dataset.
func (g *Generator) Generate() []*model.DeviceRecord {
	rng := rand.New(rand.NewSource(g.seed))
	today := model.DateOf(g.now())

	records := make([]*model.DeviceRecord, 0, g.count)
	for i := 0; i < g.count; i++ {
		status := types.StatusFail
		if rng.Float64() < g.passRatio {
			status = types.StatusPass
		}

		records = append(records, &model.DeviceRecord{
			ID:          types.DeviceID(i + 1),
			Name:        fmt.Sprintf("device-%04d", i+1),
			Region:      pick(rng, g.catalog.Regions),
			Country:     pick(rng, g.catalog.Countries),
			ProductType: pick(rng, g.catalog.ProductTypes),
			DeviceType:  pick(rng, g.catalog.DeviceTypes),
			Status:      status,
			LastSeen:    today.AddDays(-rng.Intn(spreadDays)),
		})
	}
	return records
}

func pick(rng *rand.Rand, values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[rng.Intn(len(values))]
}
