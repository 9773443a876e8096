// Package mockdata generates the demo order dataset the dashboard is seeded
// with. The same seed and reference time always produce the same orders.
package mockdata

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	DefaultCount = 1000
	maxItems     = 5
	maxQuantity  = 3
	maxDaysAgo   = 90
)

type product struct {
	name  string
	price kernel.Cents
}

var catalog = []product{
	{"Wireless Headphones", 8999},
	{"USB-C Cable", 1250},
	{"Phone Case", 2499},
	{"Laptop Stand", 4500},
	{"Wireless Mouse", 2999},
	{"Mechanical Keyboard", 12999},
	{"Monitor", 29999},
	{"Webcam", 7999},
	{"Desk Lamp", 3999},
	{"External SSD", 14999},
	{"Power Bank", 4999},
	{"Gaming Chair", 39999},
	{"Microphone", 9999},
	{"USB Hub", 3499},
	{"Cable Organizer", 1599},
}

var (
	firstNames = []string{"John", "Jane", "Michael", "Sarah", "David", "Emily", "Robert", "Lisa", "James", "Maria"}
	lastNames  = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez"}
	domains    = []string{"example.com", "email.com", "test.com", "demo.com", "sample.com"}
	finals     = []order.Status{order.Pending, order.Processing, order.Shipped, order.Delivered, order.Cancelled}
)

// itemNamespace scopes the name-based UUIDs given to generated items.
var itemNamespace = uuid.MustParse("6f1c1a52-3a8e-4d7f-9a43-0d2b6f3f9a10")

// Generator builds mock orders that only ever change status through the
// status machine, so every generated history is a legal walk.
type Generator struct {
	machine *order.StatusMachine
	seed    uint64
	now     time.Time
}

// NewGenerator returns a generator. Orders are dated up to 90 days before now.
func NewGenerator(machine *order.StatusMachine, seed uint64, now time.Time) (*Generator, error) {
	if machine == nil {
		return nil, errs.NewValueIsRequiredError("machine")
	}
	return &Generator{machine: machine, seed: seed, now: now.UTC()}, nil
}

// Generate returns n orders with ids ORD-0001 to ORD-n.
func (g *Generator) Generate(n int) ([]*order.Order, error) {
	if n < 0 {
		return nil, errs.NewValueIsOutOfRangeError("count", n, 0, "unbounded")
	}

	rng := rand.New(rand.NewPCG(g.seed, g.seed^0x9e3779b97f4a7c15))
	orders := make([]*order.Order, 0, n)
	for i := 1; i <= n; i++ {
		o, err := g.generateOrder(rng, i)
		if err != nil {
			return nil, fmt.Errorf("generate order %d: %w", i, err)
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (g *Generator) generateOrder(rng *rand.Rand, n int) (*order.Order, error) {
	id := fmt.Sprintf("ORD-%04d", n)

	first := pick(rng, firstNames)
	last := pick(rng, lastNames)
	customer, err := order.NewCustomer(
		fmt.Sprintf("CUST-%04d", n),
		first+" "+last,
		fmt.Sprintf("%s.%s@%s", strings.ToLower(first), strings.ToLower(last), pick(rng, domains)),
	)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, maxItems)
	for i := range rng.IntN(maxItems) + 1 {
		p := pick(rng, catalog)
		itemID := uuid.NewSHA1(itemNamespace, fmt.Appendf(nil, "%s/%d", id, i)).String()
		item, itemErr := order.NewItem(itemID, p.name, rng.IntN(maxQuantity)+1, p.price)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	placedAt := g.now.AddDate(0, 0, -rng.IntN(maxDaysAgo))
	o, err := order.NewOrder(id, customer, placedAt, items, placedAt)
	if err != nil {
		return nil, err
	}

	for step, next := range g.walk(rng, pick(rng, finals)) {
		at := placedAt.Add(time.Duration(step+1) * 24 * time.Hour)
		if at.After(g.now) {
			at = g.now
		}
		actor := fmt.Sprintf("User %d", rng.IntN(10)+1)
		if err := o.ChangeStatus(g.machine, next, actor, "", at); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// walk returns the statuses after pending that lead to final. A cancelled
// order is cancelled after zero to two happy-path steps.
func (g *Generator) walk(rng *rand.Rand, final order.Status) []order.Status {
	if final == order.Cancelled {
		path := g.machine.StatusPath(order.Pending)
		for range rng.IntN(3) {
			next, _ := g.machine.NextStatus(path[len(path)-1])
			path = append(path, next)
		}
		return append(path[1:], order.Cancelled)
	}
	return g.machine.StatusPath(final)[1:]
}

func pick[T any](rng *rand.Rand, from []T) T {
	return from[rng.IntN(len(from))]
}
