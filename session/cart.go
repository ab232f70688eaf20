package session

// Cart tracks unconfirmed purchase intent for one session: product id to
// quantity, plus a cached item count kept in sync on every mutation. Each
// session is single-writer, so Cart itself carries no lock.
type Cart struct {
	items map[uint]int
	count int
}

func NewCart() *Cart {
	return &Cart{items: make(map[uint]int)}
}

// Add increments the quantity for a product by one. Callers validate the
// product exists before adding.
func (c *Cart) Add(productID uint) {
	c.items[productID]++
	c.recount()
}

// Remove drops the whole entry. Removing an absent product is a no-op.
func (c *Cart) Remove(productID uint) {
	delete(c.items, productID)
	c.recount()
}

// Items returns a copy so callers can iterate without aliasing cart state.
func (c *Cart) Items() map[uint]int {
	out := make(map[uint]int, len(c.items))
	for id, qty := range c.items {
		out[id] = qty
	}
	return out
}

func (c *Cart) Quantity(productID uint) int {
	return c.items[productID]
}

func (c *Cart) Len() int {
	return len(c.items)
}

// Count is the cached total item count across all lines.
func (c *Cart) Count() int {
	return c.count
}

func (c *Cart) Clear() {
	c.items = make(map[uint]int)
	c.count = 0
}

func (c *Cart) recount() {
	total := 0
	for _, qty := range c.items {
		total += qty
	}
	c.count = total
}
