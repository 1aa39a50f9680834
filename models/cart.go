package models

import (
	"errors"
	"sync"
)

type CartState int

const (
	CartBuilding CartState = iota
	CartQuoted
	CartCommitted
)

func (s CartState) String() string {
	switch s {
	case CartBuilding:
		return "Building"
	case CartQuoted:
		return "Quoted"
	case CartCommitted:
		return "Committed"
	}
	return "Unknown"
}

// Cart is the in-progress order of one terminal. Any mutation drops a frozen quote.
type Cart struct {
	mu         sync.Mutex
	lines      []CartLine
	state      CartState
	quote      *PosQuote
	committing bool
	options    QuoteOptions
}

func NewCart(opts QuoteOptions) *Cart {
	return &Cart{options: opts}
}

func (c *Cart) State() CartState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}

func (c *Cart) Lines() []CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]CartLine(nil), c.lines...)
}

func (c *Cart) mutable() error {
	if c.state == CartCommitted || c.committing {
		return ErrCartCommitted
	}
	return nil
}

func (c *Cart) invalidate() {
	c.state = CartBuilding
	c.quote = nil
}

func (c *Cart) indexOf(menuItemID string) int {
	for i, l := range c.lines {
		if l.MenuItem.ID == menuItemID {
			return i
		}
	}
	return -1
}

// Add puts qty units of item in the cart, merging with an existing line for the same item.
func (c *Cart) Add(item MenuItem, qty int) error {
	if qty < 1 {
		return NewValidationError("quantity", errors.New("must be at least 1"))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.mutable(); err != nil {
		return err
	}
	if i := c.indexOf(item.ID); i >= 0 {
		c.lines[i].Quantity += qty
	} else {
		c.lines = append(c.lines, CartLine{MenuItem: SnapshotMenuItem(item), Quantity: qty})
	}
	c.invalidate()
	return nil
}

func (c *Cart) Remove(menuItemID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.mutable(); err != nil {
		return err
	}
	i := c.indexOf(menuItemID)
	if i < 0 {
		return ErrLineNotFound
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	c.invalidate()
	return nil
}

// Adjust changes a line quantity by delta. Reaching zero removes the line.
func (c *Cart) Adjust(menuItemID string, delta int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.mutable(); err != nil {
		return err
	}
	i := c.indexOf(menuItemID)
	if i < 0 {
		return ErrLineNotFound
	}
	c.lines[i].Quantity += delta
	if c.lines[i].Quantity <= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
	c.invalidate()
	return nil
}

func (c *Cart) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.mutable(); err != nil {
		return err
	}
	c.lines = nil
	c.invalidate()
	return nil
}

// Quote freezes a checkout computation and moves the cart to Quoted.
func (c *Cart) Quote(discountType DiscountType, orderType OrderType) (PosQuote, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.mutable(); err != nil {
		return PosQuote{}, err
	}
	q := QuoteCartWithOptions(c.lines, discountType, orderType, c.options)
	c.quote = &q
	c.state = CartQuoted
	return q, nil
}

func (c *Cart) CurrentQuote() (PosQuote, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.quote == nil {
		return PosQuote{}, false
	}
	return *c.quote, true
}

// BeginCommit hands out the frozen lines and quote and blocks mutation until
// FinishCommit or AbortCommit is called.
func (c *Cart) BeginCommit() ([]CartLine, PosQuote, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.mutable(); err != nil {
		return nil, PosQuote{}, err
	}
	if c.state != CartQuoted || c.quote == nil {
		return nil, PosQuote{}, NewValidationError("cart", ErrCartNotQuoted)
	}
	if len(c.lines) == 0 {
		return nil, PosQuote{}, NewValidationError("cart", ErrCartEmpty)
	}
	c.committing = true
	return append([]CartLine(nil), c.lines...), *c.quote, nil
}

// AbortCommit leaves the cart Quoted.
func (c *Cart) AbortCommit() {
	c.mu.Lock()
	c.committing = false
	c.mu.Unlock()
}

func (c *Cart) FinishCommit() {
	c.mu.Lock()
	c.committing = false
	c.state = CartCommitted
	c.mu.Unlock()
}
