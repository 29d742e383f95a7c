// Package storefront owns the state behind one visitor's page: the cart, the
// active menu tab and whether the cart panel is showing.
//
// Views are handed out as read-only snapshots; the Storefront methods are the
// only way to change state. Every method takes the storefront lock, so
// mutations from concurrent requests of the same visitor never interleave and
// a snapshot always reflects the last completed mutation.
package storefront

import (
	"sync"

	"github.com/Lixing-Zhang/aami-bangali/internal/cart"
	"github.com/Lixing-Zhang/aami-bangali/internal/catalog"
	"github.com/Lixing-Zhang/aami-bangali/internal/models"
)

// Panel is the visibility state of the cart drawer.
type Panel string

const (
	PanelClosed Panel = "closed"
	PanelOpen   Panel = "open"
)

// Storefront is the single owner of a visitor's mutable state.
type Storefront struct {
	mu     sync.Mutex
	menu   *catalog.Menu
	cart   *cart.Cart
	active string
	panel  Panel
}

// New returns a storefront with an empty cart, the first category active and
// the panel closed.
func New(menu *catalog.Menu) *Storefront {
	return &Storefront{
		menu:   menu,
		cart:   cart.New(),
		active: menu.First().ID,
		panel:  PanelClosed,
	}
}

// SelectCategory makes id the active tab. The cart is not touched.
func (s *Storefront) SelectCategory(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = id
}

// Activate adds item to the cart and opens the panel.
func (s *Storefront) Activate(item models.MenuItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Add(item)
	s.panel = PanelOpen
}

// Adjust changes the quantity of an item already in the cart.
func (s *Storefront) Adjust(itemID string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Adjust(itemID, delta)
}

// Clear empties the cart. The panel stays as it is.
func (s *Storefront) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
}

// OpenPanel shows the cart drawer.
func (s *Storefront) OpenPanel() {
	s.setPanel(PanelOpen)
}

// ClosePanel dismisses the cart drawer regardless of cart contents.
func (s *Storefront) ClosePanel() {
	s.setPanel(PanelClosed)
}

func (s *Storefront) setPanel(p Panel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.panel = p
}

// Do runs fn with the storefront locked and passes it the current view.
// fn may call the unlocked mutators on tx; the lock is held throughout so
// a read-modify-write sequence, like checkout, is atomic.
func (s *Storefront) Do(fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&Tx{s: s})
}

// View returns a snapshot of the current state.
func (s *Storefront) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

func (s *Storefront) view() View {
	active, ok := s.menu.Category(s.active)
	if !ok {
		active = s.menu.First()
	}
	return View{
		Categories: s.menu.Categories(),
		Active:     active,
		Lines:      s.cart.Lines(),
		Count:      s.cart.Count(),
		Total:      s.cart.Total(),
		Panel:      s.panel,
	}
}

// Tx exposes the storefront to a function running under its lock.
type Tx struct {
	s *Storefront
}

// View returns the state as of this point in the transaction.
func (tx *Tx) View() View { return tx.s.view() }

// Clear empties the cart.
func (tx *Tx) Clear() { tx.s.cart.Clear() }

// ClosePanel dismisses the cart drawer.
func (tx *Tx) ClosePanel() { tx.s.panel = PanelClosed }

// View is a read-only snapshot handed to renderers and encoders.
type View struct {
	Categories []models.Category
	Active     models.Category
	Lines      []cart.Line
	Count      int
	Total      int64
	Panel      Panel
}

// Open reports whether the cart panel is showing.
func (v View) Open() bool { return v.Panel == PanelOpen }

// Empty reports whether the cart has no lines.
func (v View) Empty() bool { return len(v.Lines) == 0 }
