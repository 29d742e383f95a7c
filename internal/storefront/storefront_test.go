package storefront

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lixing-Zhang/aami-bangali/internal/catalog"
	"github.com/Lixing-Zhang/aami-bangali/internal/models"
)

func newStorefront(t *testing.T) (*Storefront, *catalog.Menu) {
	t.Helper()
	menu, err := catalog.Default()
	require.NoError(t, err)
	return New(menu), menu
}

func item(t *testing.T, menu *catalog.Menu, id string) models.MenuItem {
	t.Helper()
	it, ok := menu.Item(id)
	require.True(t, ok, "item %s", id)
	return it
}

func TestNew_InitialState(t *testing.T) {
	sf, _ := newStorefront(t)

	v := sf.View()
	assert.Equal(t, PanelClosed, v.Panel)
	assert.False(t, v.Open())
	assert.True(t, v.Empty())
	assert.Equal(t, "thalis", v.Active.ID)
	assert.Len(t, v.Categories, 5)
}

func TestActivate_OpensPanel(t *testing.T) {
	sf, menu := newStorefront(t)

	sf.Activate(item(t, menu, "t1"))
	v := sf.View()
	assert.Equal(t, PanelOpen, v.Panel)
	assert.Equal(t, 1, v.Count)

	sf.ClosePanel()
	v = sf.View()
	assert.Equal(t, PanelClosed, v.Panel)
	assert.Equal(t, 1, v.Count, "closing the panel keeps the cart")

	sf.ClosePanel()
	assert.Equal(t, PanelClosed, sf.View().Panel)
}

func TestPanel_OpenCloseWithEmptyCart(t *testing.T) {
	sf, _ := newStorefront(t)

	sf.OpenPanel()
	assert.True(t, sf.View().Open())

	sf.ClosePanel()
	assert.False(t, sf.View().Open())
}

func TestScenario_TotalsAcrossCategories(t *testing.T) {
	sf, menu := newStorefront(t)

	sf.Activate(item(t, menu, "t1"))
	sf.Activate(item(t, menu, "t2"))
	sf.Activate(item(t, menu, "t2"))

	v := sf.View()
	require.Len(t, v.Lines, 2)
	assert.Equal(t, 3, v.Count)
	assert.Equal(t, int64(1019), v.Total)
}

func TestScenario_AdjustToEmpty(t *testing.T) {
	sf, menu := newStorefront(t)

	sf.Activate(item(t, menu, "d1"))
	sf.Adjust("d1", -1)

	v := sf.View()
	assert.True(t, v.Empty())
	assert.Equal(t, int64(0), v.Total)
	assert.Equal(t, PanelOpen, v.Panel, "adjusting does not close the panel")
}

func TestSelectCategory_DoesNotTouchCart(t *testing.T) {
	sf, menu := newStorefront(t)
	sf.Activate(item(t, menu, "s2"))
	sf.Activate(item(t, menu, "r1"))
	before := sf.View()

	for _, id := range []string{"desserts", "rice", "seafood", "thalis"} {
		sf.SelectCategory(id)
		v := sf.View()
		assert.Equal(t, id, v.Active.ID)
		assert.Equal(t, before.Lines, v.Lines)
		assert.Equal(t, before.Count, v.Count)
		assert.Equal(t, before.Total, v.Total)
		assert.Equal(t, before.Panel, v.Panel)
	}
}

func TestSelectCategory_UnknownFallsBackToFirst(t *testing.T) {
	sf, _ := newStorefront(t)

	sf.SelectCategory("desserts")
	sf.SelectCategory("brunch")

	assert.Equal(t, "thalis", sf.View().Active.ID)
}

func TestClear_KeepsPanel(t *testing.T) {
	sf, menu := newStorefront(t)
	sf.Activate(item(t, menu, "c1"))

	sf.Clear()

	v := sf.View()
	assert.True(t, v.Empty())
	assert.True(t, v.Open())
}

func TestDo_IsAtomic(t *testing.T) {
	sf, menu := newStorefront(t)
	sf.Activate(item(t, menu, "t1"))

	var seen View
	err := sf.Do(func(tx *Tx) error {
		seen = tx.View()
		tx.Clear()
		tx.ClosePanel()
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, seen.Count)

	v := sf.View()
	assert.True(t, v.Empty())
	assert.False(t, v.Open())

	boom := errors.New("boom")
	assert.ErrorIs(t, sf.Do(func(*Tx) error { return boom }), boom)
}

func TestConcurrentActivate(t *testing.T) {
	sf, menu := newStorefront(t)
	it := item(t, menu, "d2")

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sf.Activate(it)
			_ = sf.View()
		}()
	}
	wg.Wait()

	v := sf.View()
	require.Len(t, v.Lines, 1)
	assert.Equal(t, 100, v.Count)
	assert.Equal(t, int64(4000), v.Total)
}
