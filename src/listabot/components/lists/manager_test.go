package lists

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, channels ...string) (*Manager, *fakeMessenger) {
	t.Helper()
	fm := newFakeMessenger(channels...)
	return NewManager(newTestDB(t), fm), fm
}

func TestAddItemNewThenSum(t *testing.T) {
	m, _ := newTestManager(t, "c1")
	c := testCoord()
	require.NoError(t, m.Store().EnsureList(c))

	res, err := m.AddItem(c, "Arroz", 3)
	require.NoError(t, err)
	assert.Equal(t, AddResult{ItemID: 1, Qty: 3, Created: true}, res)

	res, err = m.AddItem(c, "Arroz", 2)
	require.NoError(t, err)
	assert.Equal(t, AddResult{ItemID: 1, Qty: 5}, res)

	items, err := m.Store().Items(c)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(5), items[0].Qty)
}

func TestAddItemUnknownList(t *testing.T) {
	m, fm := newTestManager(t, "c1")

	_, err := m.AddItem(testCoord(), "Arroz", 3)
	assert.ErrorIs(t, err, ErrListNotFound)
	assert.Zero(t, fm.sends)
}

func TestAddItemRejectsNonPositive(t *testing.T) {
	m, _ := newTestManager(t, "c1")
	c := testCoord()
	require.NoError(t, m.Store().EnsureList(c))

	_, err := m.AddItem(c, "Arroz", 0)
	assert.ErrorIs(t, err, ErrQuantityNotPositive)
	_, err = m.AddItem(c, "Arroz", -2)
	assert.ErrorIs(t, err, ErrQuantityNotPositive)

	items, err := m.Store().Items(c)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRemoveItemPartialThenFull(t *testing.T) {
	m, _ := newTestManager(t, "c1")
	c := testCoord()
	require.NoError(t, m.Store().EnsureList(c))
	_, err := m.AddItem(c, "Arroz", 5)
	require.NoError(t, err)

	res, err := m.RemoveItem(c, "Arroz", 2)
	require.NoError(t, err)
	assert.Equal(t, RemoveResult{ItemID: 1, Remaining: 3}, res)

	// removing at least the stored amount deletes the row
	res, err = m.RemoveItem(c, "Arroz", 5)
	require.NoError(t, err)
	assert.Equal(t, RemoveResult{ItemID: 1, Deleted: true}, res)

	items, err := m.Store().Items(c)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRemoveItemUnknown(t *testing.T) {
	m, _ := newTestManager(t, "c1")
	c := testCoord()
	require.NoError(t, m.Store().EnsureList(c))

	_, err := m.RemoveItem(c, "Arroz", 1)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestItemIDsNeverReused(t *testing.T) {
	m, _ := newTestManager(t, "c1")
	c := testCoord()
	require.NoError(t, m.Store().EnsureList(c))

	first, err := m.AddItem(c, "Arroz", 1)
	require.NoError(t, err)
	second, err := m.AddItem(c, "Feijão", 1)
	require.NoError(t, err)
	require.Equal(t, uint32(2), second.ItemID)

	_, err = m.RemoveItem(c, "Feijão", 1)
	require.NoError(t, err)

	again, err := m.AddItem(c, "Feijão", 1)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), again.ItemID)
	assert.Equal(t, uint32(1), first.ItemID)
}

func TestCreateListPublishesOnce(t *testing.T) {
	m, fm := newTestManager(t, "c1")
	c := testCoord()

	created, err := m.CreateList(c)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 1, fm.sends)

	created, err = m.CreateList(c)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 1, fm.sends)
}

func TestCreateListRepublishesAfterMessageLoss(t *testing.T) {
	m, fm := newTestManager(t, "c1")
	c := testCoord()

	_, err := m.CreateList(c)
	require.NoError(t, err)
	list, err := m.Store().List(c)
	require.NoError(t, err)
	require.NoError(t, fm.ChannelMessageDelete(c.ChannelID, list.MessageID))

	created, err := m.CreateList(c)
	require.NoError(t, err)
	assert.True(t, created)

	refreshed, err := m.Store().List(c)
	require.NoError(t, err)
	assert.NotEqual(t, list.MessageID, refreshed.MessageID)
	// the counter survives a republish
	assert.Equal(t, list.IDCounter, refreshed.IDCounter)
}

func TestRemoveList(t *testing.T) {
	m, fm := newTestManager(t, "c1")
	c := testCoord()
	_, err := m.CreateList(c)
	require.NoError(t, err)
	_, err = m.AddItem(c, "Arroz", 3)
	require.NoError(t, err)

	require.NoError(t, m.RemoveList(c))

	_, err = m.Store().List(c)
	assert.ErrorIs(t, err, ErrListNotFound)
	items, err := m.Store().Items(c)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, 1, fm.deletes)
	require.Len(t, fm.plains, 1)
	assert.Contains(t, fm.plains[0], "**compras**")
}

func TestRemoveListUnknown(t *testing.T) {
	m, fm := newTestManager(t, "c1")

	err := m.RemoveList(testCoord())
	assert.ErrorIs(t, err, ErrListNotFound)
	assert.Empty(t, fm.plains)
}

func TestSweepGuild(t *testing.T) {
	m, fm := newTestManager(t, "c1")
	store := m.Store()
	alive := testCoord()
	dead := Coord{GuildID: "g1", ChannelID: "gone", Name: "compras"}
	require.NoError(t, store.EnsureList(alive))
	require.NoError(t, store.EnsureList(dead))
	require.NoError(t, store.AddListChannel("g1", "c1"))
	require.NoError(t, store.AddListChannel("g1", "gone"))

	total, err := m.SweepGuild("g1")
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, 1, fm.sends)

	// the dead channel lost both its list rows and its authorization
	_, err = store.List(dead)
	assert.ErrorIs(t, err, ErrListNotFound)
	channels, err := store.ListChannels("g1")
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, channels)
}

// Walks the full life of a shopping list the way a guild would drive it.
func TestShoppingListLifecycle(t *testing.T) {
	m, fm := newTestManager(t, "c1")
	c := testCoord()

	created, err := m.CreateList(c)
	require.NoError(t, err)
	require.True(t, created)
	assert.Equal(t, EmptyListText, fm.lastEmbed.Description)

	res, err := m.AddItem(c, "Arroz", 3)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), res.ItemID)
	assert.Equal(t, "`[1]` Arroz — 3", fm.lastEmbed.Description)

	res, err = m.AddItem(c, "Arroz", 2)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), res.ItemID)
	assert.Equal(t, int64(5), res.Qty)
	assert.Equal(t, "`[1]` Arroz — 5", fm.lastEmbed.Description)

	rem, err := m.RemoveItem(c, "Arroz", 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), rem.Remaining)
	assert.Equal(t, "`[1]` Arroz — 3", fm.lastEmbed.Description)

	rem, err = m.RemoveItem(c, "Arroz", 5)
	require.NoError(t, err)
	assert.True(t, rem.Deleted)
	assert.Equal(t, EmptyListText, fm.lastEmbed.Description)

	// one message the whole way through
	assert.Equal(t, 1, fm.sends)
	assert.Equal(t, fmt.Sprintf("Lista: %s", c.Name), fm.lastEmbed.Title)
}
