package catalog

import (
	"testing"

	"github.com/bazaar-dev/bazaar/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v uint) *uint { return &v }

func category(id uint, name string, parent *uint) models.Category {
	c := models.Category{Name: name, Slug: name, ParentID: parent, IsActive: true}
	c.ID = id
	return c
}

func TestBuildTree(t *testing.T) {
	tree := BuildTree([]models.Category{
		category(1, "shoes", nil),
		category(2, "boots", ptr(1)),
		category(3, "apparel", nil),
		category(4, "sandals", ptr(1)),
		category(5, "orphan", ptr(99)),
	})

	require.Len(t, tree, 3)
	assert.Equal(t, "apparel", tree[0].Name)
	assert.Equal(t, "orphan", tree[1].Name)
	assert.Equal(t, "shoes", tree[2].Name)

	require.Len(t, tree[2].Children, 2)
	assert.Equal(t, "boots", tree[2].Children[0].Name)
	assert.Equal(t, "sandals", tree[2].Children[1].Name)
	assert.Empty(t, tree[0].Children)
}

func TestWouldCycle(t *testing.T) {
	// 1 <- 2 <- 3, 4 standalone
	parents := map[uint]*uint{1: nil, 2: ptr(1), 3: ptr(2), 4: nil}

	assert.True(t, WouldCycle(parents, 1, 1), "self parent")
	assert.True(t, WouldCycle(parents, 1, 3), "under own grandchild")
	assert.True(t, WouldCycle(parents, 2, 3), "under own child")
	assert.False(t, WouldCycle(parents, 3, 4))
	assert.False(t, WouldCycle(parents, 4, 3))
	assert.False(t, WouldCycle(parents, 3, 1))
}

func TestWouldCycleStopsOnCorruptData(t *testing.T) {
	parents := map[uint]*uint{1: ptr(2), 2: ptr(1), 3: nil}
	assert.True(t, WouldCycle(parents, 3, 1))
}
