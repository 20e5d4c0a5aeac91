package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func Test_buildFilter(t *testing.T) {
	t.Run("empty query", func(t *testing.T) {
		filter := buildFilter(&ListProductsQuery{})
		assert.Equal(t, bson.M{}, filter)
	})

	t.Run("id and category", func(t *testing.T) {
		id := primitive.NewObjectID()
		filter := buildFilter(&ListProductsQuery{
			FilterOpts: FilterOpts{
				ID:       id,
				Category: "indoor",
			},
		})

		assert.Equal(t, id, filter["_id"])
		assert.Equal(t, "indoor", filter["category"])
	})

	t.Run("search matches name or description", func(t *testing.T) {
		filter := buildFilter(&ListProductsQuery{
			FilterOpts: FilterOpts{Search: "monstera"},
		})

		or, ok := filter["$or"].(bson.A)
		assert.True(t, ok)
		assert.Len(t, or, 2)
	})

	t.Run("search is escaped", func(t *testing.T) {
		filter := buildFilter(&ListProductsQuery{
			FilterOpts: FilterOpts{Search: "a.c*"},
		})

		or := filter["$or"].(bson.A)
		search := or[0].(bson.M)["name"].(primitive.Regex)
		assert.Equal(t, `a\.c\*`, search.Pattern)
		assert.Equal(t, "i", search.Options)
	})

	t.Run("zero rating is not a filter", func(t *testing.T) {
		filter := buildFilter(&ListProductsQuery{})
		assert.NotContains(t, filter, "rating")
	})
}

func Test_sortField(t *testing.T) {
	assert.Equal(t, "created_at", sortField("createdAt"))
	assert.Equal(t, "price", sortField("price"))
	assert.Equal(t, "name", sortField("name"))
}
