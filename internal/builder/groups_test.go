package builder

import (
	"testing"

	"catering/internal/catalog"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		dish catalog.Dish
		want Group
	}{
		{"chicken only", dish("1", catalog.TagChicken), GroupChicken},
		{"pork only", dish("2", catalog.TagPork), GroupPork},
		{"beef only", dish("3", catalog.TagBeef), GroupBeef},
		{"two meats", dish("4", catalog.TagPork, catalog.TagBeef), GroupMixed},
		{"fish with chicken", dish("5", catalog.TagFish, catalog.TagChicken), GroupChicken},
		{"fish", dish("6", catalog.TagFish), GroupFish},
		{"fasting fish", catalog.Dish{ID: "7", Tags: []string{catalog.TagFish}, IsFasting: true}, GroupFish},
		{"fasting", catalog.Dish{ID: "8", IsFasting: true}, GroupFasting},
		{"untagged", dish("9", catalog.TagVegetarian), GroupOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.dish))
		})
	}
}

func TestPartition_OrderAndExclusivity(t *testing.T) {
	dishes := []catalog.Dish{
		dish("f1", catalog.TagFish),
		dish("p1", catalog.TagPork),
		dish("c1", catalog.TagChicken),
		dish("p2", catalog.TagPork),
		{ID: "v1", IsFasting: true},
		dish("m1", catalog.TagChicken, catalog.TagPork),
	}

	groups := Partition(dishes)

	names := []Group{}
	seen := map[string]int{}
	for _, g := range groups {
		names = append(names, g.Group)
		for _, d := range g.Dishes {
			seen[d.ID]++
		}
	}
	assert.Equal(t, []Group{GroupChicken, GroupPork, GroupMixed, GroupFish, GroupFasting}, names)
	assert.Len(t, seen, len(dishes))
	for id, n := range seen {
		assert.Equal(t, 1, n, id)
	}
	assert.Equal(t, "p1", groups[1].Dishes[0].ID)
	assert.Equal(t, "p2", groups[1].Dishes[1].ID)
}

func TestPartition_Empty(t *testing.T) {
	assert.Empty(t, Partition(nil))
}
