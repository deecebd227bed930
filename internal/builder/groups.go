package builder

import "catering/internal/catalog"

// Group is a meat/diet bucket used to lay out a menu's dishes.
type Group string

const (
	GroupChicken Group = "chicken"
	GroupPork    Group = "pork"
	GroupBeef    Group = "beef"
	GroupMixed   Group = "mixed"
	GroupFish    Group = "fish"
	GroupFasting Group = "fasting"
	GroupOther   Group = "other"
)

// GroupAll is the filter value that shows every group.
const GroupAll Group = ""

type dishTraits struct {
	chicken, pork, beef, fish, fasting bool
	meats                              int
}

func traitsOf(d catalog.Dish) dishTraits {
	t := dishTraits{
		chicken: d.HasTag(catalog.TagChicken),
		pork:    d.HasTag(catalog.TagPork),
		beef:    d.HasTag(catalog.TagBeef),
		fish:    d.HasTag(catalog.TagFish),
		fasting: d.IsFasting,
	}
	for _, m := range []bool{t.chicken, t.pork, t.beef} {
		if m {
			t.meats++
		}
	}
	return t
}

// partitionRules is evaluated top to bottom; a dish lands in the first group
// whose rule it satisfies. Order is the precedence:
//
//	chicken-only, pork-only, beef-only, mixed (two or more of those meats),
//	fish (whatever else it carries), fasting, other.
var partitionRules = []struct {
	group Group
	match func(dishTraits) bool
}{
	{GroupChicken, func(t dishTraits) bool { return t.chicken && t.meats == 1 }},
	{GroupPork, func(t dishTraits) bool { return t.pork && t.meats == 1 }},
	{GroupBeef, func(t dishTraits) bool { return t.beef && t.meats == 1 }},
	{GroupMixed, func(t dishTraits) bool { return t.meats >= 2 }},
	{GroupFish, func(t dishTraits) bool { return t.fish }},
	{GroupFasting, func(t dishTraits) bool { return t.fasting }},
	{GroupOther, func(dishTraits) bool { return true }},
}

// Classify returns the single group a dish belongs to.
func Classify(d catalog.Dish) Group {
	t := traitsOf(d)
	for _, r := range partitionRules {
		if r.match(t) {
			return r.group
		}
	}
	return GroupOther
}

type DishGroup struct {
	Group  Group          `json:"group"`
	Dishes []catalog.Dish `json:"dishes"`
}

// Partition splits dishes into mutually exclusive groups in precedence
// order, keeping the input order inside each group. Empty groups are omitted.
func Partition(dishes []catalog.Dish) []DishGroup {
	buckets := make(map[Group][]catalog.Dish, len(partitionRules))
	for _, d := range dishes {
		g := Classify(d)
		buckets[g] = append(buckets[g], d)
	}

	out := []DishGroup{}
	for _, r := range partitionRules {
		if ds := buckets[r.group]; len(ds) > 0 {
			out = append(out, DishGroup{Group: r.group, Dishes: ds})
		}
	}
	return out
}
