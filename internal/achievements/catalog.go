// ABOUTME: Achievement definitions and the immutable catalog built from them.
// ABOUTME: Categories keep definitions in ascending difficulty.
package achievements

import (
	"fmt"

	"github.com/harperreed/crumb/internal/models"
)

// Definition is one achievement.
type Definition struct {
	ID           string `json:"id"`
	Category     string `json:"category"`
	CategoryIcon string `json:"category_icon"`
	Title        string `json:"title"`
	Icon         string `json:"icon"`
	Condition    string `json:"condition"`
	RewardXP     int64  `json:"reward_xp"`
	Rule         Rule   `json:"-"`
}

// Progress evaluates the definition's rule against s.
func (d Definition) Progress(s *models.UserStats) (current, target int) {
	return d.Rule.Progress(s)
}

// Qualifies reports whether s meets the unlock condition.
func (d Definition) Qualifies(s *models.UserStats) bool {
	current, target := d.Progress(s)
	return current >= target
}

// Category groups definitions of one theme.
type Category struct {
	Name        string       `json:"name"`
	Icon        string       `json:"icon"`
	Definitions []Definition `json:"achievements"`
}

// Catalog is an ordered, read-only set of definitions.
type Catalog struct {
	defs       []Definition
	index      map[string]int
	categories []Category
}

// New builds a catalog from defs, rejecting duplicate ids, negative rewards,
// and rules that could never be evaluated.
func New(defs []Definition) (*Catalog, error) {
	c := &Catalog{
		defs:  make([]Definition, 0, len(defs)),
		index: make(map[string]int, len(defs)),
	}
	catIndex := make(map[string]int)

	for _, d := range defs {
		if d.ID == "" {
			return nil, fmt.Errorf("achievement with empty id in category %q", d.Category)
		}
		if _, dup := c.index[d.ID]; dup {
			return nil, fmt.Errorf("duplicate achievement id: %s", d.ID)
		}
		if d.RewardXP < 0 {
			return nil, fmt.Errorf("achievement %s: negative reward", d.ID)
		}
		switch d.Rule.Kind {
		case RuleThreshold:
			if d.Rule.Target <= 0 {
				return nil, fmt.Errorf("achievement %s: target must be positive", d.ID)
			}
		case RuleAllOf:
			if len(d.Rule.Conditions) == 0 {
				return nil, fmt.Errorf("achievement %s: all-of rule without conditions", d.ID)
			}
		default:
			return nil, fmt.Errorf("achievement %s: unknown rule kind %d", d.ID, d.Rule.Kind)
		}

		d = d.clone()
		c.index[d.ID] = len(c.defs)
		c.defs = append(c.defs, d)

		i, ok := catIndex[d.Category]
		if !ok {
			i = len(c.categories)
			catIndex[d.Category] = i
			c.categories = append(c.categories, Category{Name: d.Category, Icon: d.CategoryIcon})
		}
		c.categories[i].Definitions = append(c.categories[i].Definitions, d)
	}

	return c, nil
}

// clone copies d so its rule conditions are not shared with the caller.
func (d Definition) clone() Definition {
	if d.Rule.Conditions != nil {
		d.Rule.Conditions = append([]Condition(nil), d.Rule.Conditions...)
	}
	return d
}

func cloneAll(defs []Definition) []Definition {
	out := make([]Definition, len(defs))
	for i, d := range defs {
		out[i] = d.clone()
	}
	return out
}

// Len returns the number of definitions.
func (c *Catalog) Len() int {
	return len(c.defs)
}

// Definitions returns all definitions in catalog order.
func (c *Catalog) Definitions() []Definition {
	return cloneAll(c.defs)
}

// Lookup finds a definition by id.
func (c *Catalog) Lookup(id string) (Definition, bool) {
	i, ok := c.index[id]
	if !ok {
		return Definition{}, false
	}
	return c.defs[i].clone(), true
}

// ByCategory groups the catalog by category in first-seen order. Within a
// category index 0 is the easiest milestone and the last is the hardest.
func (c *Catalog) ByCategory() []Category {
	out := make([]Category, len(c.categories))
	for i, cat := range c.categories {
		out[i] = Category{
			Name:        cat.Name,
			Icon:        cat.Icon,
			Definitions: cloneAll(cat.Definitions),
		}
	}
	return out
}
