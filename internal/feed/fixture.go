package feed

import (
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/lazyfeed/internal/errors"
)

// Fixture is the on-disk format for seeding a feed.
//
//	items:
//	  - title: Hello
//	    body: First post
//	    author: ada
type Fixture struct {
	Items []Item `yaml:"items"`
}

// ParseFixture decodes a YAML fixture. Items with a blank title are rejected.
func ParseFixture(data []byte) ([]Item, error) {
	var fx Fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, errors.NewValidationError("invalid fixture").WithCause(err)
	}

	blank := lo.FilterMap(fx.Items, func(item Item, i int) (int, bool) {
		return i, strings.TrimSpace(item.Title) == ""
	})
	if len(blank) > 0 {
		return nil, errors.NewValidationError("fixture item has no title").
			WithField(fmt.Sprintf("items[%d].title", blank[0])).
			WithValue(fx.Items[blank[0]].Title)
	}

	return lo.Map(fx.Items, func(item Item, _ int) Item {
		item.Title = strings.TrimSpace(item.Title)
		return item
	}), nil
}

// LoadFixture reads and decodes the YAML fixture at path.
func LoadFixture(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read fixture %s", path)
	}
	return ParseFixture(data)
}
