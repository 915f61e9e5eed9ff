package reuters

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed routes.yml
var routesYML []byte

type topicCategory struct {
	DefaultTopic string `yaml:"default_topic"`
}

type routeTable struct {
	TopicCategories map[string]topicCategory `yaml:"topic_categories"`
	SophiCategories []string                 `yaml:"sophi_categories"`
}

var routes = mustLoadRoutes()

func mustLoadRoutes() routeTable {
	var table routeTable
	if err := yaml.Unmarshal(routesYML, &table); err != nil {
		panic(fmt.Sprintf("invalid routes.yml: %v", err))
	}
	return table
}

// sophiAllowed reports whether the category may request Sophi ranking.
func sophiAllowed(category string) bool {
	for _, c := range routes.SophiCategories {
		if c == category {
			return true
		}
	}
	return false
}

// SectionPath builds the normalized upstream lookup key for a
// category/topic pair. The trailing slash is part of the key; an empty
// topic collapses to "/category/".
func SectionPath(category, topic string) string {
	if topic == "" {
		return "/" + category + "/"
	}
	return "/" + category + "/" + topic + "/"
}
