package model

import (
	"fmt"
	"strings"
)

// Topic identifies one of the Google News topic feeds
type Topic string

// Supported Google News topics
const (
	TopicTop           Topic = "top"
	TopicWorld         Topic = "world"
	TopicBusiness      Topic = "business"
	TopicTechnology    Topic = "technology"
	TopicEntertainment Topic = "entertainment"
	TopicSports        Topic = "sports"
	TopicScience       Topic = "science"
	TopicHealth        Topic = "health"
)

// topicSections maps topics to Google News headline section names.
// Top stories use the root feed and have no section.
var topicSections = map[Topic]string{
	TopicTop:           "",
	TopicWorld:         "WORLD",
	TopicBusiness:      "BUSINESS",
	TopicTechnology:    "TECHNOLOGY",
	TopicEntertainment: "ENTERTAINMENT",
	TopicSports:        "SPORTS",
	TopicScience:       "SCIENCE",
	TopicHealth:        "HEALTH",
}

// Topics returns the supported topics in stable order
func Topics() []Topic {
	return []Topic{
		TopicTop,
		TopicWorld,
		TopicBusiness,
		TopicTechnology,
		TopicEntertainment,
		TopicSports,
		TopicScience,
		TopicHealth,
	}
}

// TopicNames returns the supported topics as strings, in stable order
func TopicNames() []string {
	topics := Topics()
	names := make([]string, len(topics))
	for i, t := range topics {
		names[i] = string(t)
	}
	return names
}

// ParseTopic converts a string to a Topic, rejecting unsupported values
func ParseTopic(s string) (Topic, error) {
	topic := Topic(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := topicSections[topic]; !ok {
		return "", NewNewsError(ErrorKindInvalidTopic,
			fmt.Sprintf("Unsupported topic %q; supported topics: %s", s, strings.Join(TopicNames(), ", "))).
			WithOperation("parse_topic").
			WithComponent("model")
	}
	return topic, nil
}

// Section returns the Google News headline section name, empty for top stories
func (t Topic) Section() string {
	return topicSections[t]
}

// String returns the string representation of a Topic
func (t Topic) String() string {
	return string(t)
}
