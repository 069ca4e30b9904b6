package domain

import (
	"strconv"
	"strings"
)

const (
	SystemEntity = "system"

	TopicSystemConnected = SystemEntity + ".connected"
	TopicSystemPong      = SystemEntity + ".pong"
	TopicSystemError     = SystemEntity + ".error"

	ActionConnected = "connected"
	ActionPong      = "pong"
	ActionError     = "error"

	userTopicPrefix  = "orders."
	standTopicPrefix = "stands."
)

// UserTopic carries the order updates of one student.
func UserTopic(userID string) string {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ""
	}
	return userTopicPrefix + userID
}

// StandTopic carries the order updates of one stand.
func StandTopic(standID int) string {
	if standID <= 0 {
		return ""
	}
	return standTopicPrefix + strconv.Itoa(standID)
}

// CustomTopic returns the canonical topic for the given entity and action.
func CustomTopic(entity, action string) string {
	cleanEntity := strings.TrimSpace(entity)
	cleanAction := strings.TrimSpace(action)
	if cleanEntity == "" || cleanAction == "" {
		return ""
	}
	return cleanEntity + "." + cleanAction
}

// ConnectionTopics lists the topics a connection may listen on.
func ConnectionTopics(userID string, standID int) []string {
	topics := make([]string, 0, 2)
	for _, topic := range []string{UserTopic(userID), StandTopic(standID)} {
		if topic != "" {
			topics = append(topics, topic)
		}
	}
	return topics
}
