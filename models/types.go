package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// MemberRole is the role a user holds inside a community.
type MemberRole string

const (
	RoleMember    MemberRole = "member"
	RoleModerator MemberRole = "moderator"
	RoleAdmin     MemberRole = "admin"
)

func (r MemberRole) Valid() bool {
	switch r {
	case RoleMember, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// CanModerate reports whether the role may perform moderation actions
// (pinning messages, issuing community alerts). Admin and moderator are
// equally privileged for these.
func (r MemberRole) CanModerate() bool {
	return r == RoleAdmin || r == RoleModerator
}

// MemberStatus is the lifecycle state of a membership row.
type MemberStatus string

const (
	StatusActive   MemberStatus = "active"
	StatusInactive MemberStatus = "inactive"
	StatusBanned   MemberStatus = "banned"
)

func (s MemberStatus) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusBanned:
		return true
	}
	return false
}

// MessageType classifies community messages.
type MessageType string

const (
	MessageText         MessageType = "text"
	MessageEmergency    MessageType = "emergency"
	MessageAnnouncement MessageType = "announcement"
)

func (t MessageType) Valid() bool {
	switch t {
	case MessageText, MessageEmergency, MessageAnnouncement:
		return true
	}
	return false
}

// AlertType classifies the origin of an alert.
type AlertType string

const (
	AlertWeather    AlertType = "weather"
	AlertEmergency  AlertType = "emergency"
	AlertCommunity  AlertType = "community"
	AlertGovernment AlertType = "government"
)

func (t AlertType) Valid() bool {
	switch t {
	case AlertWeather, AlertEmergency, AlertCommunity, AlertGovernment:
		return true
	}
	return false
}

// AlertSeverity grades how urgent an alert is.
type AlertSeverity string

const (
	SeverityLow      AlertSeverity = "low"
	SeverityMedium   AlertSeverity = "medium"
	SeverityHigh     AlertSeverity = "high"
	SeverityCritical AlertSeverity = "critical"
)

func (s AlertSeverity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// StringSlice is a custom type for handling JSON arrays of strings in database
type StringSlice []string

// Value implements driver.Valuer interface for database storage
func (ss StringSlice) Value() (driver.Value, error) {
	if ss == nil {
		return nil, nil
	}
	return json.Marshal(ss)
}

// Scan implements sql.Scanner interface for database retrieval
func (ss *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*ss = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, ss)
	case string:
		return json.Unmarshal([]byte(v), ss)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// GormDataType returns the data type for GORM
func (StringSlice) GormDataType() string {
	return "json"
}

// MarshalJSON implements json.Marshaler interface
func (ss StringSlice) MarshalJSON() ([]byte, error) {
	if ss == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(ss))
}

// UnmarshalJSON implements json.Unmarshaler interface
func (ss *StringSlice) UnmarshalJSON(data []byte) error {
	var slice []string
	if err := json.Unmarshal(data, &slice); err != nil {
		return err
	}
	*ss = StringSlice(slice)
	return nil
}
