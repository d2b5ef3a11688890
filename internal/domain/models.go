// Package domain defines the persistence model for logged chat exchanges.
// The single entity, Interaction, is mapped with GORM onto the
// "interactions" table and forms the data layer of the support chat.
package domain

import "time"

// TimestampLayout is the fixed, second-precision layout used for
// Interaction.Timestamp. Values are rendered in local wall-clock time.
const TimestampLayout = "2006-01-02 15:04:05"

// Interaction is one logged request/response pair.
//
// Fields:
//   - ID: integer primary key assigned by SQLite (AUTOINCREMENT).
//   - Timestamp: local time of logging, formatted with TimestampLayout.
//   - UserInput: the raw message submitted by the caller (never trimmed).
//   - BotResponse: completion text, or the "Error: ..." string on failure.
//
// Rows are create-only: nothing in this system updates or deletes them.
type Interaction struct {
	ID          int64  `json:"id"           gorm:"column:id;primaryKey;autoIncrement"`
	Timestamp   string `json:"timestamp"    gorm:"column:timestamp;type:text"`
	UserInput   string `json:"user_input"   gorm:"column:user_input;type:text"`
	BotResponse string `json:"bot_response" gorm:"column:bot_response;type:text"`
}

// TableName returns the database table name for Interaction.
func (Interaction) TableName() string { return "interactions" }

// Triple returns the [timestamp, user_input, bot_response] row shape served
// by GET /logs.
func (i Interaction) Triple() [3]string {
	return [3]string{i.Timestamp, i.UserInput, i.BotResponse}
}

// FormatTimestamp renders t in local time using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.Local().Format(TimestampLayout)
}
