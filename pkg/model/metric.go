package model

import "time"

// Metric is a single analytics data point such as a post view or pickup.
type Metric struct {
	ID         uint       `gorm:"primarykey" json:"id"`
	MetricType string     `gorm:"not null;index" json:"metricType"`
	PostID     *uint      `json:"postId"`
	UserID     *uint      `json:"userId"`
	Location   string     `json:"location,omitempty"`
	Timestamp  *time.Time `json:"timestamp"`
	Metadata   *string    `gorm:"type:jsonb" json:"metadata"`
}
