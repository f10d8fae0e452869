package models

import "gorm.io/gorm"

// Project is a placeholder for future project management. Teams only ever
// surface it as an empty list today.
type Project struct {
	gorm.Model
	TeamID uint   `gorm:"not null;index" json:"team_id"`
	Name   string `json:"name"`
}

// JoinRequest is a placeholder for the join-request workflow.
type JoinRequest struct {
	gorm.Model
	TeamID      uint   `gorm:"not null;index" json:"team_id"`
	RequesterID uint   `gorm:"not null;index" json:"requester_id"`
	Role        string `gorm:"not null" json:"role"`
	Approved    bool   `gorm:"default:false" json:"approved"`
}
