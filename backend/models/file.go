package models

import "gorm.io/gorm"

type File struct {
	gorm.Model
	UUID        string `gorm:"unique;not null" json:"uuid"`
	Filename    string `gorm:"not null" json:"filename"`
	Path        string `gorm:"not null" json:"-"`
	ContentType string `gorm:"not null" json:"content_type"`
}
