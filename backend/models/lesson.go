package models

import "gorm.io/gorm"

type Lesson struct {
	gorm.Model
	Subject   LessonSubject `gorm:"size:100;not null" json:"subject"`
	TeacherID uint          `gorm:"not null" json:"teacher_id"`
	Time      string        `gorm:"index" json:"time"`
	Place     string        `gorm:"index;not null" json:"place"`
	Users     []User        `gorm:"many2many:lesson_user" json:"users"`
}
