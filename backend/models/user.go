package models

import (
	"fmt"

	"gorm.io/gorm"
)

type UserStatus string

const (
	StatusGuest      UserStatus = "guest"
	StatusTeacher    UserStatus = "teacher"
	StatusSuperadmin UserStatus = "superadmin"
)

func (s UserStatus) Valid() bool {
	switch s {
	case StatusGuest, StatusTeacher, StatusSuperadmin:
		return true
	}
	return false
}

type LessonSubject string

const (
	SubjectUnichance   LessonSubject = "unichance"
	SubjectMath        LessonSubject = "math"
	SubjectInformatics LessonSubject = "informatics"
	SubjectChemistry   LessonSubject = "chemistry"
	SubjectPhysics     LessonSubject = "physics"
)

func (s LessonSubject) Valid() bool {
	switch s {
	case SubjectUnichance, SubjectMath, SubjectInformatics, SubjectChemistry, SubjectPhysics:
		return true
	}
	return false
}

type User struct {
	gorm.Model
	Name         string        `gorm:"size:100;index" json:"name"`
	Surname      string        `gorm:"size:100;index" json:"surname"`
	Patronymic   string        `gorm:"size:100;index" json:"patronymic"`
	Email        string        `gorm:"size:100;unique;not null" json:"email"`
	PasswordHash string        `gorm:"size:255;not null" json:"-"`
	Status       UserStatus    `gorm:"size:100;index" json:"status"`
	Subject      LessonSubject `gorm:"size:100;index" json:"subject"`
	AvatarUUID   *string       `gorm:"size:255" json:"avatar_uuid"`
}

// FIO is the display name used everywhere a teacher or student is shown.
func (u *User) FIO() string {
	return fmt.Sprintf("%s %s %s", u.Surname, u.Name, u.Patronymic)
}
