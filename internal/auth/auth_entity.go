package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	uniqueUserEmail    = "uq_users_email"
	uniqueUserEmployee = "uq_users_employee"
)

type User struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// EmployeeID links an EMPLOYEE account to the person whose location it reports.
	EmployeeID *uuid.UUID `gorm:"type:uuid;uniqueIndex:uq_users_employee"`
	Name       string     `gorm:"type:varchar(255);not null"`
	Email      string     `gorm:"type:varchar(255);uniqueIndex:uq_users_email;not null"`
	Password   string     `gorm:"type:varchar(255);not null"`
	Role       string     `gorm:"type:varchar(50);not null;default:'EMPLOYEE'"`
	IsActive   bool       `gorm:"default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (u User) employeeIDString() string {
	if u.EmployeeID == nil {
		return ""
	}
	return u.EmployeeID.String()
}
