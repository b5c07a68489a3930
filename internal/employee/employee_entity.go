package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	uniqueEmployeeNumber = "uq_employee_number"
	uniqueEmployeeEmail  = "uq_employee_email"
)

type Employee struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeNumber string    `gorm:"column:employee_number;type:varchar(30);not null;uniqueIndex:uq_employee_number"`
	FullName       string    `gorm:"column:full_name;type:varchar(150);not null"`
	Email          string    `gorm:"column:email;type:varchar(150);not null;uniqueIndex:uq_employee_email"`
	Phone          string    `gorm:"column:phone;type:varchar(30)"`
	IsActive       bool      `gorm:"column:is_active;not null;default:true;index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}
