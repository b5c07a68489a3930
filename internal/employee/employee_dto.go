package employee

import "time"

type CreateEmployeeRequest struct {
	// EmployeeNumber is generated as EMP-000001 when empty.
	EmployeeNumber string `json:"employeeNumber" binding:"omitempty,max=30"`
	FullName       string `json:"fullName" binding:"required,max=150"`
	Email          string `json:"email" binding:"required,email"`
	Phone          string `json:"phone" binding:"omitempty,max=30"`
}

type UpdateEmployeeRequest struct {
	EmployeeNumber string `json:"employeeNumber" binding:"omitempty,max=30"`
	FullName       string `json:"fullName" binding:"required,max=150"`
	Email          string `json:"email" binding:"required,email"`
	Phone          string `json:"phone" binding:"omitempty,max=30"`
}

type UpdateStatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

type ListQuery struct {
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
	Search   string `form:"q"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
}

type EmployeeResponse struct {
	ID             string    `json:"id"`
	EmployeeNumber string    `json:"employeeNumber"`
	FullName       string    `json:"fullName"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
}

type EmployeeOption struct {
	ID             string `json:"id"`
	EmployeeNumber string `json:"employeeNumber"`
	FullName       string `json:"fullName"`
}
