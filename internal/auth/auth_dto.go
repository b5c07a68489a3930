package auth

type RegisterRequest struct {
	EmployeeID string `json:"employeeId" binding:"omitempty,uuid"`
	Email      string `json:"email" binding:"required,email"`
	Name       string `json:"name" binding:"required,max=255"`
	Password   string `json:"password" binding:"required,min=6"`
	Role       string `json:"role" binding:"omitempty,oneof=ADMIN EMPLOYEE"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type AuthResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employeeId,omitempty"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Role       string `json:"role"`
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
