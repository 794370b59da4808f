package models

type RegisterResponse struct {
	ID      int    `json:"id" example:"1"`
	Message string `json:"message" example:"User registered successfully"`
}

type LoginResponse struct {
	Message string `json:"message" example:"Login successful"`
	Token   string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

type CreateTransactionResponse struct {
	ID      int    `json:"id" example:"1"`
	Message string `json:"message" example:"Transaction added successfully"`
}

type UpdateTransactionResponse struct {
	UpdatedID int    `json:"updatedID" example:"1"`
	Message   string `json:"message" example:"Transaction updated successfully"`
}

type MessageResponse struct {
	Message string `json:"message" example:"Transaction deleted successfully"`
}

type ErrorResponse struct {
	Error string `json:"error" example:"error"`
}
