package dto

import "github.com/yukikurage/anonymous-thread-api/internal/models"

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
	}
}

// ToSelfDTO converts the caller's own User model, including the email
func ToSelfDTO(user models.User) UserDTO {
	dto := ToUserDTO(user)
	dto.Email = user.Email
	return dto
}
