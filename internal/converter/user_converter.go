package converter

import (
	"patient-appointment-service/internal/delivery/dto"
	"patient-appointment-service/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		FullName:  user.FullName,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}

	if user.Role.RoleName != "" {
		response.Role = user.Role.RoleName
	} else {
		switch user.RoleID {
		case entity.RoleIDAdmin:
			response.Role = entity.RoleAdmin
		case entity.RoleIDDoctor:
			response.Role = entity.RoleDoctor
		case entity.RoleIDPatient:
			response.Role = entity.RolePatient
		}
	}

	return response
}
