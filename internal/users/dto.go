package users

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=guest player coach admin superadmin"`
}

type UpdateUserRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Email string `json:"email" validate:"required,email,max=255"`
	Role  string `json:"role" validate:"required,oneof=guest player coach admin superadmin"`
}

type UpdatePasswordRequest struct {
	Password string `json:"password" validate:"required"`
}
