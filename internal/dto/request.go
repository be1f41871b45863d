package dto

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CreateHealthRecordRequest is submitted by a student. Ranges are advisory.
type CreateHealthRecordRequest struct {
	Temperature *float64 `json:"temperature" validate:"required"`
	Weight      *float64 `json:"weight" validate:"required"`
	Height      *float64 `json:"height" validate:"required"`
	Notes       string   `json:"notes"`
}

// CreateComplaintRequest is submitted by a student.
type CreateComplaintRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// RespondComplaintRequest is submitted by a teacher.
type RespondComplaintRequest struct {
	Message string `json:"message" validate:"required"`
}

// CreateUserRequest payload for adding an identity.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Class    string `json:"kelas"`
}

// UpdateUserRequest payload for editing an identity. An empty password keeps the current one.
type UpdateUserRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Class    string `json:"kelas"`
}
