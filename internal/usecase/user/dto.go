package user

// CreateUserRequest represents the request payload for creating a new user.
// Name and Email are pointers so an absent field can be told apart from a
// supplied one.
type CreateUserRequest struct {
	Name         *string `json:"name" validate:"required,min=1"`
	Email        *string `json:"email" validate:"required,min=1"`
	PlaceOfBirth *string `json:"placeOfBirth"`
}

// CreateUserResponse represents the response payload after creating a user.
type CreateUserResponse struct {
	ID int64
}

// UpdateUserRequest represents the request payload for a partial update.
// A nil field is left unchanged.
type UpdateUserRequest struct {
	ID           int64
	Name         *string
	Email        *string
	PlaceOfBirth *string
}

// UpdateUserResponse represents the response payload after updating a user.
type UpdateUserResponse struct {
	ID int64
}

// DeleteUserRequest represents the request payload for deleting a user.
type DeleteUserRequest struct {
	ID int64
}

// DeleteUserResponse represents the response payload after deleting a user.
type DeleteUserResponse struct {
	ID int64
}

// DeleteAllUsersResponse reports how many users were removed.
type DeleteAllUsersResponse struct {
	Deleted int64
}

// GetUserRequest represents the request payload for retrieving a user.
type GetUserRequest struct {
	ID int64
}

// GetUserResponse represents the response payload for user details.
type GetUserResponse struct {
	User User
}

// ListUsersRequest represents the request payload for listing users.
// Empty values are treated as absent filters.
type ListUsersRequest struct {
	Name  string
	Email string
}

// ListUsersResponse represents the response payload for user listing.
type ListUsersResponse struct {
	Users []User
}

// User represents a user DTO (Data Transfer Object) for API responses.
type User struct {
	ID           int64
	Name         string
	Email        string
	PlaceOfBirth *string
}
