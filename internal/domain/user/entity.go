package user

// User represents a user entity in the system.
type User struct {
	ID           int64   // ID is the unique identifier for the user
	Name         string  // Name is the full name of the user
	Email        string  // Email is the unique email address of the user
	PlaceOfBirth *string // PlaceOfBirth is optional; nil when unknown
}

// Filter selects users by exact field values. A nil field is not filtered on.
type Filter struct {
	Name  *string
	Email *string
}

// IsEmpty reports whether the filter matches every user.
func (f Filter) IsEmpty() bool {
	return f.Name == nil && f.Email == nil
}

// Patch carries the fields supplied by a partial update. A nil field keeps
// its stored value.
type Patch struct {
	Name         *string
	Email        *string
	PlaceOfBirth *string
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.PlaceOfBirth == nil
}
