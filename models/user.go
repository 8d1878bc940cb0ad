package models

type User struct {
	ID         string  `json:"id"`
	FirebaseID *string `json:"firebaseID"`
	FirstName  string  `json:"firstName"`
	LastName   *string `json:"lastName"`
	Email      string  `json:"email"`
	WordGoal   int     `json:"wordGoal"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
}

type NewUser struct {
	FirstName string  `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     string  `json:"email"`
}

type SignedUpUser struct {
	ID         string `json:"id"`
	FirebaseID string `json:"firebaseID"`
}

type UpdatedUser struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	WordGoal  *int    `json:"wordGoal"`
}
