package user

// User is the API response model for a user profile.
type User struct {
	ID        string `json:"id" doc:"User UUID"`
	FirstName string `json:"firstName" doc:"First name"`
	LastName  string `json:"lastName" doc:"Last name"`
	Email     string `json:"email" doc:"Email address"`
	CreatedAt string `json:"createdAt" doc:"RFC3339 signup time"`
}

// Badge is the API response model for a persisted award.
type Badge struct {
	BadgeID     string `json:"badgeID" doc:"Stable badge id"`
	DisplayName string `json:"displayName" doc:"Badge name"`
	Description string `json:"description" doc:"What the badge was awarded for"`
	EarnedAt    string `json:"earnedAt" doc:"RFC3339 time the badge was first awarded"`
	Legacy      bool   `json:"legacy" doc:"True for ids kept only for older awards"`
}
