package model

// User represents an account document in the users collection.
// The email is the primary key; it is stored lowercased and trimmed.
type User struct {
	FirstName    string `bson:"fname"`
	LastName     string `bson:"lname"`
	Email        string `bson:"email"`
	Phone        string `bson:"phone"`
	Country      string `bson:"country"`
	City         string `bson:"city"`
	PasswordHash []byte `bson:"password"`
	Photo        string `bson:"photo"`
}

// RegisterRequest carries the registration form fields. The photo upload
// travels separately as a reader plus the original filename.
type RegisterRequest struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Country   string
	City      string
	Password  string
	Confirm   string
}

// Profile holds the mutable contact-info fields of a user record.
// Email, password and photo are not updatable through this type.
type Profile struct {
	FirstName string
	LastName  string
	Phone     string
	Country   string
	City      string
}
