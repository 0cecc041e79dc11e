package model

// ContactMessage is a single contact-form submission. Messages carry no
// identity linkage and are append-only.
type ContactMessage struct {
	Name    string `bson:"name"`
	Email   string `bson:"email"`
	Subject string `bson:"subject"`
	Message string `bson:"message"`
}
