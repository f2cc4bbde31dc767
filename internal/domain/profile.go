package domain

type ProfileName string

// Profile is one named backend endpoint the console can talk to.
type Profile struct {
	Name     ProfileName
	BaseURL  string
	Username string
}
