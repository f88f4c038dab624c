package viewmodel

// User is the signed-in user shown in the header.
type User struct {
	Name  string
	Email string
	Role  string
}

// Tab is one entry of the dashboard tab strip.
type Tab struct {
	Key    string
	Label  string
	URL    string
	Active bool
}
