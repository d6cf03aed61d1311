// Package session models the two in-memory authentication contexts. A
// session is either logged out or holds the identity of one account; the
// owning service serializes all mutations under its lock.
package session

// Admin tracks the back-office authentication state.
type Admin struct {
	loggedIn bool
	id       int64
	name     string
}

// Set transitions the session to LoggedIn for the given admin.
func (s *Admin) Set(id int64, name string) {
	s.loggedIn = true
	s.id = id
	s.name = name
}

// Clear transitions to LoggedOut. Clearing an already cleared session is a
// no-op, so logout is unconditionally safe.
func (s *Admin) Clear() {
	*s = Admin{}
}

func (s *Admin) LoggedIn() bool { return s.loggedIn }
func (s *Admin) ID() int64      { return s.id }
func (s *Admin) Name() string   { return s.name }

// User tracks the end-user authentication state.
type User struct {
	loggedIn bool
	id       int64
	name     string
	email    string
}

// Set transitions the session to LoggedIn for the given user.
func (s *User) Set(id int64, name, email string) {
	s.loggedIn = true
	s.id = id
	s.name = name
	s.email = email
}

// Clear transitions to LoggedOut.
func (s *User) Clear() {
	*s = User{}
}

func (s *User) LoggedIn() bool { return s.loggedIn }
func (s *User) ID() int64      { return s.id }
func (s *User) Name() string   { return s.name }
func (s *User) Email() string  { return s.email }
