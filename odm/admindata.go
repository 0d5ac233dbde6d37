package odm

import "fmt"

// AdminData carries administrative users and locations for a study.
type AdminData struct {
	StudyOID string

	users     []*User
	locations []*Location
}

func NewAdminData(studyOID string) *AdminData {
	return &AdminData{StudyOID: studyOID}
}

// Attach adds a User or Location child, preserving attachment order
// within each kind.
func (a *AdminData) Attach(child any) error {
	switch v := child.(type) {
	case *User:
		a.users = append(a.users, v)
	case *Location:
		a.locations = append(a.locations, v)
	default:
		return fmt.Errorf("%w: AdminData can only receive User or Location, got %T", ErrTypeMismatch, child)
	}
	return nil
}

// Build renders the AdminData element into b, users before locations.
func (a *AdminData) Build(b *Builder) {
	b.Start("AdminData", Attr{"StudyOID", a.StudyOID})
	for _, u := range a.users {
		u.Build(b)
	}
	for _, l := range a.locations {
		l.Build(b)
	}
	b.End()
}

// FirstName is a user's first name child element.
type FirstName string

// Build renders the FirstName element into b.
func (f FirstName) Build(b *Builder) {
	textElement(b, "FirstName", string(f))
}

// LastName is a user's last name child element.
type LastName string

// Build renders the LastName element into b.
func (l LastName) Build(b *Builder) {
	textElement(b, "LastName", string(l))
}

// DisplayName is a user's display name child element.
type DisplayName string

// Build renders the DisplayName element into b.
func (d DisplayName) Build(b *Builder) {
	textElement(b, "DisplayName", string(d))
}

// User is an administrative user definition.
type User struct {
	OID string

	userType UserType
	names    []Element
}

func NewUser(oid string) *User {
	return &User{OID: oid}
}

// SetUserType validates against the UserType set.
func (u *User) SetUserType(t UserType) error {
	if !t.valid() {
		return fmt.Errorf("%w: %q is not a UserType", ErrTypeMismatch, t)
	}
	u.userType = t
	return nil
}

// Attach adds a name child (FirstName, LastName or DisplayName),
// preserving attachment order.
func (u *User) Attach(child any) error {
	switch v := child.(type) {
	case FirstName:
		u.names = append(u.names, v)
	case LastName:
		u.names = append(u.names, v)
	case DisplayName:
		u.names = append(u.names, v)
	default:
		return fmt.Errorf("%w: User can only receive FirstName, LastName or DisplayName, got %T",
			ErrTypeMismatch, child)
	}
	return nil
}

// Build renders the User element into b.
func (u *User) Build(b *Builder) {
	attrs := []Attr{{"OID", u.OID}}
	if u.userType != "" {
		attrs = append(attrs, Attr{"UserType", string(u.userType)})
	}
	b.Start("User", attrs...)
	for _, n := range u.names {
		n.Build(b)
	}
	b.End()
}

// Location is an administrative site or organization definition.
type Location struct {
	OID  string
	Name string

	locationType LocationType
}

func NewLocation(oid, name string) *Location {
	return &Location{OID: oid, Name: name}
}

// SetLocationType validates against the LocationType set.
func (l *Location) SetLocationType(t LocationType) error {
	if !t.valid() {
		return fmt.Errorf("%w: %q is not a LocationType", ErrTypeMismatch, t)
	}
	l.locationType = t
	return nil
}

// Build renders the Location element into b.
func (l *Location) Build(b *Builder) {
	attrs := []Attr{
		{"OID", l.OID},
		{"Name", l.Name},
	}
	if l.locationType != "" {
		attrs = append(attrs, Attr{"LocationType", string(l.locationType)})
	}
	b.Start("Location", attrs...)
	b.End()
}
