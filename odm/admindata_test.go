package odm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdminDataBuild(t *testing.T) {
	a := NewAdminData("Mediflex(Prod)")
	require.Contains(t, Render(a), `<AdminData StudyOID="Mediflex(Prod)" />`)
}

func TestAdminDataUsersBeforeLocations(t *testing.T) {
	a := NewAdminData("Mediflex(Prod)")
	require.NoError(t, a.Attach(NewLocation("MDSOL", "Medidata")))
	require.NoError(t, a.Attach(NewUser("harold")))
	require.ErrorIs(t, a.Attach(42), ErrTypeMismatch)

	doc := Render(a)
	user := strings.Index(doc, "<User ")
	location := strings.Index(doc, "<Location ")
	require.Greater(t, location, user)
}

func TestUserBuild(t *testing.T) {
	u := NewUser("harold")
	require.NoError(t, u.SetUserType(UserInvestigator))
	require.NoError(t, u.Attach(DisplayName("Harold Kumar")))
	require.NoError(t, u.Attach(FirstName("Harold")))
	require.NoError(t, u.Attach(LastName("Kumar")))

	doc := Render(u)
	require.Contains(t, doc, `<User OID="harold" UserType="Investigator">`)

	// name children keep attachment order
	display := strings.Index(doc, "<DisplayName>Harold Kumar</DisplayName>")
	first := strings.Index(doc, "<FirstName>Harold</FirstName>")
	last := strings.Index(doc, "<LastName>Kumar</LastName>")
	require.Greater(t, first, display)
	require.Greater(t, last, first)
}

func TestUserTypeValidation(t *testing.T) {
	u := NewUser("harold")
	err := u.SetUserType(UserType("Monitor"))
	require.ErrorIs(t, err, ErrTypeMismatch)
	require.NotContains(t, Render(u), "UserType=")
}

func TestUserAttachTypeMismatch(t *testing.T) {
	u := NewUser("harold")
	err := u.Attach("Harold")
	require.ErrorIs(t, err, ErrTypeMismatch)
}

func TestLocationBuild(t *testing.T) {
	l := NewLocation("MDSOL", "Medidata")
	require.Contains(t, Render(l), `<Location OID="MDSOL" Name="Medidata" />`)

	require.NoError(t, l.SetLocationType(LocationSite))
	require.Contains(t, Render(l), `<Location OID="MDSOL" Name="Medidata" LocationType="Site" />`)

	err := l.SetLocationType(LocationType("Warehouse"))
	require.ErrorIs(t, err, ErrTypeMismatch)
}
