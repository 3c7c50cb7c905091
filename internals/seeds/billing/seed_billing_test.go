package billing

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The fixture must stay internally consistent: every group references a
// seeded course, every price and date parses.
func TestDevSeedFixture(t *testing.T) {
	raw, err := os.ReadFile("data_billing.json")
	require.NoError(t, err)

	var data billingSeed
	require.NoError(t, json.Unmarshal(raw, &data))

	require.NotEmpty(t, data.Users)
	require.NotEmpty(t, data.Courses)
	require.NotEmpty(t, data.Groups)

	courses := map[string]bool{}
	for _, c := range data.Courses {
		_, err := decimal.NewFromString(c.Price)
		assert.NoError(t, err, "price of %q", c.Title)
		courses[c.Title] = true
	}

	for _, g := range data.Groups {
		assert.True(t, courses[g.CourseTitle], "group %q references unseeded course %q", g.Name, g.CourseTitle)

		start, err := time.Parse("2006-01-02", g.StartDate)
		require.NoError(t, err, "start_date of %q", g.Name)
		end, err := time.Parse("2006-01-02", g.EndDate)
		require.NoError(t, err, "end_date of %q", g.Name)
		assert.True(t, end.After(start), "group %q ends before it starts", g.Name)
	}

	roles := map[string]bool{"student": true, "teacher": true, "admin": true}
	for _, u := range data.Users {
		assert.True(t, roles[u.Role], "user %q has unknown role %q", u.Email, u.Role)
		assert.NotEmpty(t, u.Email)
	}
}
