package web

import (
	"io/fs"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/phlebotomy-portal/internal/models"
)

func TestTemplatesParseEveryPage(t *testing.T) {
	tmpl, err := Templates("")
	require.NoError(t, err)

	for _, name := range []string{
		"signin.html", "not_found.html", "error.html", "appointments.html",
		"dashboard_admin.html", "dashboard_employee.html", "dashboard_laboratory.html",
		"notifications.html", "transactions.html", "employees.html", "laboratories.html",
		"appointment_new.html", "employee_new.html", "laboratory_new.html", "account.html", "password.html",
	} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
	assert.NotNil(t, tmpl.Lookup("header"))
	assert.NotNil(t, tmpl.Lookup("footer"))
}

func TestAssetsServeStylesheet(t *testing.T) {
	_, err := fs.Stat(Assets(), "app.css")
	assert.NoError(t, err)
}

func TestFuncs(t *testing.T) {
	funcs := Funcs("https://cdn.example.test/")

	asset := funcs["asset"].(func(string) string)
	assert.Equal(t, "https://cdn.example.test/uploads/a.png", asset("/uploads/a.png"))
	assert.Equal(t, "https://elsewhere.test/b.png", asset("https://elsewhere.test/b.png"))
	assert.Equal(t, "", asset(""))

	date := funcs["date"].(func(models.Timestamp) string)
	assert.Equal(t, "", date(models.Timestamp{}))
	assert.NotEmpty(t, date(models.Timestamp{Time: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)}))

	assert.Equal(t, "status-completed", funcs["statusClass"].(func(string) string)("Completed"))
	assert.Equal(t, "0", funcs["money"].(func(models.LooseString) string)(""))
	percent := funcs["percent"].(func(int, int) int)
	assert.Equal(t, 25, percent(1, 4))
	assert.Equal(t, 0, percent(3, 0))
}
