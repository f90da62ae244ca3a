package query_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"personnel_admin/internal/config"
	"personnel_admin/internal/models"
	"personnel_admin/internal/query"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

func seedEmployees(t *testing.T, db *gorm.DB, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		e := models.Employee{
			Name:    fmt.Sprintf("Name%02d", i),
			Surname: "Common",
			Email:   fmt.Sprintf("person%02d@x.com", i),
			Enabled: i%2 == 1, // odd ids enabled
		}
		require.NoError(t, db.Create(&e).Error)
	}
}

func listEmails(page query.Page[models.Employee]) []string {
	emails := make([]string, 0, len(page.Items))
	for _, e := range page.Items {
		emails = append(emails, e.Email)
	}
	return emails
}

func TestEmptyFiltersAreIdentity(t *testing.T) {
	db := setupTestDB(t)
	seedEmployees(t, db, 6)

	opts := query.DefaultOptions("email")
	opts.Search = map[string]string{"email": "", "name": ""}

	page, err := query.List[models.Employee](db, map[string]string{"email": "email"}, opts)
	require.NoError(t, err)
	assert.Equal(t, int64(6), page.TotalRows)
	assert.Len(t, page.Items, 6)
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.Employee{Name: "Alice", Surname: "A", Email: "alice@x.com", Enabled: true}).Error)
	require.NoError(t, db.Create(&models.Employee{Name: "Bob", Surname: "B", Email: "bob@x.com", Enabled: true}).Error)

	opts := query.DefaultOptions("email")
	opts.Search = map[string]string{"email": "ALI"}

	page, err := query.List[models.Employee](db, map[string]string{"email": "email"}, opts)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "alice@x.com", page.Items[0].Email)
}

func TestStatusFilter(t *testing.T) {
	db := setupTestDB(t)
	seedEmployees(t, db, 4) // 2 enabled, 2 disabled
	sortable := map[string]string{"email": "email"}

	t.Run("both true shows all", func(t *testing.T) {
		page, err := query.List[models.Employee](db, sortable, query.DefaultOptions("email"))
		require.NoError(t, err)
		assert.Equal(t, int64(4), page.TotalRows)
	})

	t.Run("enabled only", func(t *testing.T) {
		opts := query.DefaultOptions("email")
		opts.ShowDisabled = false
		page, err := query.List[models.Employee](db, sortable, opts)
		require.NoError(t, err)
		require.Equal(t, int64(2), page.TotalRows)
		for _, e := range page.Items {
			assert.True(t, e.Enabled)
		}
	})

	t.Run("disabled only", func(t *testing.T) {
		opts := query.DefaultOptions("email")
		opts.ShowEnabled = false
		page, err := query.List[models.Employee](db, sortable, opts)
		require.NoError(t, err)
		require.Equal(t, int64(2), page.TotalRows)
		for _, e := range page.Items {
			assert.False(t, e.Enabled)
		}
	})

	t.Run("neither selects nothing", func(t *testing.T) {
		opts := query.DefaultOptions("email")
		opts.ShowEnabled = false
		opts.ShowDisabled = false
		page, err := query.List[models.Employee](db, sortable, opts)
		require.NoError(t, err)
		assert.Equal(t, int64(0), page.TotalRows)
		assert.Empty(t, page.Items)
		assert.Equal(t, 1, page.TotalPages)
	})
}

func TestSortIsDeterministicWithTies(t *testing.T) {
	db := setupTestDB(t)
	// Same surname everywhere: the id tiebreak has to decide the order.
	seedEmployees(t, db, 9)

	opts := query.DefaultOptions("surname")
	opts.PageSize = 4

	sortable := map[string]string{"surname": "surname", "email": "email"}
	first, err := query.List[models.Employee](db, sortable, opts)
	require.NoError(t, err)
	second, err := query.List[models.Employee](db, sortable, opts)
	require.NoError(t, err)
	assert.Equal(t, listEmails(first), listEmails(second))

	// Walking all pages visits each row exactly once.
	seen := map[string]bool{}
	for p := 1; p <= first.TotalPages; p++ {
		opts.Page = p
		page, err := query.List[models.Employee](db, sortable, opts)
		require.NoError(t, err)
		for _, email := range listEmails(page) {
			assert.False(t, seen[email], "row %s served twice", email)
			seen[email] = true
		}
	}
	assert.Len(t, seen, 9)
}

func TestDescendingSort(t *testing.T) {
	db := setupTestDB(t)
	seedEmployees(t, db, 3)

	opts := query.DefaultOptions("email")
	opts.Ascending = false

	page, err := query.List[models.Employee](db, map[string]string{"email": "email"}, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"person03@x.com", "person02@x.com", "person01@x.com"}, listEmails(page))
}

func TestInvalidSortAttribute(t *testing.T) {
	db := setupTestDB(t)

	opts := query.DefaultOptions("shoe_size")
	_, err := query.List[models.Employee](db, map[string]string{"email": "email"}, opts)
	assert.ErrorIs(t, err, query.ErrInvalidSortAttribute)
}

func TestOutOfRangePages(t *testing.T) {
	db := setupTestDB(t)
	seedEmployees(t, db, 10)
	sortable := map[string]string{"email": "email"}

	t.Run("page beyond last", func(t *testing.T) {
		opts := query.DefaultOptions("email")
		opts.Page = 3
		opts.PageSize = 25
		page, err := query.List[models.Employee](db, sortable, opts)
		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.Equal(t, 1, page.TotalPages)
		assert.Equal(t, int64(10), page.TotalRows)
	})

	t.Run("page zero", func(t *testing.T) {
		opts := query.DefaultOptions("email")
		opts.Page = 0
		page, err := query.List[models.Employee](db, sortable, opts)
		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.Equal(t, 1, page.TotalPages)
	})
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		rows  int64
		size  int
		pages int
	}{
		{0, 25, 1},
		{1, 25, 1},
		{25, 25, 1},
		{26, 25, 2},
		{10, 25, 1},
		{100, 10, 10},
		{101, 10, 11},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.pages, query.TotalPages(tc.rows, tc.size), "rows=%d size=%d", tc.rows, tc.size)
	}
}

func TestFilterFieldNilIsIdentity(t *testing.T) {
	db := setupTestDB(t)
	seedEmployees(t, db, 3)

	var all []models.Employee
	require.NoError(t, db.Scopes(query.FilterField("profession_id", nil)).Find(&all).Error)
	assert.Len(t, all, 3)
}
