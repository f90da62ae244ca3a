package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"personnel_admin/internal/config"
	"personnel_admin/internal/middleware"
	"personnel_admin/internal/models"
	"personnel_admin/internal/operations"
	"personnel_admin/internal/routes"
)

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	require.NoError(t, config.Seed(db))
	config.DB = db
	return routes.SetupRouter(), db
}

func login(t *testing.T, db *gorm.DB, email string) string {
	t.Helper()
	user, err := operations.GetUserByEmail(db, email)
	require.NoError(t, err)
	require.NotNil(t, user)
	token, err := middleware.GenerateToken(user.ID)
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(r *gin.Engine, method, path, auth string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Buffer = bytes.NewBuffer(nil)
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewBuffer(raw)
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func newUser(t *testing.T, db *gorm.DB, email, alias string, roleName string) *models.User {
	t.Helper()
	var roleID *uint
	if roleName != "" {
		role, err := operations.GetRoleByName(db, roleName)
		require.NoError(t, err)
		require.NotNil(t, role)
		roleID = &role.ID
	}
	user, err := operations.CreateUser(db, operations.CreateUserInput{
		Email: email, Alias: alias, Password: "longenough", RoleID: roleID,
	}, false)
	require.NoError(t, err)
	return user
}

func TestLogin(t *testing.T) {
	r, _ := setupRouter(t)

	t.Run("seeded admin can log in", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/auth/login", "",
			gin.H{"email": "admin@example.com", "password": "changeme123"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "token")
	})

	t.Run("wrong password", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/auth/login", "",
			gin.H{"email": "admin@example.com", "password": "wrong-password"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("disabled account", func(t *testing.T) {
		r2, db := setupRouter(t)
		u := newUser(t, db, "off@x.com", "off", "")
		_, err := operations.ToggleUserEnabled(db, u.ID)
		require.NoError(t, err)
		w := doJSON(r2, http.MethodPost, "/auth/login", "",
			gin.H{"email": "off@x.com", "password": "longenough"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestIndexUsersFiltering(t *testing.T) {
	r, db := setupRouter(t)
	admin := login(t, db, "admin@example.com")
	newUser(t, db, "alice@x.com", "alice", "administrador")
	newUser(t, db, "bob@x.com", "bob", "")

	t.Run("search by mail is case-insensitive", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/usuarios/?mail=ALI", admin, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "alice@x.com")
		assert.NotContains(t, w.Body.String(), "bob@x.com")
	})

	t.Run("filter by role name", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/usuarios/?role=administrador", admin, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "alice@x.com")
		assert.NotContains(t, w.Body.String(), "bob@x.com")
	})

	t.Run("out of range page", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/usuarios/?page=3", admin, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var page struct {
			Items      []json.RawMessage `json:"items"`
			TotalPages int               `json:"total_pages"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		assert.Empty(t, page.Items)
		assert.Equal(t, 1, page.TotalPages)
	})

	t.Run("unknown sort attribute", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/usuarios/?order_email=shoe_size", admin, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("without permission", func(t *testing.T) {
		bob := login(t, db, "bob@x.com")
		w := doJSON(r, http.MethodGet, "/usuarios/", bob, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestUserProfileRoutes(t *testing.T) {
	r, db := setupRouter(t)
	admin := login(t, db, "admin@example.com")
	newUser(t, db, "alice@x.com", "alice", "")

	t.Run("profile by alias", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/usuarios/perfil/alice", admin, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "alice@x.com")
	})

	t.Run("missing alias is 404", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/usuarios/perfil/ghost", admin, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("own profile", func(t *testing.T) {
		alice := login(t, db, "alice@x.com")
		w := doJSON(r, http.MethodGet, "/usuarios/miperfil", alice, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "alice@x.com")
	})
}

func TestUpdateUserSelfServiceRules(t *testing.T) {
	r, db := setupRouter(t)
	alice := newUser(t, db, "alice@x.com", "alice", "")
	bob := newUser(t, db, "bob@x.com", "bob", "")
	bobToken := login(t, db, "bob@x.com")

	t.Run("bob edits his own alias without user_update", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, fmt.Sprintf("/usuarios/update/%d", bob.ID), bobToken,
			gin.H{"alias": "bobby"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "bobby")
	})

	t.Run("bob cannot touch alice at all", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, fmt.Sprintf("/usuarios/update/%d", alice.ID), bobToken,
			gin.H{"email": "taken@x.com"})
		assert.Equal(t, http.StatusForbidden, w.Code)

		unchanged, err := operations.GetUser(db, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice@x.com", unchanged.Email, "rejected before any write")
	})

	t.Run("bob cannot grant himself privileges", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, fmt.Sprintf("/usuarios/update/%d", bob.ID), bobToken,
			gin.H{"role": "administrador"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin may change privileges but not identity", func(t *testing.T) {
		adminToken := login(t, db, "admin@example.com")
		w := doJSON(r, http.MethodPost, fmt.Sprintf("/usuarios/update/%d", alice.ID), adminToken,
			gin.H{"role": "operador"})
		assert.Equal(t, http.StatusOK, w.Code)

		w = doJSON(r, http.MethodPost, fmt.Sprintf("/usuarios/update/%d", alice.ID), adminToken,
			gin.H{"email": "hijack@x.com"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestDeleteAndToggleUser(t *testing.T) {
	r, db := setupRouter(t)
	adminToken := login(t, db, "admin@example.com")
	victim := newUser(t, db, "victim@x.com", "victim", "")

	t.Run("toggle", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, fmt.Sprintf("/usuarios/bloquear/%d", victim.ID), adminToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		toggled, err := operations.GetUser(db, victim.ID)
		require.NoError(t, err)
		assert.False(t, toggled.Enabled)
	})

	t.Run("delete", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, fmt.Sprintf("/usuarios/eliminar/%d", victim.ID), adminToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		gone, err := operations.GetUser(db, victim.ID)
		require.NoError(t, err)
		assert.Nil(t, gone)
	})

	t.Run("delete missing is 404", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, fmt.Sprintf("/usuarios/eliminar/%d", victim.ID), adminToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCreateUserRoute(t *testing.T) {
	r, db := setupRouter(t)
	adminToken := login(t, db, "admin@example.com")

	t.Run("created with role", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/usuarios/", adminToken,
			gin.H{"email": "nuevo@x.com", "alias": "nuevo", "password": "longenough", "role": "operador"})
		require.Equal(t, http.StatusCreated, w.Code)

		created, err := operations.GetUserByAlias(db, "nuevo")
		require.NoError(t, err)
		require.NotNil(t, created)
		require.NotNil(t, created.Role)
		assert.Equal(t, "operador", created.Role.Name)
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/usuarios/", adminToken,
			gin.H{"email": "nuevo@x.com", "alias": "distinto", "password": "longenough"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/usuarios/", adminToken,
			gin.H{"email": "otro@x.com", "alias": "otro", "password": "longenough", "role": "gerente"})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("weak password", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/usuarios/", adminToken,
			gin.H{"email": "weak@x.com", "alias": "weak", "password": "short"})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
