package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	store, err := Open(path)
	require.NoError(t, err)

	_, ok := store.Get(KeyToken)
	assert.False(t, ok)

	require.NoError(t, store.Set(KeyToken, "abc"))
	require.NoError(t, store.Set(KeyRole, "admin"))

	// Values persist across reopens, like device storage across restarts.
	reopened, err := Open(path)
	require.NoError(t, err)

	token, ok := reopened.Get(KeyToken)
	assert.True(t, ok)
	assert.Equal(t, "abc", token)

	require.NoError(t, reopened.Delete(KeyToken))
	again, err := Open(path)
	require.NoError(t, err)
	_, ok = again.Get(KeyToken)
	assert.False(t, ok)
}

func TestStoreFilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(KeyToken, "abc"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStoreRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	_, err := Open(path)
	assert.Error(t, err)
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseRole("admin"))
	assert.Equal(t, RoleAdmin, ParseRole("ADMIN"))
	assert.Equal(t, RoleAdmin, ParseRole(" Admin "))
	assert.Equal(t, RoleCustomer, ParseRole("customer"))
	assert.Equal(t, RoleCustomer, ParseRole(""))
	assert.Equal(t, RoleCustomer, ParseRole("administrator"))

	assert.True(t, RoleAdmin.IsAdmin())
	assert.False(t, RoleCustomer.IsAdmin())
}

func TestSaveAndCurrent(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)

	require.NoError(t, Save(store, "abc", RoleCustomer, "cust-1"))

	sess := Current(store)
	assert.True(t, sess.LoggedIn())
	assert.Equal(t, "abc", sess.Token)
	assert.Equal(t, RoleCustomer, sess.Role)
	assert.Equal(t, "cust-1", sess.CustomerID)
}

func TestSaveWithoutCustomerIDKeepsExisting(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)

	require.NoError(t, Save(store, "abc", RoleCustomer, "cust-1"))

	// An admin login returns no customer id; the stored one is untouched.
	require.NoError(t, Save(store, "def", RoleAdmin, ""))

	sess := Current(store)
	assert.Equal(t, "def", sess.Token)
	assert.Equal(t, RoleAdmin, sess.Role)
	assert.Equal(t, "cust-1", sess.CustomerID)
}
