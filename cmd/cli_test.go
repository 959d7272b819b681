package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"easy2go/internal/reconcile"
	"easy2go/internal/session"
)

// runCLI executes the root command against a scripted backend, with the
// session file isolated to the test.
func runCLI(t *testing.T, backendURL, sessionFile string, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("API_BASE", backendURL)
	t.Setenv("SESSION_FILE", sessionFile)

	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

type call struct {
	Method string
	Path   string
	Body   []byte
}

func scriptedBackend(t *testing.T, routes map[string]any) (*httptest.Server, *[]call) {
	t.Helper()
	var calls []call
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		calls = append(calls, call{Method: r.Method, Path: r.URL.Path, Body: body})

		payload, ok := routes[r.Method+" "+r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(payload)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestLoginCommandStoresSession(t *testing.T) {
	srv, _ := scriptedBackend(t, map[string]any{
		"POST /v1/auth/login": map[string]string{
			"token": "abc", "role": "customer", "customer_id": "cust-1",
		},
	})
	sessionFile := filepath.Join(t.TempDir(), "session.json")

	out, err := runCLI(t, srv.URL, sessionFile, "", "login", "-u", "test01", "-p", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as test01 (role: customer)")
	assert.Contains(t, out, "cust-1")

	store, err := session.Open(sessionFile)
	require.NoError(t, err)
	sess := session.Current(store)
	assert.Equal(t, "abc", sess.Token)
	assert.Equal(t, session.RoleCustomer, sess.Role)
	assert.Equal(t, "cust-1", sess.CustomerID)
}

func TestLoginCommandRejectsBlankPassword(t *testing.T) {
	srv, calls := scriptedBackend(t, nil)
	sessionFile := filepath.Join(t.TempDir(), "session.json")

	_, err := runCLI(t, srv.URL, sessionFile, "", "login", "-u", "test01", "-p", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password is required")
	assert.Empty(t, *calls)
}

func TestCreateCommandRejectsZeroItems(t *testing.T) {
	srv, calls := scriptedBackend(t, nil)
	sessionFile := filepath.Join(t.TempDir(), "session.json")

	_, err := runCLI(t, srv.URL, sessionFile, "",
		"create", "--set", "to_company=ACME", "--set", "invoice_no=INV-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one item")
	assert.Empty(t, *calls, "no POST may fire on local rejection")
}

func TestCreateCommandSubmits(t *testing.T) {
	srv, calls := scriptedBackend(t, map[string]any{
		"POST /v1/reconciles": map[string]any{
			"id": "R-9", "invoice_no": "INV-1", "editable": true,
		},
	})
	sessionFile := filepath.Join(t.TempDir(), "session.json")

	out, err := runCLI(t, srv.URL, sessionFile, "",
		"create",
		"--set", "to_company=ACME",
		"--item", "product_name=Widget,units_pcs=2,unit_price=4")
	require.NoError(t, err)
	assert.Contains(t, out, "Created R-9")

	require.Len(t, *calls, 1)
	assert.Equal(t, http.MethodPost, (*calls)[0].Method)
}

func TestCreatePreviewDoesNotSubmit(t *testing.T) {
	srv, calls := scriptedBackend(t, nil)
	sessionFile := filepath.Join(t.TempDir(), "session.json")

	out, err := runCLI(t, srv.URL, sessionFile, "",
		"create",
		"--set", "to_company=ACME",
		"--item", "product_name=Widget,units_pcs=2,unit_price=4",
		"--preview")
	require.NoError(t, err)
	assert.Contains(t, out, "ACME")
	assert.Contains(t, out, "Total: 8.00")
	assert.Empty(t, *calls, "preview must not reach the backend")
}

func TestParseIndexedItemKeepsCommaValues(t *testing.T) {
	form := reconcile.Form{Items: []reconcile.ItemForm{
		{ProductName: "Widget", UnitsPcs: "1", UnitPrice: "2"},
	}}

	idx, it, err := parseIndexedItem("0:marks_nos=NO 1, NO 2", form)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.Equal(t, "NO 1, NO 2", it.MarksNos)
	assert.Equal(t, "Widget", it.ProductName)
}

func TestPicsDeleteCanceledIssuesNoDelete(t *testing.T) {
	srv, calls := scriptedBackend(t, map[string]any{
		"GET /v1/reconciles/R-1": map[string]any{
			"id": "R-1", "editable": true,
		},
	})
	sessionFile := filepath.Join(t.TempDir(), "session.json")

	out, err := runCLI(t, srv.URL, sessionFile, "n\n",
		"pics", "delete", "R-1", "r1/a.jpg")
	require.NoError(t, err)
	assert.Contains(t, out, "Canceled.")

	for _, c := range *calls {
		assert.NotEqual(t, http.MethodDelete, c.Method, "cancel must not issue the DELETE")
	}
}

func TestPicsDeleteConfirmed(t *testing.T) {
	srv, calls := scriptedBackend(t, map[string]any{
		"GET /v1/reconciles/R-1": map[string]any{
			"id": "R-1", "editable": true,
		},
		"DELETE /v1/reconciles/R-1/pics": map[string]any{
			"pics": []string{},
		},
	})
	sessionFile := filepath.Join(t.TempDir(), "session.json")

	out, err := runCLI(t, srv.URL, sessionFile, "y\n",
		"pics", "delete", "R-1", "r1/a.jpg")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted.")

	var sawDelete bool
	for _, c := range *calls {
		if c.Method == http.MethodDelete {
			sawDelete = true
		}
	}
	assert.True(t, sawDelete)
}

func TestLockCommandRequiresAdmin(t *testing.T) {
	srv, calls := scriptedBackend(t, nil)
	sessionFile := filepath.Join(t.TempDir(), "session.json")

	store, err := session.Open(sessionFile)
	require.NoError(t, err)
	require.NoError(t, session.Save(store, "abc", session.RoleCustomer, "cust-1"))

	_, err = runCLI(t, srv.URL, sessionFile, "", "lock", "R-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only admins")
	assert.Empty(t, *calls)
}

func TestLockCommandSendsPartialPatch(t *testing.T) {
	srv, calls := scriptedBackend(t, map[string]any{
		"PATCH /v1/reconciles/R-1": map[string]any{
			"id": "R-1", "editable": false,
		},
	})
	sessionFile := filepath.Join(t.TempDir(), "session.json")

	store, err := session.Open(sessionFile)
	require.NoError(t, err)
	require.NoError(t, session.Save(store, "abc", session.RoleAdmin, ""))

	out, err := runCLI(t, srv.URL, sessionFile, "", "lock", "R-1")
	require.NoError(t, err)
	assert.Contains(t, out, "now locked")

	require.Len(t, *calls, 1)
	assert.JSONEq(t, `{"editable": false}`, string((*calls)[0].Body))
}

func TestConfirm(t *testing.T) {
	out := new(bytes.Buffer)

	assert.True(t, confirm(strings.NewReader("y\n"), out, "? "))
	assert.True(t, confirm(strings.NewReader("YES\n"), out, "? "))
	assert.False(t, confirm(strings.NewReader("n\n"), out, "? "))
	assert.False(t, confirm(strings.NewReader("\n"), out, "? "))
	assert.False(t, confirm(strings.NewReader(""), out, "? "), "EOF declines")
	assert.Contains(t, out.String(), "? ")
}
