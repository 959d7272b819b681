package reconcile

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"easy2go/internal/session"
)

func TestNewDraftDefaults(t *testing.T) {
	now := time.Date(2026, 1, 11, 22, 29, 0, 0, time.UTC)
	form := NewDraft(now)

	assert.Equal(t, "LONG LINK TRADING LTD", form.Exporter.Name)
	assert.Equal(t, "2026-01-11", form.InvoiceDate)
	assert.Equal(t, "FOB", form.TradeTerms)
	assert.Equal(t, "CNY", form.Currency)
	assert.Equal(t, "Yantian, China", form.LogisticsFrom)
	assert.Equal(t, "Dublin, Ireland", form.LogisticsTo)
	assert.Equal(t, "By sea", form.LogisticsTransport)
	assert.Empty(t, form.Items)

	assert.True(t, strings.HasPrefix(form.InvoiceNo, "GSAM"))
	assert.Len(t, form.InvoiceNo, len("GSAM")+6)
}

func TestSaveLocalDraft(t *testing.T) {
	store, err := session.Open(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)

	form := validForm()
	id, err := SaveLocalDraft(store, form, time.Now())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "R-"))

	drafts, err := LocalDrafts(store)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, id, drafts[0].ID)
	assert.Equal(t, form.InvoiceNo, drafts[0].Form.InvoiceNo)

	// New drafts go to the front.
	id2, err := SaveLocalDraft(store, form, time.Now())
	require.NoError(t, err)

	drafts, err = LocalDrafts(store)
	require.NoError(t, err)
	require.Len(t, drafts, 2)
	assert.Equal(t, id2, drafts[0].ID)
}

func TestSaveLocalDraftValidates(t *testing.T) {
	store, err := session.Open(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)

	form := validForm()
	form.Items = nil

	_, err = SaveLocalDraft(store, form, time.Now())
	require.Error(t, err)

	drafts, err := LocalDrafts(store)
	require.NoError(t, err)
	assert.Empty(t, drafts)
}
