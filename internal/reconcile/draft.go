package reconcile

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"easy2go/internal/session"
)

// Company-profile defaults pre-filled into every new draft. These come
// from the exporter's own records until a profile endpoint exists.
var (
	defaultExporter = Exporter{
		Name:    "LONG LINK TRADING LTD",
		Address: "ADD: 3 ZHONG SHAN 3RD STREET LUING, PLAZA ZHONG SHAN ZHONG SHAN CHINA, 528400",
	}

	defaultLogistics = [3]string{"Yantian, China", "Dublin, Ireland", "By sea"}
)

// GenInvoiceNo produces a fresh invoice number from the current time.
func GenInvoiceNo(now time.Time) string {
	ts := fmt.Sprintf("%d", now.UnixMilli())
	return "GSAM" + ts[len(ts)-6:]
}

// NewDraft assembles the create screen's initial form.
func NewDraft(now time.Time) Form {
	return Form{
		Exporter:           defaultExporter,
		InvoiceNo:          GenInvoiceNo(now),
		InvoiceDate:        now.Format("2006-01-02"),
		TradeTerms:         "FOB",
		Currency:           "CNY",
		LogisticsFrom:      defaultLogistics[0],
		LogisticsTo:        defaultLogistics[1],
		LogisticsTransport: defaultLogistics[2],
	}
}

// LocalDraft is a not-yet-submitted document kept in the session store.
type LocalDraft struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
	Form      Form   `json:"form"`
}

// SaveLocalDraft validates the form and prepends it to the local draft
// list, returning the assigned id.
func SaveLocalDraft(store *session.Store, f Form, now time.Time) (string, error) {
	if err := ValidateForm(f); err != nil {
		return "", err
	}

	drafts, err := LocalDrafts(store)
	if err != nil {
		return "", err
	}

	draft := LocalDraft{
		ID:        "R-" + uuid.NewString(),
		CreatedAt: now.UTC().Format(time.RFC3339),
		Form:      f,
	}
	drafts = append([]LocalDraft{draft}, drafts...)

	data, err := json.Marshal(drafts)
	if err != nil {
		return "", fmt.Errorf("encode drafts: %w", err)
	}
	if err := store.Set(session.KeyDrafts, string(data)); err != nil {
		return "", err
	}
	return draft.ID, nil
}

// LocalDrafts reads the local draft list, newest first.
func LocalDrafts(store *session.Store) ([]LocalDraft, error) {
	raw, ok := store.Get(session.KeyDrafts)
	if !ok || raw == "" {
		return nil, nil
	}
	var drafts []LocalDraft
	if err := json.Unmarshal([]byte(raw), &drafts); err != nil {
		return nil, fmt.Errorf("parse drafts: %w", err)
	}
	return drafts, nil
}
