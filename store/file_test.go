package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IjehJoel987/Tekegram/domain"
	"github.com/IjehJoel987/Tekegram/session"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	return NewFileStore(path, WithLoadDebounce(0))
}

func sampleSnapshot() *Snapshot {
	snap := NewSnapshot()
	snap.Users[12345] = &domain.UserProfile{
		Name:                 "Ada",
		Phone:                "08012345678",
		LastRequest:          "ORD1234",
		NotificationsEnabled: true,
	}
	snap.Orders["ORD1234"] = &domain.Order{
		UserID:    12345,
		Item:      "battery",
		Model:     "Dell",
		UnitPrice: 13000,
		Quantity:  2,
		Total:     26000,
		Status:    domain.OrderPendingConfirmation,
		Timestamp: "2026-01-02 10:30:00",
	}
	snap.Sessions[12345] = session.Record{
		Flow: session.KindPurchase,
		Data: json.RawMessage(`{"step":"address","item":"battery","order_id":"ORD1234"}`),
	}
	snap.Catalog = domain.DefaultCatalog()
	snap.AdminIDs = []int64{99}
	snap.Technicians = domain.DefaultTechnicians()
	snap.Payment = domain.DefaultPaymentInfo()
	snap.Tips = domain.DefaultTips()
	snap.InquiryResponses = domain.DefaultInquiryResponses()
	return snap
}

func TestLoadMissingFileCreatesFresh(t *testing.T) {
	fs := newTestStore(t)
	snap, err := fs.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Empty(t, snap.Users)

	// The fresh snapshot is persisted immediately.
	_, err = os.Stat(fs.Path())
	require.NoError(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	fs := newTestStore(t)
	want := sampleSnapshot()
	require.NoError(t, fs.Save(context.Background(), want))

	got, err := NewFileStore(fs.Path(), WithLoadDebounce(0)).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want.Users, got.Users)
	assert.Equal(t, want.Orders, got.Orders)
	assert.Equal(t, want.Catalog, got.Catalog)
	assert.Equal(t, want.AdminIDs, got.AdminIDs)
	assert.Equal(t, want.Payment, got.Payment)

	// The raw session bytes are reformatted by the indented write, so the
	// records are compared structurally.
	require.Len(t, got.Sessions, 1)
	gotRec := got.Sessions[12345]
	assert.Equal(t, want.Sessions[12345].Flow, gotRec.Flow)
	assert.JSONEq(t, string(want.Sessions[12345].Data), string(gotRec.Data))
}

func TestSaveRefreshesBackup(t *testing.T) {
	fs := newTestStore(t)
	first := sampleSnapshot()
	require.NoError(t, fs.Save(context.Background(), first))

	second := sampleSnapshot()
	second.Orders["ORD1234"].Status = domain.OrderConfirmed
	require.NoError(t, fs.Save(context.Background(), second))

	backup, err := readSnapshot(fs.Path() + ".backup")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPendingConfirmation, backup.Orders["ORD1234"].Status)

	primary, err := readSnapshot(fs.Path())
	require.NoError(t, err)
	assert.Equal(t, domain.OrderConfirmed, primary.Orders["ORD1234"].Status)
}

func TestLoadFallsBackToBackup(t *testing.T) {
	fs := newTestStore(t)
	want := sampleSnapshot()
	require.NoError(t, fs.Save(context.Background(), want))
	require.NoError(t, fs.Save(context.Background(), want))

	// Simulate a torn write on the primary.
	require.NoError(t, os.WriteFile(fs.Path(), []byte(`{"orders": {"ORD`), 0o644))

	got, err := NewFileStore(fs.Path(), WithLoadDebounce(0)).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want.Orders, got.Orders)

	// The primary is healed from the backup.
	healed, err := readSnapshot(fs.Path())
	require.NoError(t, err)
	assert.Equal(t, want.Orders, healed.Orders)

	// The heal must not overwrite the backup with the corrupt primary:
	// until the next save it is the only other good copy.
	backup, err := readSnapshot(fs.Path() + ".backup")
	require.NoError(t, err)
	assert.Equal(t, want.Orders, backup.Orders)
}

func TestLoadIgnoresStrayTempFile(t *testing.T) {
	fs := newTestStore(t)
	want := sampleSnapshot()
	require.NoError(t, fs.Save(context.Background(), want))

	// A crash between writing the temp file and renaming it leaves a stray
	// sibling behind; the committed snapshot must still load.
	stray := fs.Path() + ".tmp-1234"
	require.NoError(t, os.WriteFile(stray, []byte(`{"orders": {"OR`), 0o644))

	got, err := NewFileStore(fs.Path(), WithLoadDebounce(0)).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want.Orders, got.Orders)
	assert.Equal(t, want.Users, got.Users)
}

func TestLoadBothCopiesBadIsFatal(t *testing.T) {
	fs := newTestStore(t)
	require.NoError(t, os.WriteFile(fs.Path(), []byte("not json"), 0o644))
	require.NoError(t, os.WriteFile(fs.Path()+".backup", []byte("also not json"), 0o644))

	_, err := fs.Load(context.Background())
	require.Error(t, err)
}

func TestLoadDebounceReusesSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	fs := NewFileStore(path)

	snap, err := fs.Load(context.Background())
	require.NoError(t, err)
	snap.Tips["x"] = "y"

	again, err := fs.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "y", again.Tips["x"], "within the debounce window the cached snapshot is returned")
}

func TestLoadNormalizesNullCollections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"orders": null}`), 0o644))

	snap, err := NewFileStore(path, WithLoadDebounce(0)).Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap.Orders)
	require.NotNil(t, snap.Users)
	require.NotNil(t, snap.Sessions)
	require.NotNil(t, snap.Tips)
}
