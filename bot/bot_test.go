package bot

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	coreconfig "github.com/IjehJoel987/Tekegram/core/config"
	"github.com/IjehJoel987/Tekegram/domain"
	"github.com/IjehJoel987/Tekegram/session"
	"github.com/IjehJoel987/Tekegram/store"
)

const testRootOwner int64 = 99

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := &coreconfig.Config{}
	cfg.Telegram.Token = "test-token"
	cfg.Telegram.RootOwnerID = testRootOwner
	fs := store.NewFileStore(filepath.Join(t.TempDir(), "data.json"))
	app, err := New(cfg, store.NewSnapshot(), fs)
	require.NoError(t, err)
	return app
}

// fakeCtx implements the slice of tele.Context the handlers touch. Calls to
// anything else panic via the embedded nil interface, which is what we want
// in a test.
type fakeCtx struct {
	tele.Context
	user  *tele.User
	text  string
	photo *tele.Photo
	cb    *tele.Callback
	kv    map[string]any
	sent  []string
}

func newFakeCtx(userID int64) *fakeCtx {
	return &fakeCtx{
		user: &tele.User{ID: userID, FirstName: "Ada", Username: "ada"},
		kv:   map[string]any{},
	}
}

func (f *fakeCtx) Sender() *tele.User { return f.user }
func (f *fakeCtx) Chat() *tele.Chat   { return &tele.Chat{ID: f.user.ID} }
func (f *fakeCtx) Update() tele.Update {
	return tele.Update{ID: 1}
}
func (f *fakeCtx) Text() string { return f.text }
func (f *fakeCtx) Message() *tele.Message {
	return &tele.Message{Text: f.text, Photo: f.photo}
}
func (f *fakeCtx) Callback() *tele.Callback { return f.cb }
func (f *fakeCtx) Get(key string) any       { return f.kv[key] }
func (f *fakeCtx) Set(key string, v any)    { f.kv[key] = v }
func (f *fakeCtx) Send(what any, _ ...any) error {
	f.sent = append(f.sent, fmt.Sprint(what))
	return nil
}
func (f *fakeCtx) Edit(what any, _ ...any) error {
	f.sent = append(f.sent, fmt.Sprint(what))
	return nil
}
func (f *fakeCtx) EditOrSend(what any, _ ...any) error {
	f.sent = append(f.sent, fmt.Sprint(what))
	return nil
}
func (f *fakeCtx) Respond(_ ...*tele.CallbackResponse) error { return nil }

func (f *fakeCtx) lastSent() string {
	if len(f.sent) == 0 {
		return ""
	}
	return f.sent[len(f.sent)-1]
}

func (f *fakeCtx) typed(t *testing.T, app *App, text string) {
	t.Helper()
	f.text = text
	require.NoError(t, app.ManagerHandler(f))
}

func onlyRequestID(t *testing.T, app *App, kind domain.RequestKind) string {
	t.Helper()
	ids := app.Registry().RequestIDs(kind)
	require.Len(t, ids, 1)
	return ids[0]
}

func TestPurchaseFlowCompletes(t *testing.T) {
	app := newTestApp(t)
	c := newFakeCtx(7)
	c.cb = &tele.Callback{Data: cbPurchaseItem + "|battery"}

	require.NoError(t, app.handlePurchaseItem(c))
	id := onlyRequestID(t, app, domain.KindOrder)
	order, ok := app.Registry().Order(id)
	require.True(t, ok)
	assert.Equal(t, domain.OrderCollectingInfo, order.Status)
	assert.True(t, app.Sessions().InProgress(7))

	c.typed(t, app, "it's a dell inspiron")
	order, _ = app.Registry().Order(id)
	assert.Equal(t, "Dell", order.Model)
	assert.Equal(t, 13000, order.UnitPrice)

	c.typed(t, app, "2")
	c.typed(t, app, "Room 12, Peter Hall")

	order, _ = app.Registry().Order(id)
	assert.Equal(t, domain.OrderPendingConfirmation, order.Status)
	assert.Equal(t, 26000, order.Total)
	assert.Equal(t, "Room 12, Peter Hall", order.Address)
	assert.False(t, app.Sessions().InProgress(7))
	assert.Contains(t, c.lastSent(), "₦26,000")
}

func TestPurchaseQuantityRejectsJunk(t *testing.T) {
	app := newTestApp(t)
	c := newFakeCtx(7)
	c.cb = &tele.Callback{Data: cbPurchaseItem + "|battery"}
	require.NoError(t, app.handlePurchaseItem(c))
	c.typed(t, app, "HP")

	c.typed(t, app, "two please")
	flow, _ := app.Sessions().Get(7)
	require.IsType(t, &session.Purchase{}, flow)
	assert.Equal(t, session.PurchaseQuantity, flow.(*session.Purchase).Step)
	assert.Contains(t, c.lastSent(), "valid number")
}

func TestMenuLabelCancelsFlow(t *testing.T) {
	app := newTestApp(t)
	c := newFakeCtx(7)
	app.Sessions().Set(7, &session.Purchase{Step: session.PurchaseModel, Item: "battery"})

	c.typed(t, app, menuTips)
	assert.False(t, app.Sessions().InProgress(7))
	assert.Contains(t, c.lastSent(), "Tips & Guides")
}

func TestFreeTextStepKeepsMenuLabel(t *testing.T) {
	app := newTestApp(t)
	c := newFakeCtx(7)
	app.Sessions().Set(7, &session.Callback{})

	// A free-text step must treat a menu label as plain input.
	c.typed(t, app, menuSettings)
	assert.True(t, app.Sessions().InProgress(7))
	assert.Contains(t, c.lastSent(), "valid phone")
}

func TestCallbackRequestCreatesRecord(t *testing.T) {
	app := newTestApp(t)
	c := newFakeCtx(7)
	app.Sessions().Set(7, &session.Callback{})

	c.typed(t, app, "08012345678 - laptop won't turn on")
	id := onlyRequestID(t, app, domain.KindCallback)
	cb, ok := app.Registry().Callback(id)
	require.True(t, ok)
	assert.Equal(t, domain.CallbackPending, cb.Status)
	assert.Contains(t, cb.PhoneAndIssue, "08012345678")
	assert.False(t, app.Sessions().InProgress(7))
}

func TestTrackUnknownID(t *testing.T) {
	app := newTestApp(t)
	c := newFakeCtx(7)
	app.Sessions().Set(7, &session.Track{})

	c.typed(t, app, "ORD9999")
	assert.False(t, app.Sessions().InProgress(7))
	assert.Contains(t, c.lastSent(), "not found")
}

func TestBareRequestIDLookup(t *testing.T) {
	app := newTestApp(t)
	id := app.Registry().CreateOrder(domain.Order{
		UserID: 7, Name: "Ada", Item: "battery", Model: "HP",
		Status: domain.OrderShipped, Timestamp: "2026-08-01 09:00:00",
	})

	c := newFakeCtx(7)
	c.text = strings.ToLower(id)
	require.NoError(t, app.handleText(c))
	assert.Contains(t, c.lastSent(), "Shipped")
}

func TestIssuePhotoCap(t *testing.T) {
	app := newTestApp(t)
	c := newFakeCtx(7)
	c.cb = &tele.Callback{Data: cbReportIssue + "|hardware"}
	require.NoError(t, app.handleReportType(c))
	id := onlyRequestID(t, app, domain.KindIssue)

	c.typed(t, app, "HP Pavilion 15")

	for i := 0; i < domain.MaxIssuePhotos+1; i++ {
		c.photo = &tele.Photo{File: tele.File{FileID: fmt.Sprintf("photo-%d", i)}}
		require.NoError(t, app.handlePhoto(c))
	}
	issue, _ := app.Registry().Issue(id)
	assert.Len(t, issue.Photos, domain.MaxIssuePhotos)
	assert.Contains(t, c.lastSent(), "limit")

	c.photo = nil
	c.typed(t, app, "screen flickers and the hinge is cracked")
	issue, _ = app.Registry().Issue(id)
	assert.Equal(t, domain.IssueUnderReview, issue.Status)
	assert.False(t, app.Sessions().InProgress(7))
}

func TestReceiptPhotoMovesLatestPayableOrder(t *testing.T) {
	app := newTestApp(t)
	reg := app.Registry()
	older := reg.CreateOrder(domain.Order{
		UserID: 7, Item: "battery", Status: domain.OrderPendingConfirmation,
		Timestamp: "2026-08-01 09:00:00",
	})
	newer := reg.CreateOrder(domain.Order{
		UserID: 7, Item: "screen", Status: domain.OrderConfirmed,
		Timestamp: "2026-08-02 09:00:00",
	})
	reg.CreateOrder(domain.Order{
		UserID: 8, Item: "charger", Status: domain.OrderPendingConfirmation,
		Timestamp: "2026-08-03 09:00:00",
	})

	c := newFakeCtx(7)
	c.photo = &tele.Photo{File: tele.File{FileID: "receipt"}}
	require.NoError(t, app.handlePhoto(c))

	got, _ := reg.Order(newer)
	assert.Equal(t, domain.OrderPaymentSubmitted, got.Status)
	untouched, _ := reg.Order(older)
	assert.Equal(t, domain.OrderPendingConfirmation, untouched.Status)
}

func TestAdminOnlyCallbackGate(t *testing.T) {
	app := newTestApp(t)
	called := false
	h := app.adminOnly(func(tele.Context) error {
		called = true
		return nil
	})

	c := newFakeCtx(7)
	require.NoError(t, h(c))
	assert.False(t, called)

	root := newFakeCtx(testRootOwner)
	require.NoError(t, h(root))
	assert.True(t, called)
}

func TestSetStatusCallbackTransitions(t *testing.T) {
	app := newTestApp(t)
	id := app.Registry().CreateCallback(domain.CallbackRequest{
		UserID: 7, Name: "Ada", PhoneAndIssue: "080... no sound",
		Status: domain.CallbackPending, Timestamp: "2026-08-01 09:00:00",
	})

	c := newFakeCtx(testRootOwner)
	c.cb = &tele.Callback{Data: cbSetStatus + "|" + id + "|called"}
	require.NoError(t, app.handleSetStatus(c))

	status, ok := app.Registry().RequestStatus(id)
	require.True(t, ok)
	assert.Equal(t, domain.CallbackCalled, status)
	assert.Contains(t, c.lastSent(), id, "the admin view is re-rendered after the update")
}

func TestProfileSkipAndValidation(t *testing.T) {
	app := newTestApp(t)
	app.Registry().EnsureProfile(7)
	c := newFakeCtx(7)
	app.Sessions().Set(7, &session.Profile{Step: session.ProfilePhone})

	c.typed(t, app, "banana")
	flow, _ := app.Sessions().Get(7)
	assert.Equal(t, session.ProfilePhone, flow.(*session.Profile).Step)

	c.typed(t, app, "skip")
	flow, _ = app.Sessions().Get(7)
	assert.Equal(t, session.ProfileEmail, flow.(*session.Profile).Step)
	profile, _ := app.Registry().Profile(7)
	assert.Empty(t, profile.Phone)

	c.typed(t, app, "not-an-email")
	flow, _ = app.Sessions().Get(7)
	assert.Equal(t, session.ProfileEmail, flow.(*session.Profile).Step)

	c.typed(t, app, "ada@example.com")
	profile, _ = app.Registry().Profile(7)
	assert.Equal(t, "ada@example.com", profile.Email)
}

func TestParsePriceLine(t *testing.T) {
	cases := []struct {
		in   string
		want priceLine
		ok   bool
	}{
		{"HP:12000", priceLine{model: "HP", price: 12000}, true},
		{"  Dell : 9500 ", priceLine{model: "Dell", price: 9500}, true},
		{"HP:", priceLine{model: "HP", delete: true}, true},
		{"done", priceLine{done: true}, true},
		{"DONE", priceLine{done: true}, true},
		{"HP", priceLine{}, false},
		{"HP:free", priceLine{}, false},
		{"HP:-5", priceLine{}, false},
		{":12000", priceLine{}, false},
	}
	for _, tc := range cases {
		got, err := parsePriceLine(tc.in)
		if !tc.ok {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestNormalizeItemKey(t *testing.T) {
	assert.Equal(t, "ram_16gb", normalizeItemKey("  RAM 16GB "))
	assert.Equal(t, "battery", normalizeItemKey("Battery"))
	assert.Equal(t, "", normalizeItemKey("   "))
}

func TestPriceAdminFlow(t *testing.T) {
	app := newTestApp(t)
	c := newFakeCtx(testRootOwner)
	c.cb = &tele.Callback{Data: cbPriceAddItem}
	require.NoError(t, app.handlePriceAddItem(c))

	c.cb = nil
	c.typed(t, app, "GPU Fan")
	c.typed(t, app, "HP:4500")
	c.typed(t, app, "Dell:5000")
	c.typed(t, app, "Dell:")
	c.typed(t, app, "done")

	models, ok := app.Registry().Models("gpu_fan")
	require.True(t, ok)
	assert.Equal(t, map[string]int{"HP": 4500}, models)
	assert.False(t, app.Sessions().InProgress(testRootOwner))
}
