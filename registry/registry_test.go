package registry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IjehJoel987/Tekegram/domain"
	"github.com/IjehJoel987/Tekegram/store"
)

const rootOwner int64 = 777

func newTestRegistry() *Registry {
	return New(rootOwner, store.NewSnapshot())
}

func TestNewSeedsDefaults(t *testing.T) {
	r := newTestRegistry()
	price, ok := r.Price("battery", "Dell")
	require.True(t, ok)
	assert.Equal(t, 13000, price)
	assert.NotEmpty(t, r.Technicians())
	assert.NotEmpty(t, r.Payment().BankName)
	assert.NotEmpty(t, r.Tips())
	assert.NotEmpty(t, r.Responses())
}

func TestNewKeepsExistingState(t *testing.T) {
	snap := store.NewSnapshot()
	snap.Catalog = domain.PriceCatalog{"mouse": {"Generic": 2000}}
	r := New(rootOwner, snap)
	_, ok := r.Price("battery", "Dell")
	assert.False(t, ok, "defaults must not overwrite a non-empty catalog")
	price, ok := r.Price("mouse", "Generic")
	require.True(t, ok)
	assert.Equal(t, 2000, price)
}

func TestEnsureProfileDefaults(t *testing.T) {
	r := newTestRegistry()
	p := r.EnsureProfile(42)
	assert.Equal(t, "None", p.LastRequest)
	assert.True(t, p.NotificationsEnabled)
	assert.Zero(t, p.Requests)
}

func TestCreateOrderAllocatesAndLinks(t *testing.T) {
	r := newTestRegistry()
	id := r.CreateOrder(domain.Order{UserID: 42, Item: "battery"})
	assert.True(t, domain.IsRequestID(id))
	assert.True(t, strings.HasPrefix(id, "ORD"))

	p, ok := r.Profile(42)
	require.True(t, ok)
	assert.Equal(t, 1, p.Requests)
	assert.Equal(t, id, p.LastRequest)
}

func TestAllocateIDRerollsOnCollision(t *testing.T) {
	r := newTestRegistry()
	// Force the first roll to collide with an existing id.
	first := r.CreateOrder(domain.Order{UserID: 1})
	rolls := 0
	r.randInt = func(n int) int {
		rolls++
		if rolls == 1 {
			taken := first[len("ORD"):]
			v := 0
			for _, c := range taken {
				v = v*10 + int(c-'0')
			}
			return v - 1000
		}
		if first == "ORD1042" {
			return 43
		}
		return 42
	}
	second := r.CreateOrder(domain.Order{UserID: 1})
	assert.NotEqual(t, first, second)
	assert.Equal(t, 2, rolls)
}

func TestDeleteOrderUnlinks(t *testing.T) {
	r := newTestRegistry()
	first := r.CreateOrder(domain.Order{UserID: 5})
	second := r.CreateOrder(domain.Order{UserID: 5})

	require.True(t, r.DeleteOrder(second))
	p, _ := r.Profile(5)
	assert.Equal(t, 1, p.Requests)
	assert.Equal(t, "None", p.LastRequest, "deleting the latest request resets the pointer")

	require.True(t, r.DeleteOrder(first))
	p, _ = r.Profile(5)
	assert.Zero(t, p.Requests)
	assert.Equal(t, "None", p.LastRequest)
	assert.False(t, r.DeleteOrder(first))
}

func TestRequestStatusAcrossKinds(t *testing.T) {
	r := newTestRegistry()
	oid := r.CreateOrder(domain.Order{UserID: 1, Status: domain.OrderCollectingInfo})
	iid := r.CreateIssue(domain.Issue{UserID: 1, Status: domain.IssueReported})
	cid := r.CreateCallback(domain.CallbackRequest{UserID: 1, Status: domain.CallbackPending})
	qid := r.CreateInquiry(domain.Inquiry{UserID: 1, Status: domain.InquiryPendingResponse})

	for id, want := range map[string]domain.Status{
		oid: domain.OrderCollectingInfo,
		iid: domain.IssueReported,
		cid: domain.CallbackPending,
		qid: domain.InquiryPendingResponse,
	} {
		got, ok := r.RequestStatus(id)
		require.True(t, ok, id)
		assert.Equal(t, want, got)
	}

	_, ok := r.RequestStatus("ORD0001")
	assert.False(t, ok)
	assert.True(t, r.SetRequestStatus(iid, domain.IssueResolved))
	got, _ := r.RequestStatus(iid)
	assert.Equal(t, domain.IssueResolved, got)
}

func TestAdminGate(t *testing.T) {
	r := newTestRegistry()
	assert.True(t, r.IsAdmin(rootOwner))
	assert.True(t, r.IsRootOwner(rootOwner))
	assert.False(t, r.IsAdmin(5))

	assert.True(t, r.AddAdmin(5))
	assert.False(t, r.AddAdmin(5), "second add is a no-op")
	assert.False(t, r.AddAdmin(rootOwner), "root owner is already an admin")
	assert.True(t, r.IsAdmin(5))
	assert.Equal(t, []int64{5, rootOwner}, r.Admins())

	require.ErrorIs(t, r.RemoveAdmin(rootOwner), ErrRootOwner)
	require.NoError(t, r.RemoveAdmin(5))
	assert.False(t, r.IsAdmin(5))
	require.Error(t, r.RemoveAdmin(5))
}

func TestCatalogMutations(t *testing.T) {
	r := newTestRegistry()
	assert.True(t, r.AddItem("Webcam"))
	assert.False(t, r.AddItem("webcam"), "item keys are case-insensitive")

	r.SetPrice("webcam", "Logitech", 15000)
	price, ok := r.Price("webcam", "Logitech")
	require.True(t, ok)
	assert.Equal(t, 15000, price)

	assert.True(t, r.DeleteModel("webcam", "Logitech"))
	_, ok = r.Models("webcam")
	assert.False(t, ok, "an item with no models is dropped")
	assert.False(t, r.DeleteModel("webcam", "Logitech"))
}

func TestTechnicianRoster(t *testing.T) {
	r := New(rootOwner, store.NewSnapshot())
	base := len(r.Technicians())

	n := r.AddTechnician(domain.Technician{Name: "New Tech", Rating: "4.0"})
	assert.Equal(t, base+1, n)

	require.NoError(t, r.UpdateTechnician(base, domain.TechFee, "N2,000"))
	tech, ok := r.Technician(base)
	require.True(t, ok)
	assert.Equal(t, "N2,000", tech.Fee)

	removed, err := r.RemoveTechnician(base)
	require.NoError(t, err)
	assert.Equal(t, "New Tech", removed.Name)
	assert.Len(t, r.Technicians(), base)

	_, err = r.RemoveTechnician(99)
	require.Error(t, err)
}

func TestExportRoundTrip(t *testing.T) {
	r := newTestRegistry()
	id := r.CreateOrder(domain.Order{UserID: 9, Item: "screen", Status: domain.OrderCollectingInfo})
	r.AddAdmin(5)
	r.SetTip("dust", "blow it out")

	snap := r.Export()
	r2 := New(rootOwner, snap)
	o, ok := r2.Order(id)
	require.True(t, ok)
	assert.Equal(t, "screen", o.Item)
	assert.True(t, r2.IsAdmin(5))
	body, ok := r2.Tip("dust")
	require.True(t, ok)
	assert.Equal(t, "blow it out", body)

	// Export must be a deep copy: mutating it cannot touch the registry.
	snap.Orders[id].Item = "tampered"
	o, _ = r.Order(id)
	assert.Equal(t, "screen", o.Item)
}
