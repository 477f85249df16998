package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IjehJoel987/Tekegram/domain"
)

func TestManagerStartReplacesActiveFlow(t *testing.T) {
	m := NewManager()
	m.Set(1, &Purchase{Step: PurchaseModel, Item: "battery"})
	require.True(t, m.InProgress(1))

	m.Set(1, &Track{})
	f, ok := m.Get(1)
	require.True(t, ok)
	assert.Equal(t, KindTrack, f.Kind())
	assert.Equal(t, 1, m.Count())
}

func TestManagerClear(t *testing.T) {
	m := NewManager()
	assert.False(t, m.Clear(7))

	m.Set(7, &Callback{})
	assert.True(t, m.Clear(7))
	assert.False(t, m.InProgress(7))
}

func TestFlowRoundTrip(t *testing.T) {
	flows := []Flow{
		&Purchase{Step: PurchaseQuantity, Item: "screen", OrderID: "ORD1234"},
		&IssueReport{Step: IssueDescription, IssueType: "hardware issue", IssueID: "ISS5678"},
		&Callback{},
		&Track{},
		&InquiryOther{},
		&Profile{Step: ProfileEmail},
		&Price{Step: PriceUpdate, Item: "battery"},
		&TechnicianEdit{
			Action: TechEdit,
			Step:   TechStepValue,
			Index:  1,
			Field:  domain.TechRating,
		},
		&Payment{Field: domain.PaymentAccountNumber},
		&Content{Target: ContentResponses, Step: ContentBody, Title: "boot"},
	}
	for _, f := range flows {
		rec, err := Encode(f)
		require.NoError(t, err, "encode %s", f.Kind())
		got, err := Decode(rec)
		require.NoError(t, err, "decode %s", f.Kind())
		assert.Equal(t, f, got)
	}
}

func TestDecodeUnknownFlow(t *testing.T) {
	_, err := Decode(Record{Flow: "time_travel"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown flow")
}

func TestExportRestore(t *testing.T) {
	m := NewManager()
	m.Set(10, &Purchase{Step: PurchaseAddress, Item: "keyboard", OrderID: "ORD4242"})
	m.Set(11, &Profile{Step: ProfileName})

	records, err := m.Export()
	require.NoError(t, err)
	require.Len(t, records, 2)

	restored := NewManager()
	require.NoError(t, restored.Restore(records))
	f, ok := restored.Get(10)
	require.True(t, ok)
	assert.Equal(t, &Purchase{Step: PurchaseAddress, Item: "keyboard", OrderID: "ORD4242"}, f)
	assert.Equal(t, 2, restored.Count())
}

func TestRestoreSkipsBadRecords(t *testing.T) {
	m := NewManager()
	err := m.Restore(map[int64]Record{
		1: {Flow: KindTrack},
		2: {Flow: "bogus"},
	})
	require.Error(t, err)
	assert.True(t, m.InProgress(1))
	assert.False(t, m.InProgress(2))
}

func TestFreeTextSteps(t *testing.T) {
	assert.False(t, (&Purchase{Step: PurchaseModel}).FreeText())
	assert.False(t, (&Purchase{Step: PurchaseQuantity}).FreeText())
	assert.True(t, (&Purchase{Step: PurchaseAddress}).FreeText())
	assert.True(t, (&IssueReport{Step: IssueDescription}).FreeText())
	assert.True(t, (&Callback{}).FreeText())
	assert.False(t, (&Track{}).FreeText())
	assert.False(t, (&Profile{Step: ProfilePhone}).FreeText())
}

func TestNextProfileStep(t *testing.T) {
	order := []ProfileStep{ProfileName, ProfilePhone, ProfileEmail, ProfileDepartment, ProfileHall, ProfileRoom}
	for i := 0; i < len(order)-1; i++ {
		assert.Equal(t, order[i+1], NextProfileStep(order[i]))
	}
	assert.Equal(t, ProfileStep(""), NextProfileStep(ProfileRoom))
}
