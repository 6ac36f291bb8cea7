package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuotationStatusJSON(t *testing.T) {
	out, err := json.Marshal(QuotationStatusAccepted)
	require.NoError(t, err)
	assert.JSONEq(t, `"accepted"`, string(out))

	var s QuotationStatus
	require.NoError(t, json.Unmarshal([]byte(`"Sent"`), &s))
	assert.Equal(t, QuotationStatusSent, s)

	require.NoError(t, json.Unmarshal([]byte(`4`), &s))
	assert.Equal(t, QuotationStatusExpired, s)

	assert.Error(t, json.Unmarshal([]byte(`"approved"`), &s))
	assert.Error(t, json.Unmarshal([]byte(`9`), &s))
}

func TestQuotationStatusString(t *testing.T) {
	assert.Equal(t, "draft", QuotationStatusDraft.String())
	assert.Equal(t, "QuotationStatus(7)", QuotationStatus(7).String())
	assert.False(t, QuotationStatus(-1).IsValid())
}

func TestQuotationStatusExpectedNext(t *testing.T) {
	assert.True(t, QuotationStatusDraft.ExpectedNext(QuotationStatusSent))
	assert.True(t, QuotationStatusSent.ExpectedNext(QuotationStatusExpired))
	assert.True(t, QuotationStatusSent.ExpectedNext(QuotationStatusSent))
	assert.False(t, QuotationStatusDraft.ExpectedNext(QuotationStatusAccepted))
	assert.False(t, QuotationStatusRejected.ExpectedNext(QuotationStatusDraft))
}

func TestQuotationStatusScan(t *testing.T) {
	var s QuotationStatus
	require.NoError(t, s.Scan(int64(3)))
	assert.Equal(t, QuotationStatusRejected, s)
	require.NoError(t, s.Scan(nil))
	assert.Equal(t, QuotationStatusDraft, s)
	assert.Error(t, s.Scan("sent"))
}

func TestTaxTypeJSON(t *testing.T) {
	out, err := json.Marshal(TaxTypeInclusive)
	require.NoError(t, err)
	assert.JSONEq(t, `"inclusive"`, string(out))

	var tt TaxType
	require.NoError(t, json.Unmarshal([]byte(`"EXCLUSIVE"`), &tt))
	assert.Equal(t, TaxTypeExclusive, tt)
	assert.Error(t, json.Unmarshal([]byte(`"gross"`), &tt))
}
