package entity

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLeadDefaults(t *testing.T) {
	lead, err := NewLead("a@b.com", "(11) 99999-9999", "")
	require.NoError(t, err)

	assert.Equal(t, "a@b.com", lead.Email)
	assert.Equal(t, "11999999999", lead.Phone)
	assert.Equal(t, DefaultSource, lead.Source)
	assert.False(t, lead.WhatsAppJoined)
	assert.False(t, lead.EbookSent)
	assert.Equal(t, lead.CreatedAt, lead.UpdatedAt)
	assert.Equal(t, time.UTC, lead.CreatedAt.Location())

	parsed, err := uuid.Parse(lead.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())
}

func TestNewLeadKeepsEmailCase(t *testing.T) {
	lead, err := NewLead("Maria.Silva@Exemplo.com.br", "11999999999", "instagram")
	require.NoError(t, err)
	assert.Equal(t, "Maria.Silva@Exemplo.com.br", lead.Email)
	assert.Equal(t, "instagram", lead.Source)
}

func TestNewLeadUniqueIDs(t *testing.T) {
	a, err := NewLead("a@b.com", "11999999999", "")
	require.NoError(t, err)
	b, err := NewLead("a@b.com", "11999999999", "")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestNewLeadInvalidEmail(t *testing.T) {
	for _, email := range []string{"", "   ", "invalid-email", "a@", "@b.com", "a b@c.com"} {
		_, err := NewLead(email, "11999999999", "")

		var ve *ValidationError
		require.ErrorAs(t, err, &ve, email)
		assert.Equal(t, "email", ve.Field)
	}
}

func TestNewLeadInvalidPhone(t *testing.T) {
	_, err := NewLead("a@b.com", "123", "")

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "phone", ve.Field)
}

func TestNewLeadSourceTooLong(t *testing.T) {
	_, err := NewLead("a@b.com", "11999999999", strings.Repeat("x", SourceMaxLength+1))

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "source", ve.Field)
}

func TestRestoreLeadNormalizesTimezone(t *testing.T) {
	sp := time.FixedZone("BRT", -3*60*60)
	created := time.Date(2026, 1, 2, 9, 0, 0, 0, sp)

	lead := RestoreLead("id-1", "a@b.com", "11999999999", "landing_page", created, created.Add(time.Hour), true, false)

	assert.Equal(t, time.UTC, lead.CreatedAt.Location())
	assert.True(t, lead.CreatedAt.Equal(created))
	assert.True(t, lead.WhatsAppJoined)
	assert.False(t, lead.EbookSent)
}

func TestLeadFlagValid(t *testing.T) {
	assert.True(t, FlagWhatsAppJoined.Valid())
	assert.True(t, FlagEbookSent.Valid())
	assert.False(t, LeadFlag("email").Valid())
}
