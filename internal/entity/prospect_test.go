package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFunnelIsForwardOnly(t *testing.T) {
	order := []ProspectStatus{
		StatusPending,
		StatusConnectionSent,
		StatusConnected,
		StatusMessageSent,
		StatusReplied,
		StatusConverted,
	}

	for i, from := range order {
		for j, to := range order {
			got := from.CanAdvanceTo(to)
			if j > i {
				assert.True(t, got, "%s should advance to %s", from, to)
			} else {
				assert.False(t, got, "%s must not move to %s", from, to)
			}
		}
	}
}

func TestStatusCanSkipIntermediateStages(t *testing.T) {
	// A prospect who replies before the first scheduled message still jumps
	// straight to REPLIED.
	assert.True(t, StatusConnected.CanAdvanceTo(StatusReplied))
	assert.True(t, StatusConnectionSent.CanAdvanceTo(StatusConverted))
}

func TestUnknownStatusIsInvalid(t *testing.T) {
	unknown := ProspectStatus("GHOSTED")

	assert.False(t, unknown.Valid())
	assert.Equal(t, -1, unknown.Rank())
	assert.False(t, StatusPending.CanAdvanceTo(unknown))
}

func TestNewProspectDefaultsToPending(t *testing.T) {
	p, err := NewProspect("camp-1", "Ana", "Acme", "Technology", "https://linkedin.com/in/ana")

	assert.NoError(t, err)
	assert.Equal(t, StatusPending, p.Status)
	assert.NotEmpty(t, p.ID)
	assert.Nil(t, p.ConnectionSentAt)
	assert.Nil(t, p.LastContactedAt)
}

func TestNewProspectValidation(t *testing.T) {
	_, err := NewProspect("camp-1", "", "Acme", "Technology", "https://linkedin.com/in/ana")
	assert.Error(t, err)

	_, err = NewProspect("camp-1", "Ana", "", "", "")
	assert.Error(t, err)

	_, err = NewProspect("", "Ana", "Acme", "Technology", "https://linkedin.com/in/ana")
	assert.Error(t, err)

	// Company and industry are optional; personalization falls back.
	_, err = NewProspect("camp-1", "Ana", "", "", "https://linkedin.com/in/ana")
	assert.NoError(t, err)
}
