package ticket

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cache2k25/registration-backend/internal/model"
)

// fakeRenderer records what it was asked to compile.
type fakeRenderer struct {
	name   string
	source string
	called bool
}

func (f *fakeRenderer) Render(_ context.Context, name string, source []byte) ([]byte, error) {
	f.called = true
	f.name = name
	f.source = string(source)
	return []byte("%PDF-fake"), nil
}

func sampleRegistration() *model.Registration {
	gid := "asha_main"
	return &model.Registration{
		ID:             7,
		RegistrationID: "C25-7KQX2MNP",
		Name:           "Asha Rao",
		EventName:      "Valorant Esports Showdown",
		Kind:           model.KindEsports,
		GameID:         &gid,
		Verified:       true,
		TeamMembers: []model.TeamMember{
			{Name: "Ravi", GameID: strPtr("ravi_07")},
			{Name: "Meera"},
		},
	}
}

func strPtr(s string) *string { return &s }

func TestGenerate_UnverifiedProducesNothing(t *testing.T) {
	reg := sampleRegistration()
	reg.Verified = false
	r := &fakeRenderer{}

	_, err := Generate(context.Background(), reg, r)
	require.ErrorIs(t, err, ErrNotVerified)
	assert.False(t, r.called, "renderer must not run for unverified registrations")
}

func TestGenerate_Verified(t *testing.T) {
	r := &fakeRenderer{}
	pdf, err := Generate(context.Background(), sampleRegistration(), r)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), pdf)
	assert.Equal(t, "ticket-C25-7KQX2MNP", r.name)
	assert.Contains(t, r.source, "C25-7KQX2MNP")
	assert.Contains(t, r.source, "Valorant Esports Showdown")
}

func TestBuildDocument_EsportsListsGameIDs(t *testing.T) {
	doc := BuildDocument(sampleRegistration())
	assert.Contains(t, doc, `\textbf{Game ID:} asha\_main`)
	assert.Contains(t, doc, `\item Ravi (Game ID: ravi\_07)`)
	assert.Contains(t, doc, `\item Meera (Game ID: N/A)`)
}

func TestBuildDocument_StandardOmitsGameIDs(t *testing.T) {
	reg := sampleRegistration()
	reg.Kind = model.KindStandard
	reg.EventName = "Code Sprint"

	doc := BuildDocument(reg)
	assert.NotContains(t, doc, "Game ID")
	assert.Contains(t, doc, `\item Ravi`)
	assert.Contains(t, doc, `\item Meera`)
}

func TestBuildDocument_SoloNoTeamSection(t *testing.T) {
	reg := sampleRegistration()
	reg.TeamMembers = nil
	doc := BuildDocument(reg)
	assert.NotContains(t, doc, "Team Members")
}

func TestBuildDocument_EscapesUserText(t *testing.T) {
	reg := sampleRegistration()
	reg.EventName = "AI & Robotics 100% Esports"
	reg.Kind = model.KindStandard
	doc := BuildDocument(reg)
	assert.Contains(t, doc, `AI \& Robotics 100\% Esports`)
}
