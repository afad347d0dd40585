package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cache2k25/registration-backend/internal/model"
)

func validSubmission() Submission {
	return Submission{
		Name:         "Asha Rao",
		Contact:      "9000000001",
		Email:        "asha@example.com",
		College:      "NIT Trichy",
		RollNumber:   "21CS042",
		EventID:      "evt-01",
		EventName:    "Code Sprint",
		Amount:       "150",
		UTR:          "123456789012",
		PaymentPhone: "9876543210",
	}
}

func TestParse_UTR(t *testing.T) {
	cases := []struct {
		utr string
		ok  bool
	}{
		{"123456789012", true},
		{"12345", false},
		{"1234567890123", false},
		{"12345678901a", false},
		{"", false},
		{" 123456789012", false},
	}
	for _, tc := range cases {
		sub := validSubmission()
		sub.UTR = tc.utr
		_, err := Parse(sub)
		if tc.ok {
			assert.NoError(t, err, "utr %q", tc.utr)
		} else {
			assert.ErrorIs(t, err, ErrInvalidUTR, "utr %q", tc.utr)
		}
	}
}

func TestParse_PaymentPhone(t *testing.T) {
	for _, phone := range []string{"987654321", "98765432100", "98765abc10", ""} {
		sub := validSubmission()
		sub.PaymentPhone = phone
		_, err := Parse(sub)
		assert.ErrorIs(t, err, ErrInvalidPhone, "phone %q", phone)
	}
}

// UTR is checked before the phone, so a submission failing both reports
// the UTR error.
func TestParse_RuleOrder(t *testing.T) {
	sub := validSubmission()
	sub.UTR = "bad"
	sub.PaymentPhone = "bad"
	_, err := Parse(sub)
	assert.ErrorIs(t, err, ErrInvalidUTR)
}

func TestParse_TeamMembers(t *testing.T) {
	sub := validSubmission()
	sub.TeamMembers = `[
		{"name":"Ravi","contact":"9000000002","email":"ravi@example.com","rollNumber":"21CS043","gameId":"ravi_07"},
		{"name":"Meera","contact":"9000000003","email":"meera@example.com","rollNumber":"21CS044"}
	]`

	reg, err := Parse(sub)
	require.NoError(t, err)
	require.Len(t, reg.TeamMembers, 2)
	assert.Equal(t, "Ravi", reg.TeamMembers[0].Name)
	require.NotNil(t, reg.TeamMembers[0].GameID)
	assert.Equal(t, "ravi_07", *reg.TeamMembers[0].GameID)
	assert.Equal(t, "Meera", reg.TeamMembers[1].Name)
	assert.Nil(t, reg.TeamMembers[1].GameID)
}

func TestParse_TeamMemberMissingField_RejectsBatch(t *testing.T) {
	sub := validSubmission()
	sub.TeamMembers = `[
		{"name":"Ravi","contact":"9000000002","email":"ravi@example.com","rollNumber":"21CS043"},
		{"name":"","contact":"9000000003","email":"meera@example.com","rollNumber":"21CS044"}
	]`
	_, err := Parse(sub)
	assert.ErrorIs(t, err, ErrMemberFieldMissing)
}

func TestParse_TeamMemberBadGameID(t *testing.T) {
	sub := validSubmission()
	sub.TeamMembers = `[{"name":"Ravi","contact":"9000000002","email":"ravi@example.com","rollNumber":"21CS043","gameId":"no spaces!"}]`
	_, err := Parse(sub)
	assert.ErrorIs(t, err, ErrMemberGameID)
}

func TestParse_TeamMembersNotJSON(t *testing.T) {
	sub := validSubmission()
	sub.TeamMembers = `{not json`
	_, err := Parse(sub)
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestParse_PrimaryGameID(t *testing.T) {
	sub := validSubmission()
	sub.GameID = "asha-main_1"
	reg, err := Parse(sub)
	require.NoError(t, err)
	require.NotNil(t, reg.GameID)
	assert.Equal(t, "asha-main_1", *reg.GameID)

	sub.GameID = "bad id!"
	_, err = Parse(sub)
	assert.ErrorIs(t, err, ErrGameID)
}

func TestParse_Normalization(t *testing.T) {
	sub := validSubmission()
	sub.Amount = "not-a-number"
	reg, err := Parse(sub)
	require.NoError(t, err)
	assert.Zero(t, reg.TransactionAmount)
	assert.False(t, reg.Verified)
	assert.False(t, reg.TransactionDate.IsZero())

	sub.Amount = "249.50"
	reg, err = Parse(sub)
	require.NoError(t, err)
	assert.Equal(t, 249.50, reg.TransactionAmount)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, model.KindEsports, Classify("Valorant Esports Showdown"))
	assert.Equal(t, model.KindStandard, Classify("Code Sprint"))
	// Case-sensitive on purpose.
	assert.Equal(t, model.KindStandard, Classify("valorant esports showdown"))
}
