package profile

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "dashed", input: "963-258-7410", want: "(963) 258-7410"},
		{name: "bare digits", input: "9632587410", want: "(963) 258-7410"},
		{name: "country code", input: "+1 (963) 258-7410", want: "(963) 258-7410"},
		{name: "dotted eleven", input: "1.963.258.7410", want: "(963) 258-7410"},
		{name: "already canonical", input: "(963) 258-7410", want: "(963) 258-7410"},
		{name: "too short", input: "258-7410", wantErr: true},
		{name: "eleven without leading one", input: "29632587410", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhone(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				var fe FieldError
				require.True(t, errors.As(err, &fe))
				assert.Equal(t, CodeInvalidPhoneFormat, fe.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizePhone_Idempotent(t *testing.T) {
	inputs := []string{"963-258-7410", "19632587410", "(555) 010 0199"}
	for _, in := range inputs {
		once, err := NormalizePhone(in)
		require.NoError(t, err)
		twice, err := NormalizePhone(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	}
}

func TestNormalizePhone_ReportsDigitCount(t *testing.T) {
	_, err := NormalizePhone("12345")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "you provided 5 digits")
}

func TestNormalizeURL(t *testing.T) {
	assert.Equal(t, "", NormalizeURL("  "))
	assert.Equal(t, "https://example.com", NormalizeURL("example.com"))
	assert.Equal(t, "http://example.com", NormalizeURL("http://example.com"))
	assert.Equal(t, "HTTPS://example.com", NormalizeURL("HTTPS://example.com"))
}

func TestNormalizeLinkedIn(t *testing.T) {
	got, err := NormalizeLinkedIn("linkedin.com/in/janedoe")
	require.NoError(t, err)
	assert.Equal(t, "https://linkedin.com/in/janedoe", got)

	got, err = NormalizeLinkedIn("")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = NormalizeLinkedIn("https://example.com/janedoe")
	require.Error(t, err)
	var fe FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, CodeInvalidLinkedInURL, fe.Code)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Time
		ongoing bool
		isNil   bool
		wantErr bool
	}{
		{input: "2020-01-15", want: time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC)},
		{input: "2020-03", want: time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)},
		{input: "03/2020", want: time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)},
		{input: "3/2020", want: time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)},
		{input: "11-2019", want: time.Date(2019, 11, 1, 0, 0, 0, 0, time.UTC)},
		{input: "2018", want: time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)},
		{input: "2021-06-01T00:00:00Z", want: time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)},
		{input: "Present", ongoing: true, isNil: true},
		{input: "current", ongoing: true, isNil: true},
		{input: "", isNil: true},
		{input: "13/2020", wantErr: true},
		{input: "last spring", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ongoing, err := ParseDate(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				var fe FieldError
				require.True(t, errors.As(err, &fe))
				assert.Equal(t, CodeInvalidDateFormat, fe.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.ongoing, ongoing)
			if tt.isNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "got %v", got)
		})
	}
}

func TestNormalizeGPA(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  *float64
	}{
		{name: "four point scale", input: 3.756, want: ptr(3.76)},
		{name: "ten point scale", input: 8.5, want: ptr(3.4)},
		{name: "percentage", input: 85.0, want: ptr(3.4)},
		{name: "percentage string", input: " 85 ", want: ptr(3.4)},
		{name: "above one hundred clamps", input: 120.0, want: ptr(4.0)},
		{name: "exactly four", input: "4", want: ptr(4.0)},
		{name: "non-numeric", input: "A+", want: nil},
		{name: "empty string", input: "", want: nil},
		{name: "nil", input: nil, want: nil},
		{name: "NaN string", input: "NaN", want: nil},
		{name: "infinity string", input: "+Inf", want: nil},
		{name: "NaN float", input: math.NaN(), want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeGPA(tt.input)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 0.0001)
		})
	}
}

func TestCheckSummary(t *testing.T) {
	assert.NoError(t, CheckSummary(""))
	assert.NoError(t, CheckSummary("One. Two! Three? Four. Five."))

	err := CheckSummary("One. Two. Three. Four. Five. Six.")
	require.Error(t, err)
	var fe FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, CodeSummaryTooLong, fe.Code)
}

func ptr(f float64) *float64 {
	return &f
}
