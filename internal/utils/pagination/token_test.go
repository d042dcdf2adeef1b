package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	date := time.Date(2026, 7, 20, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(date, "auto-5f1c")
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedDate, decodedID, err := DecodeToken(token)
	assert.NoError(t, err)
	assert.True(t, date.Equal(decodedDate), "Date should match after decode")
	assert.Equal(t, "auto-5f1c", decodedID)

	// Zero time values survive a round trip
	zeroToken := EncodeToken(time.Time{}, "x")
	decodedZero, _, err := DecodeToken(zeroToken)
	assert.NoError(t, err)
	assert.True(t, decodedZero.IsZero())
}

func TestDecodeTokenError(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	noSeparator := base64.URLEncoding.EncodeToString([]byte("2026-07-20T00:00:00Z"))
	_, _, err = DecodeToken(noSeparator)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	badDate := base64.URLEncoding.EncodeToString([]byte("notadate|abc"))
	_, _, err = DecodeToken(badDate)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "date parse")
}

func TestAfter(t *testing.T) {
	cursor := time.Date(2026, 7, 20, 12, 0, 0, 0, time.UTC)

	assert.True(t, After(cursor.Add(-time.Minute), "a", cursor, "m"), "older rows come after")
	assert.False(t, After(cursor.Add(time.Minute), "z", cursor, "m"), "newer rows come before")
	assert.True(t, After(cursor, "n", cursor, "m"), "same date breaks ties by ID")
	assert.False(t, After(cursor, "m", cursor, "m"), "the cursor row itself is excluded")
}
