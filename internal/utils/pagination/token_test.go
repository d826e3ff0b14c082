package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeCursor(t *testing.T) {
	at := time.Date(2025, 5, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeCursor(at, "order-123")
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedAt, decodedID, err := DecodeCursor(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, at, decodedAt, "Timestamp should match after decode")
	assert.Equal(t, "order-123", decodedID, "ID should match after decode")

	// Zero time round-trips too.
	zeroToken := EncodeCursor(time.Time{}, "")
	decodedZero, decodedEmptyID, err := DecodeCursor(zeroToken)
	assert.NoError(t, err)
	assert.Equal(t, time.Time{}, decodedZero)
	assert.Empty(t, decodedEmptyID)
}

func TestDecodeCursor_Invalid(t *testing.T) {
	_, _, err := DecodeCursor("not-base64!!!")
	assert.Error(t, err, "Invalid base64 should error")

	_, _, err = DecodeCursor("aGVsbG8=") // "hello": no separator
	assert.Error(t, err, "Token without separator should error")
}

func TestMultiFieldToken(t *testing.T) {
	token := EncodeMultiFieldToken("a", "b", "c")
	fields, err := DecodeMultiFieldToken(token)
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, fields)
}
