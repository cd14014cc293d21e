package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToVND(t *testing.T) {
	assert.Equal(t, int64(12345), ToVND(12345.4))
	assert.Equal(t, int64(12346), ToVND(12345.5))
	assert.Equal(t, int64(12346), ToVND(12345.6))
	assert.Equal(t, int64(0), ToVND(0))
	assert.Equal(t, int64(30000), ToVND(300000*0.1))
}

func TestParseVND(t *testing.T) {
	t.Run("Integer", func(t *testing.T) {
		n, err := ParseVND("12345")
		assert.NoError(t, err)
		assert.Equal(t, int64(12345), n)
	})

	t.Run("Fractional rounds", func(t *testing.T) {
		n, err := ParseVND("12345.67")
		assert.NoError(t, err)
		assert.Equal(t, int64(12346), n)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := ParseVND("not-a-number")
		assert.Error(t, err)
	})
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "12.345₫", Format(12345))
	assert.Equal(t, "1.234.567₫", Format(1234567))
	assert.Equal(t, "0₫", Format(0))
	assert.Equal(t, "12.345 VND", FormatWithLabel(12345))
}
