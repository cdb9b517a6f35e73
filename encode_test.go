package oauth1

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentEncode(t *testing.T) {
	t.Run("Unreserved", func(t *testing.T) {
		assert.Equal(t, "abc", PercentEncode("abc"))

		const s = "AZaz09-._~"
		assert.Equal(t, s, PercentEncode(s))
	})

	t.Run("Space", func(t *testing.T) {
		// 空格必须转义为 %20 ，不能是“+”。
		assert.Equal(t, "a%20b", PercentEncode("a b"))
		assert.Equal(t, "%20%2B%3D", PercentEncode(" +="))
	})

	t.Run("Symbols", func(t *testing.T) {
		assert.Equal(t, "%2B%3D%26%2F%3A%3F%25", PercentEncode("+=&/:?%"))
	})

	t.Run("UppercaseHex", func(t *testing.T) {
		assert.Equal(t, "%2F", PercentEncode("/"))
		assert.Equal(t, "%0A", PercentEncode("\n"))
	})

	t.Run("Utf8", func(t *testing.T) {
		// 先按 UTF-8 取字节，再逐字节转义。
		assert.Equal(t, "%E6%B5%8B%E8%AF%95", PercentEncode("测试"))
	})

	t.Run("Mixed", func(t *testing.T) {
		assert.Equal(t, "file%3Dvacation.jpg", PercentEncode("file=vacation.jpg"))
		assert.Equal(t, "http%3A%2F%2Ftemp.org%2Fpath", PercentEncode("http://temp.org/path"))
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, "", PercentEncode(""))
	})
}
