package oauth1

import "strings"

/*
当前文件提供 OAuth 1.0 规定的百分号转义（ Percent-encoding ）。
*/

const _upperhex = "0123456789ABCDEF"

// PercentEncode 对给定的字符串做百分号转义，规则为 RFC 5849 3.6 节（即 RFC 3986 的严格形式）：
// 除 ASCII 字母、数字和“-”“.”“_”“~”四个字符外，其余字节一律转义为 %XX 格式，十六进制使用大写字母；
// 字符串先按 UTF-8 得到字节序列，再逐字节转义。
//
// 注意空格转义为“%20”而不是“+”，这点和 [net/url.QueryEscape] 不同，
// 混用两种转义是签名校验不过的常见原因。
func PercentEncode(s string) string {
	i := 0
	for ; i < len(s); i++ {
		if shouldEscape(s[i]) {
			break
		}
	}

	// 多数输入不需要转义，此时直接返回原字符串，不做拷贝。
	if i == len(s) {
		return s
	}

	b := new(strings.Builder)
	b.Grow(len(s) + 8)
	b.WriteString(s[:i])
	appendEncoded(b, s[i:])
	return b.String()
}

// appendEncoded 将 s 逐字节转义后追加到 b ，规则同 [PercentEncode] 。
func appendEncoded(b *strings.Builder, s string) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if shouldEscape(c) {
			b.WriteByte('%')
			b.WriteByte(_upperhex[c>>4])
			b.WriteByte(_upperhex[c&15])
		} else {
			b.WriteByte(c)
		}
	}
}

// shouldEscape 判断一个字节是否需要转义。
// RFC 3986 2.3 节定义的 unreserved 字符不需要转义，其余都需要。
func shouldEscape(c byte) bool {
	if 'A' <= c && c <= 'Z' || 'a' <= c && c <= 'z' || '0' <= c && c <= '9' {
		return false
	}

	switch c {
	case '-', '.', '_', '~':
		return false
	}

	return true
}
