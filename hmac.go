package oauth1

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"strings"
)

/*
当前文件提供 HMAC-SHA1 签名的实现。
*/

// SigningKey 返回 HMAC-SHA1 使用的密钥，格式为：
//
//	percentEncode(consumerSecret)&percentEncode(tokenSecret)
//
// 尚未持有 token 的场景下， tokenSecret 使用空字符串（是空串，不是省略），此时密钥以“&”结尾。
func SigningKey(consumerSecret, tokenSecret string) []byte {
	b := new(strings.Builder)
	appendEncoded(b, consumerSecret)
	b.WriteByte('&')
	appendEncoded(b, tokenSecret)
	return []byte(b.String())
}

// HmacSha1 使用给定的密钥计算 data 的 HMAC-SHA1 值，返回 base64 标准格式（含补位）。
// 每次调用使用独立的哈希状态，可安全地并发调用。
func HmacSha1(key, data []byte) string {
	h := hmac.New(sha1.New, key)
	h.Write(data)
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}
