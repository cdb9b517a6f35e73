// oauth1test 包提供用于测试签名与校验逻辑的辅助方法。
package oauth1test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"
)

// RequestSetup 用于设置测试的 HTTP 请求。
type RequestSetup struct {
	Method      string            // HTTP 请求的方法， GET/POST/PUT/DELETE 。若未给定值，默认为 GET 。
	ContentType string            // 指定 HTTP Content-Type 头，若未给定值，则不会添加此字段。
	BodyString  string            // 指定请求的 body ，优先级高于 BodyReader 。给定值时 BodyReader 被忽略。
	BodyReader  io.Reader         // 指定请求的 body ，仅在 BodyString 为空时生效。
	Header      map[string]string // 指定额外的请求头。
}

// NewRequest 基于 httptest 包创建用于测试的 HTTP 请求。
func NewRequest(url string, setup RequestSetup) *http.Request {
	httpMethod := setup.Method
	if httpMethod == "" {
		httpMethod = "GET"
	}

	req := httptest.NewRequest(httpMethod, url, nil)

	if setup.ContentType != "" {
		req.Header.Add("Content-Type", setup.ContentType)
	}

	if setup.BodyString != "" {
		req.Body = io.NopCloser(strings.NewReader(setup.BodyString))
	} else if setup.BodyReader != nil {
		readCloser, ok := setup.BodyReader.(io.ReadCloser)
		if ok {
			req.Body = readCloser
		} else {
			req.Body = io.NopCloser(setup.BodyReader)
		}
	}

	for k, v := range setup.Header {
		req.Header.Add(k, v)
	}

	return req
}

// NewSequenceNoncer 创建一个 SequenceNoncer ，它按给定的顺序依次返回 nonce 。
// 至少需要给定一个值，否则 panic 。
func NewSequenceNoncer(nonces ...string) *SequenceNoncer {
	if len(nonces) == 0 {
		panic("nonces must be provided")
	}

	return &SequenceNoncer{nonces: nonces}
}

// SequenceNoncer 实现 oauth1.Noncer ，按创建时给定的顺序依次返回 nonce ，用完后从头循环。
// 用于需要固定 nonce 的测试场景。
type SequenceNoncer struct {
	mu     sync.Mutex
	nonces []string
	idx    int
}

// Nonce 返回序列中的下一个 nonce 。
func (x *SequenceNoncer) Nonce() string {
	x.mu.Lock()
	defer x.mu.Unlock()

	nonce := x.nonces[x.idx]
	x.idx = (x.idx + 1) % len(x.nonces)
	return nonce
}

// FixedNow 返回一个总是给出固定 UNIX 时间戳的时间函数，用于在测试中固定签名的时间戳。
func FixedNow(timestamp int64) func() time.Time {
	return func() time.Time {
		return time.Unix(timestamp, 0)
	}
}
