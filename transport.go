package oauth1

import (
	"errors"
	"net/http"

	"github.com/cmstar/go-logx"
)

/*
当前文件提供自动签名的 http.RoundTripper 。
*/

// Transport 是一个 [http.RoundTripper] ，发送请求前自动计算签名并附加 Authorization 头。
// 签名发生在请求的副本上，原请求的字段不会被修改。
type Transport struct {
	// Base 是实际发送请求的 [http.RoundTripper] 。为 nil 时使用 [http.DefaultTransport] 。
	Base http.RoundTripper

	// Signer 用于计算签名。必填。
	Signer *Signer

	// Logger 选填。非 nil 时每次签名后以 Debug 级别记录签名要素。
	Logger logx.Logger
}

var _ http.RoundTripper = (*Transport)(nil)

// RoundTrip implements [http.RoundTripper.RoundTrip].
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Signer == nil {
		return nil, errors.New("oauth1: Transport.Signer must be provided")
	}

	// RoundTripper 不允许修改原请求，在副本上签名。 body 的消费是传输过程的一部分，不在此列。
	clone := cloneRequest(req)
	res, err := t.Signer.SignRequest(clone)
	if err != nil {
		return nil, err
	}

	if t.Logger != nil {
		t.Logger.Log(logx.LevelDebug, "oauth1: request signed",
			"Method", clone.Method,
			"URL", clone.URL.String(),
			"Nonce", res.Nonce,
			"Timestamp", res.Timestamp,
		)
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(clone)
}

// Client 返回使用此 Transport 发送请求的 [http.Client] 。
func (t *Transport) Client() *http.Client {
	return &http.Client{Transport: t}
}

// cloneRequest 返回请求的浅拷贝， Header 做了深拷贝。
func cloneRequest(r *http.Request) *http.Request {
	clone := new(http.Request)
	*clone = *r

	clone.Header = make(http.Header, len(r.Header))
	for k, v := range r.Header {
		clone.Header[k] = append([]string(nil), v...)
	}

	return clone
}
