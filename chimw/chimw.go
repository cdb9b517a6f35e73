// chimw 包提供标准 net/http 中间件形态的 OAuth 1.0 签名校验，
// 可直接挂载到 chi 等兼容 func(http.Handler) http.Handler 形态的路由器上。
package chimw

import (
	"context"
	"net/http"

	"github.com/cmstar/go-logx"
	"github.com/cmstar/go-oauth1"
)

// Option 用于设置 [Verification] 中间件。
type Option struct {
	// SecretFinder 用于查找凭据对应的 secret 。必填。
	SecretFinder oauth1.SecretFinder

	// TimeChecker 用于校验 oauth_timestamp 。选填，默认使用 [oauth1.DefaultTimeChecker] 。
	TimeChecker oauth1.TimeCheckerFunc

	// Logger 选填。非 nil 时记录每次校验的结果：校验通过为 Debug 级别，未通过为 Warn 级别。
	Logger logx.Logger

	// Realm 选填。校验失败时写入 WWW-Authenticate 头的 realm 部分。
	Realm string
}

// authorizationKey 是校验通过后 [oauth1.Authorization] 在请求 context 中的键。
type authorizationKey struct{}

// Verification 返回执行签名校验的中间件。
//
// 校验通过后，解析出的 [oauth1.Authorization] 存入请求的 context ，可用 [GetAuthorization] 读取；
// 校验失败时响应 401 并携带 WWW-Authenticate: OAuth 头，请求不再向后传递。
//
// 若 op.SecretFinder 为 nil ， panic 。
func Verification(op Option) func(http.Handler) http.Handler {
	if op.SecretFinder == nil {
		panic("SecretFinder must be provided")
	}

	verifyOption := oauth1.VerifyOption{
		SecretFinder: op.SecretFinder,
		TimeChecker:  op.TimeChecker,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res := oauth1.Verify(r, verifyOption)
			logResult(op.Logger, r, res)

			if res.Type != oauth1.VerifyResultType_OK {
				w.Header().Set(oauth1.HttpHeaderWwwAuthenticate, wwwAuthenticate(op.Realm))
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), authorizationKey{}, res.Authorization)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAuthorization 返回 [Verification] 存入请求 context 的 [oauth1.Authorization] 。
// 请求未经过校验或校验未通过时，第二个返回值为 false 。
func GetAuthorization(r *http.Request) (oauth1.Authorization, bool) {
	auth, ok := r.Context().Value(authorizationKey{}).(oauth1.Authorization)
	return auth, ok
}

// wwwAuthenticate 返回校验失败时 WWW-Authenticate 头的值。
func wwwAuthenticate(realm string) string {
	if realm == "" {
		return oauth1.AuthScheme
	}
	return oauth1.AuthScheme + ` realm="` + realm + `"`
}

// logResult 记录一次校验的结果。 logger 为 nil 时不输出。
func logResult(logger logx.Logger, r *http.Request, res oauth1.VerifyResult) {
	if logger == nil {
		return
	}

	kv := []interface{}{
		"Type", res.Type.String(),
		"Method", r.Method,
		"URL", r.URL.String(),
		"ConsumerKey", res.Authorization.ConsumerKey,
		"Timestamp", res.Authorization.Timestamp,
	}
	if res.Cause != nil {
		kv = append(kv, "Cause", res.Cause.Error())
	}

	logger.Log(res.Type.LogLevel(), "oauth1: verification", kv...)
}
