// echomw 包提供用于 echo 框架的 OAuth 1.0 签名校验中间件。
package echomw

import (
	"net/http"

	"github.com/cmstar/go-logx"
	"github.com/cmstar/go-oauth1"
	"github.com/labstack/echo/v4"
)

// _authorizationContextKey 是校验通过后 [oauth1.Authorization] 在 echo.Context 中的键。
const _authorizationContextKey = "oauth1.authorization"

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

// Verification 返回执行签名校验的 echo 中间件。
//
// 校验通过后，解析出的 [oauth1.Authorization] 存入 echo.Context ，可用 [GetAuthorization] 读取；
// 校验失败时返回 401 并携带 WWW-Authenticate: OAuth 头，请求不再向后传递。
//
// 若 op.SecretFinder 为 nil ， panic 。
func Verification(op Option) echo.MiddlewareFunc {
	if op.SecretFinder == nil {
		panic("SecretFinder must be provided")
	}

	verifyOption := oauth1.VerifyOption{
		SecretFinder: op.SecretFinder,
		TimeChecker:  op.TimeChecker,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			r := c.Request()
			res := oauth1.Verify(r, verifyOption)
			logResult(op.Logger, r, res)

			if res.Type != oauth1.VerifyResultType_OK {
				c.Response().Header().Set(oauth1.HttpHeaderWwwAuthenticate, wwwAuthenticate(op.Realm))
				return echo.NewHTTPError(http.StatusUnauthorized)
			}

			c.Set(_authorizationContextKey, res.Authorization)
			return next(c)
		}
	}
}

// GetAuthorization 返回 [Verification] 存入 echo.Context 的 [oauth1.Authorization] 。
// 请求未经过校验或校验未通过时，第二个返回值为 false 。
func GetAuthorization(c echo.Context) (oauth1.Authorization, bool) {
	auth, ok := c.Get(_authorizationContextKey).(oauth1.Authorization)
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
