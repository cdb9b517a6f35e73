package oauth1

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/cmstar/go-conv"
	"github.com/cmstar/go-errx"
)

/*
当前文件提供 Authorization 头的构建与解析。
*/

// ErrNoAuthorization 表示请求没有携带 Authorization 头，或者头的 scheme 不是“OAuth”。
// 服务端可借助 [errors.Is] 区分“未携带签名”和“签名格式错误”，前者可以回落到其他鉴权方式上。
var ErrNoAuthorization = errors.New("oauth1: no OAuth Authorization header")

// Authorization 记录 OAuth 1.0 协议的 Authorization 头的内容（ RFC 5849 3.5.1 节）。
type Authorization struct {
	ConsumerKey     string // oauth_consumer_key ，标识调用方（应用）的身份。
	Token           string // oauth_token ，标识用户/会话的身份。可以是空字符串。
	SignatureMethod string // oauth_signature_method ，当前固定为“HMAC-SHA1”。
	Signature       string // oauth_signature ， base64 格式的签名。
	Timestamp       int64  // oauth_timestamp ，生成签名时的 UNIX 时间戳，单位是秒。
	Nonce           string // oauth_nonce ，一次性随机值。
	Version         string // oauth_version ，可省略，非空时必须是“1.0”。
	Realm           string // realm ，可选的保护域描述。不参与签名。
}

// BuildAuthorizationHeader 返回用于 HTTP 的 Authorization 头的值，格式为：
//
//	OAuth oauth_consumer_key="..", oauth_token="..", oauth_signature_method="HMAC-SHA1",
//	oauth_signature="..", oauth_timestamp="..", oauth_nonce="..", oauth_version="1.0"
//
// 七个字段固定按上面的顺序排列。顺序不影响协议的正确性，但稳定的顺序便于测试和排查问题。
// 空的 Token 也会写出 oauth_token="" ，不会省略。
//
// 除 oauth_timestamp 外，每个字段的值写入前都会再做一次百分号转义：
// 签名和 nonce 是 base64 格式，含有不能直接放进引号的“+”“/”“=”字符。
//   - 若 [Authorization.SignatureMethod] 为空，使用默认值 [SignatureMethodHmacSha1] 。
//   - 若 [Authorization.Version] 为空，使用默认值 [Version10] 。
//   - 若 [Authorization.Realm] 非空，在最前面追加 realm 字段。
//     realm 是 RFC 2617 规定的 quoted-string ，不做百分号转义。
func BuildAuthorizationHeader(auth Authorization) string {
	method := auth.SignatureMethod
	if method == "" {
		method = SignatureMethodHmacSha1
	}

	version := auth.Version
	if version == "" {
		version = Version10
	}

	b := new(strings.Builder)
	b.WriteString(AuthScheme)
	b.WriteByte(' ')

	if auth.Realm != "" {
		b.WriteString(_paramRealm)
		b.WriteString(`="`)
		b.WriteString(auth.Realm)
		b.WriteString(`", `)
	}

	appendHeaderParam(b, _paramConsumerKey, auth.ConsumerKey)
	b.WriteString(", ")
	appendHeaderParam(b, _paramToken, auth.Token)
	b.WriteString(", ")
	appendHeaderParam(b, _paramSignatureMethod, method)
	b.WriteString(", ")
	appendHeaderParam(b, _paramSignature, auth.Signature)
	b.WriteString(", ")
	b.WriteString(_paramTimestamp)
	b.WriteString(`="`)
	b.WriteString(strconv.FormatInt(auth.Timestamp, 10))
	b.WriteString(`", `)
	appendHeaderParam(b, _paramNonce, auth.Nonce)
	b.WriteString(", ")
	appendHeaderParam(b, _paramVersion, version)

	return b.String()
}

// appendHeaderParam 将一个 key="value" 形式的字段追加到 b ，值做百分号转义。
func appendHeaderParam(b *strings.Builder, key, value string) {
	b.WriteString(key)
	b.WriteString(`="`)
	appendEncoded(b, value)
	b.WriteByte('"')
}

// _headerParamPattern 匹配 Authorization 头中 name="value" 形式的参数。
var _headerParamPattern = regexp.MustCompile(`(\w+)="([^"]*)"`)

// _conv 在解析 Authorization 头时，将参数表绑定到 [Authorization] 结构体上。
// 绑定前参数名称已做过规范化（去掉 oauth_ 前缀和下划线），这里按大小写不敏感的方式匹配字段，
// oauth_timestamp 的值由字符串自动转换为 int64 。
var _conv = conv.Conv{
	Conf: conv.Config{
		FieldMatcherCreator: &conv.SimpleMatcherCreator{
			Conf: conv.SimpleMatcherConfig{
				CaseInsensitive: true,
			},
		},
	},
}

// ParseAuthorizationHeader 解析请求的 Authorization 头，它是 [BuildAuthorizationHeader] 的逆过程。
//
// 解析时参数的顺序不做要求； realm 读取到 [Authorization.Realm] 上；协议之外的参数被忽略。
// 每个参数的值做百分号解码， realm 除外：它是 quoted-string ，按原文读取。
// 同一个参数出现多次是错误的。
//
// 此方法只做语法层面的解析，不校验参数值的有效性，有效性由签名校验过程检查。
//
// 请求没有 Authorization 头，或者 scheme 不是“OAuth”（大小写不敏感）时，返回 [ErrNoAuthorization] 。
func ParseAuthorizationHeader(r *http.Request) (Authorization, error) {
	auth := Authorization{}

	headers, ok := r.Header[HttpHeaderAuthorization]
	if !ok || len(headers) == 0 {
		return auth, ErrNoAuthorization
	}

	if len(headers) > 1 {
		return auth, fmt.Errorf("more than one Authorization header found")
	}

	// Read <Scheme> part.
	header := headers[0]
	idx := strings.IndexByte(header, ' ')
	if idx <= 0 {
		return auth, ErrNoAuthorization
	}

	if !strings.EqualFold(header[:idx], AuthScheme) {
		return auth, ErrNoAuthorization
	}

	// Read params.
	matches := _headerParamPattern.FindAllStringSubmatch(header[idx+1:], -1)
	params := make(map[string]any, len(matches))
	for _, match := range matches {
		name := match[1]
		value := match[2]

		var field string
		switch {
		case name == _paramRealm:
			field = _paramRealm

		case strings.HasPrefix(name, "oauth_"):
			// oauth_consumer_key -> consumerkey ，与结构体的字段名做大小写不敏感的匹配。
			field = strings.ReplaceAll(name[len("oauth_"):], "_", "")

			v, err := url.PathUnescape(value)
			if err != nil {
				return auth, errx.Wrap("oauth1: malformed Authorization parameter "+name, err)
			}
			value = v

		default:
			continue
		}

		if _, ok := params[field]; ok {
			return auth, fmt.Errorf("duplicated Authorization parameter: %s", name)
		}
		params[field] = value
	}

	val, err := _conv.ConvertType(params, reflect.TypeOf(auth))
	if err != nil {
		return auth, errx.Wrap("oauth1: bad Authorization header", err)
	}

	return val.(Authorization), nil
}
