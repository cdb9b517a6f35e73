package oauth1

/*
当前文件提供包级的常量定义。
*/

// AuthScheme 是 Authorization 头最前面的 scheme 部分，固定为“OAuth”。
// 解析时按大小写不敏感的方式匹配。
const AuthScheme = "OAuth"

// SignatureMethodHmacSha1 是 oauth_signature_method 参数的值。当前只支持 HMAC-SHA1 签名。
const SignatureMethodHmacSha1 = "HMAC-SHA1"

// Version10 是 oauth_version 参数的值。 OAuth 1.0 协议中此值固定为“1.0”。
const Version10 = "1.0"

// 相关的 HTTP 头的名称。
const (
	HttpHeaderAuthorization   = "Authorization"
	HttpHeaderContentType     = "Content-Type"
	HttpHeaderWwwAuthenticate = "WWW-Authenticate"
)

// ContentTypeForm 表示表单类型的请求。只有此类型的 body 参与签名计算。
const ContentTypeForm = "application/x-www-form-urlencoded"

// 协议参数在 Authorization 头和签名参数表中的名称。
const (
	_paramConsumerKey     = "oauth_consumer_key"
	_paramNonce           = "oauth_nonce"
	_paramSignatureMethod = "oauth_signature_method"
	_paramSignature       = "oauth_signature"
	_paramTimestamp       = "oauth_timestamp"
	_paramToken           = "oauth_token"
	_paramVersion         = "oauth_version"
	_paramRealm           = "realm"
)
