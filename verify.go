package oauth1

import (
	"crypto/hmac"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cmstar/go-logx"
)

/*
当前文件提供服务端的签名校验。

校验过程是签名计算的逆向：服务端以收到的请求为输入，带入 Authorization 头上的
nonce 和时间戳重新计算一遍签名，再和头上的签名比对。
*/

// SecretFinder 在校验签名时查找凭据对应的 secret 。
type SecretFinder interface {
	// FindConsumerSecret 返回给定的 oauth_consumer_key 对应的 secret 。
	// 若 key 未知，返回非 nil 的错误。
	FindConsumerSecret(key string) (string, error)

	// FindTokenSecret 返回给定的 oauth_token 对应的 secret 。 token 的 secret 可以是空字符串。
	// 若 token 未知，返回非 nil 的错误。请求携带空的 oauth_token 时，不会调用此方法。
	FindTokenSecret(token string) (string, error)
}

// MapSecretFinder 是基于 map 的 [SecretFinder] 实现，适用于凭据固定的简单场景和测试。
type MapSecretFinder struct {
	Consumers map[string]string // oauth_consumer_key 到 secret 的映射。
	Tokens    map[string]string // oauth_token 到 secret 的映射。
}

var _ SecretFinder = (*MapSecretFinder)(nil)

// FindConsumerSecret implements [SecretFinder.FindConsumerSecret].
func (x MapSecretFinder) FindConsumerSecret(key string) (string, error) {
	secret, ok := x.Consumers[key]
	if !ok {
		return "", fmt.Errorf("unknown consumer key: %s", key)
	}
	return secret, nil
}

// FindTokenSecret implements [SecretFinder.FindTokenSecret].
func (x MapSecretFinder) FindTokenSecret(token string) (string, error) {
	secret, ok := x.Tokens[token]
	if !ok {
		return "", fmt.Errorf("unknown token: %s", token)
	}
	return secret, nil
}

// VerifyOption 用于设置 [Verify] 的行为。
type VerifyOption struct {
	// SecretFinder 用于查找凭据对应的 secret 。必填。
	SecretFinder SecretFinder

	// TimeChecker 用于校验 oauth_timestamp 。选填，默认使用 [DefaultTimeChecker] 。
	TimeChecker TimeCheckerFunc
}

// VerifyResult 记录一次签名校验的结果和错误原因（当校验失败时）。
type VerifyResult struct {
	Type          VerifyResultType // 校验结果。
	Authorization Authorization    // 从请求中解析到的 Authorization 头。解析失败时是零值。
	Cause         error            // 校验失败时，记录原因。
}

// VerifyResultType 表示签名校验的结果类别。
type VerifyResultType int

const (
	VerifyResultType_OK                         VerifyResultType = iota // 校验通过。
	VerifyResultType_NoAuthorization                                    // 请求没有携带 OAuth 形式的 Authorization 头。
	VerifyResultType_InvalidAuthorization                               // Authorization 头存在但格式错误，或缺少必要的参数。
	VerifyResultType_UnsupportedSignatureMethod                         // oauth_signature_method 不是 HMAC-SHA1 。
	VerifyResultType_UnsupportedVersion                                 // oauth_version 给定了“1.0”之外的值。
	VerifyResultType_UnknownKey                                         // oauth_consumer_key 或 oauth_token 未能找到对应的 secret 。
	VerifyResultType_TimestampRejected                                  // oauth_timestamp 未通过时间校验。
	VerifyResultType_InvalidRequestBody                                 // 表单类型的 body 缺失或格式错误。
	VerifyResultType_SignatureMismatch                                  // 重新计算出的签名与请求携带的不一致。
)

// String 返回结果类别的名称，用于日志输出。
func (t VerifyResultType) String() string {
	switch t {
	case VerifyResultType_OK:
		return "OK"
	case VerifyResultType_NoAuthorization:
		return "NoAuthorization"
	case VerifyResultType_InvalidAuthorization:
		return "InvalidAuthorization"
	case VerifyResultType_UnsupportedSignatureMethod:
		return "UnsupportedSignatureMethod"
	case VerifyResultType_UnsupportedVersion:
		return "UnsupportedVersion"
	case VerifyResultType_UnknownKey:
		return "UnknownKey"
	case VerifyResultType_TimestampRejected:
		return "TimestampRejected"
	case VerifyResultType_InvalidRequestBody:
		return "InvalidRequestBody"
	case VerifyResultType_SignatureMismatch:
		return "SignatureMismatch"
	default:
		return "Unknown(" + strconv.Itoa(int(t)) + ")"
	}
}

// LogLevel 返回记录此结果时建议使用的日志级别：校验通过为 Debug ，未通过为 Warn 。
func (t VerifyResultType) LogLevel() logx.Level {
	if t == VerifyResultType_OK {
		return logx.LevelDebug
	}
	return logx.LevelWarn
}

// Verify 校验请求的签名。
//
// 校验过程：
//  1. 解析 Authorization 头，检查必要参数是否齐全。
//  2. 检查 oauth_signature_method 和 oauth_version 。
//  3. 通过 [SecretFinder] 查找 secret 。
//  4. 通过 [TimeCheckerFunc] 校验时间戳。
//  5. 以请求的方法、地址、 query 和表单参数重新计算签名，和请求携带的签名比对。
//     比对使用常数时间的比较，避免计时侧信道。
//
// 重新计算签名会读取表单类型的 body ，读取后 body 被替换为可重读的 buffer ，
// 后续的处理流程（参数绑定等）仍可正常读取。
//
// 客户端省略 oauth_version 时按“1.0”处理，且重新计算时不加入 oauth_version 参数，
// 和客户端实际签名的参数集保持一致。
func Verify(r *http.Request, op VerifyOption) VerifyResult {
	if op.SecretFinder == nil {
		panic("SecretFinder must be provided")
	}

	timeChecker := op.TimeChecker
	if timeChecker == nil {
		timeChecker = DefaultTimeChecker
	}

	auth, err := ParseAuthorizationHeader(r)
	if err != nil {
		if errors.Is(err, ErrNoAuthorization) {
			return VerifyResult{Type: VerifyResultType_NoAuthorization, Cause: err}
		}
		return VerifyResult{Type: VerifyResultType_InvalidAuthorization, Cause: err}
	}

	res := VerifyResult{Authorization: auth}

	if err = checkRequiredParams(auth); err != nil {
		res.Type = VerifyResultType_InvalidAuthorization
		res.Cause = err
		return res
	}

	// 签名算法目前只支持 HMAC-SHA1 ，不允许其他值。
	if auth.SignatureMethod != SignatureMethodHmacSha1 {
		res.Type = VerifyResultType_UnsupportedSignatureMethod
		res.Cause = fmt.Errorf("unsupported signature method: %s", auth.SignatureMethod)
		return res
	}

	if auth.Version != "" && auth.Version != Version10 {
		res.Type = VerifyResultType_UnsupportedVersion
		res.Cause = fmt.Errorf("unsupported version: %s", auth.Version)
		return res
	}

	consumerSecret, err := op.SecretFinder.FindConsumerSecret(auth.ConsumerKey)
	if err != nil {
		res.Type = VerifyResultType_UnknownKey
		res.Cause = err
		return res
	}

	tokenSecret := ""
	if auth.Token != "" {
		tokenSecret, err = op.SecretFinder.FindTokenSecret(auth.Token)
		if err != nil {
			res.Type = VerifyResultType_UnknownKey
			res.Cause = err
			return res
		}
	}

	if err = timeChecker(auth.Timestamp); err != nil {
		res.Type = VerifyResultType_TimestampRejected
		res.Cause = err
		return res
	}

	// 重新计算签名。读取过的 body 保持可重读。
	form, err := signableForm(r)
	if err != nil {
		res.Type = VerifyResultType_InvalidRequestBody
		res.Cause = err
		return res
	}

	query, err := url.ParseQuery(r.URL.RawQuery)
	if err != nil {
		res.Type = VerifyResultType_InvalidRequestBody
		res.Cause = err
		return res
	}

	params := make(ParamList, 0, 6+len(form)+len(query))
	params.Add(_paramConsumerKey, auth.ConsumerKey)
	params.Add(_paramNonce, auth.Nonce)
	params.Add(_paramSignatureMethod, auth.SignatureMethod)
	params.Add(_paramTimestamp, strconv.FormatInt(auth.Timestamp, 10))
	params.Add(_paramToken, auth.Token)
	if auth.Version != "" {
		params.Add(_paramVersion, auth.Version)
	}
	params.AddValues(form)
	params.AddValues(query)
	params.Sort()

	key := SigningKey(consumerSecret, tokenSecret)
	baseString := SignatureBaseString(r.Method, requestBaseURL(r), params.String())
	want := HmacSha1(key, []byte(baseString))

	if !hmac.Equal([]byte(want), []byte(auth.Signature)) {
		res.Type = VerifyResultType_SignatureMismatch
		res.Cause = fmt.Errorf("signature mismatch, want %s, got %s", want, auth.Signature)
		return res
	}

	res.Type = VerifyResultType_OK
	return res
}

// checkRequiredParams 检查解析出的 Authorization 头是否携带了全部必要参数。
// oauth_token 可以是空字符串， oauth_version 可以省略，其余参数不可缺失。
func checkRequiredParams(auth Authorization) error {
	switch {
	case auth.ConsumerKey == "":
		return fmt.Errorf("missing oauth_consumer_key")
	case auth.Signature == "":
		return fmt.Errorf("missing oauth_signature")
	case auth.SignatureMethod == "":
		return fmt.Errorf("missing oauth_signature_method")
	case auth.Timestamp == 0:
		return fmt.Errorf("missing oauth_timestamp")
	case auth.Nonce == "":
		return fmt.Errorf("missing oauth_nonce")
	}
	return nil
}
