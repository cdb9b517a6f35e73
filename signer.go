package oauth1

import (
	"bytes"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cmstar/go-errx"
)

/*
当前文件提供 Signer ，它组合各签名要素，完成请求的签名与 Authorization 头的生成。
*/

// Credential 表示一组 OAuth 1.0 凭据。 Key 用于标识身份， Secret 用于计算签名。
// 消费方（应用）凭据和 token （用户/会话）凭据都用此结构表示。
type Credential struct {
	Key    string
	Secret string
}

// SignatureContext 描述一次签名计算的全部输入。每次签名使用一个新的实例，算完即弃。
type SignatureContext struct {
	Method    string     // HTTP 方法，如 GET/POST 。签名时统一转为大写。
	URL       string     // 请求的地址，不含 query string 部分。
	Timestamp int64      // UNIX 时间戳，单位是秒。为 0 时自动取当前时间。
	Nonce     string     // 一次性随机值。为空时自动生成。
	Form      url.Values // 表单参数。
	Query     url.Values // URL 上的参数。
}

// SignResult 记录一次签名计算的结果。
// 除签名本身外，还带上了计算的中间产物，供调试、日志和测试使用。
type SignResult struct {
	Signature   string // base64 格式的签名。
	BaseString  string // 签名基串。
	ParamString string // 规范化后的参数串，即签名基串的第三部分（整体转义前）。
	Nonce       string // 本次签名使用的 nonce 。
	Timestamp   int64  // 本次签名使用的时间戳。
	Header      string // 完整的 Authorization 头的值。
}

// Signer 基于一组消费方凭据和 token 凭据计算请求的签名。
//
// 凭据在创建时给定，创建后不可变更； HMAC 密钥在创建时完成推导。
// 一个 Signer 实例可被多个 goroutine 并发使用。
type Signer struct {
	consumer Credential
	token    Credential
	key      []byte // 由两个 secret 推导出的 HMAC 密钥。创建后只读。
	noncer   Noncer
	now      func() time.Time
	realm    string
}

// SignerConfig 用于创建 [Signer] 。
type SignerConfig struct {
	// Consumer 是消费方凭据。必填， Key 不可为空。
	Consumer Credential

	// Token 是 token 凭据。选填。
	// 尚未持有 token 时可整体留空，空的 Secret 以空字符串参与密钥推导，空的 Key 照常写入 oauth_token 。
	Token Credential

	// Noncer 用于生成 nonce 。选填，默认使用 [NewRandomNoncer] 。
	Noncer Noncer

	// Now 用于获取当前时间。选填，默认使用 [time.Now] 。主要用于在测试中固定时间戳。
	Now func() time.Time

	// Realm 选填。非空时写入 Authorization 头的 realm 字段。 realm 不参与签名。
	Realm string
}

// NewSigner 创建一个 [Signer] 。
// 若 conf.Consumer.Key 为空， panic 。
func NewSigner(conf SignerConfig) *Signer {
	if conf.Consumer.Key == "" {
		panic("consumer key must be provided")
	}

	noncer := conf.Noncer
	if noncer == nil {
		noncer = NewRandomNoncer()
	}

	now := conf.Now
	if now == nil {
		now = time.Now
	}

	return &Signer{
		consumer: conf.Consumer,
		token:    conf.Token,
		key:      SigningKey(conf.Consumer.Secret, conf.Token.Secret),
		noncer:   noncer,
		now:      now,
		realm:    conf.Realm,
	}
}

// Sign 执行一次签名计算，返回签名及其中间产物。
//
// 计算过程（ RFC 5849 3.4 节）：
//  1. 收集参数：六个协议参数 oauth_consumer_key / oauth_nonce / oauth_signature_method /
//     oauth_timestamp / oauth_token / oauth_version ，加上 sc.Form 和 sc.Query 里的全部参数。
//     每个参数加入时完成百分号转义。
//  2. 将参数按转义后的名称（同名时按值）的字节顺序排序，以 key=value 形式用“&”拼接。
//  3. 构建签名基串 METHOD&url&params ，见 [SignatureBaseString] 。
//  4. 用推导出的密钥计算基串的 HMAC-SHA1 ，按 base64 编码得到签名。
//
// sc.Nonce 为空时自动生成， sc.Timestamp 为 0 时自动取当前时间；
// 两者都显式给定时，计算结果是确定的，这也是测试和排查问题时复现签名的方式。
func (x *Signer) Sign(sc SignatureContext) SignResult {
	nonce := sc.Nonce
	if nonce == "" {
		nonce = x.noncer.Nonce()
	}

	timestamp := sc.Timestamp
	if timestamp == 0 {
		timestamp = x.now().Unix()
	}

	params := make(ParamList, 0, 6+len(sc.Form)+len(sc.Query))
	params.Add(_paramConsumerKey, x.consumer.Key)
	params.Add(_paramNonce, nonce)
	params.Add(_paramSignatureMethod, SignatureMethodHmacSha1)
	params.Add(_paramTimestamp, strconv.FormatInt(timestamp, 10))
	params.Add(_paramToken, x.token.Key)
	params.Add(_paramVersion, Version10)
	params.AddValues(sc.Form)
	params.AddValues(sc.Query)
	params.Sort()

	paramString := params.String()
	baseString := SignatureBaseString(sc.Method, sc.URL, paramString)
	signature := HmacSha1(x.key, []byte(baseString))

	header := BuildAuthorizationHeader(Authorization{
		ConsumerKey:     x.consumer.Key,
		Token:           x.token.Key,
		SignatureMethod: SignatureMethodHmacSha1,
		Signature:       signature,
		Timestamp:       timestamp,
		Nonce:           nonce,
		Version:         Version10,
		Realm:           x.realm,
	})

	return SignResult{
		Signature:   signature,
		BaseString:  baseString,
		ParamString: paramString,
		Nonce:       nonce,
		Timestamp:   timestamp,
		Header:      header,
	}
}

// SignRequest 计算请求的签名，并将 Authorization 头赋值到请求上。
//
// query 部分取自 [http.Request.URL] ；若请求的 Content-Type 是 application/x-www-form-urlencoded ，
// body 会被读取并参与签名，读取后被替换为新的、可重读的 [bytes.Buffer] ，请求仍可正常发送；
// 其他类型的 body 不参与签名， OAuth 1.0 只规定了表单参与签名。
func (x *Signer) SignRequest(r *http.Request) (SignResult, error) {
	form, err := signableForm(r)
	if err != nil {
		return SignResult{}, err
	}

	query, err := url.ParseQuery(r.URL.RawQuery)
	if err != nil {
		return SignResult{}, errx.Wrap("oauth1: invalid query string", err)
	}

	res := x.Sign(SignatureContext{
		Method: r.Method,
		URL:    requestBaseURL(r),
		Form:   form,
		Query:  query,
	})

	r.Header.Set(HttpHeaderAuthorization, res.Header)
	return res, nil
}

// AuthorizationHeader 以给定的请求要素计算签名，返回 Authorization 头的值。
// rawURL 不能含 query string 部分， query 由参数单独给定。 nonce 和时间戳自动生成。
func (x *Signer) AuthorizationHeader(method, rawURL string, form, query url.Values) string {
	res := x.Sign(SignatureContext{
		Method: method,
		URL:    rawURL,
		Form:   form,
		Query:  query,
	})
	return res.Header
}

// requestBaseURL 返回请求中不含 query string 的地址部分。
// 服务端收到的请求，其 URL 通常只有路径部分，此时通过 Host 头和 TLS 状态补全。
func requestBaseURL(r *http.Request) string {
	u := r.URL
	scheme := u.Scheme
	host := u.Host

	if !u.IsAbs() {
		scheme = "http"
		if r.TLS != nil {
			scheme = "https"
		}
		host = r.Host
	}

	return scheme + "://" + host + u.EscapedPath()
}

// signableForm 返回参与签名的表单参数。
// 只有 application/x-www-form-urlencoded 的 body 参与签名，读取后 body 被替换为可重读的 buffer ；
// 其他情况返回 nil 。
func signableForm(r *http.Request) (url.Values, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}

	if !isFormContentType(r.Header.Get(HttpHeaderContentType)) {
		return nil, nil
	}

	body, err := repeatableReadBody(r)
	if err != nil {
		return nil, errx.Wrap("oauth1: read request body", err)
	}

	values, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, errx.Wrap("oauth1: invalid form body", err)
	}

	return values, nil
}

// isFormContentType 判断 Content-Type 是否是表单类型。头上可能带有 charset 等参数，只要主类型匹配即可。
func isFormContentType(contentType string) bool {
	mediaType := contentType
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = mediaType[:i]
	}
	return strings.TrimSpace(mediaType) == ContentTypeForm
}

// repeatableReadBody 读取整个 [http.Request.Body] 并返回读取到的数据。
// 读取完毕后，原 body 会被关闭， Body 字段被替换为新的、未被读取的 [bytes.Buffer] ，其包含读取到的数据。
// 此方法用于处理 body 的重复读取。
func repeatableReadBody(r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	err = r.Body.Close()
	if err != nil {
		return nil, err
	}

	r.Body = io.NopCloser(bytes.NewBuffer(data))
	return data, nil
}
