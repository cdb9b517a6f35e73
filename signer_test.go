package oauth1

import (
	"io"
	"net/url"
	"strings"
	"testing"

	"github.com/cmstar/go-oauth1/oauth1test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 测试统一使用凭据 (ck, cs) 和 (tk, ts) ，并固定 nonce 和时间戳，以获得稳定可断言的签名。
const (
	_testNonce     = "abc123"
	_testTimestamp = 1318467427
)

func newTestSigner() *Signer {
	return NewSigner(SignerConfig{
		Consumer: Credential{Key: "ck", Secret: "cs"},
		Token:    Credential{Key: "tk", Secret: "ts"},
	})
}

// newFixedSigner 创建的 Signer 自动填充的 nonce 和时间戳也是固定值。
func newFixedSigner() *Signer {
	return NewSigner(SignerConfig{
		Consumer: Credential{Key: "ck", Secret: "cs"},
		Token:    Credential{Key: "tk", Secret: "ts"},
		Noncer:   oauth1test.NewSequenceNoncer(_testNonce),
		Now:      oauth1test.FixedNow(_testTimestamp),
	})
}

func TestNewSigner(t *testing.T) {
	t.Run("MissingConsumerKey", func(t *testing.T) {
		assert.PanicsWithValue(t, "consumer key must be provided", func() {
			NewSigner(SignerConfig{})
		})
	})

	t.Run("Defaults", func(t *testing.T) {
		signer := NewSigner(SignerConfig{Consumer: Credential{Key: "ck"}})
		res := signer.Sign(SignatureContext{Method: "GET", URL: "http://temp.org/"})

		assert.Len(t, res.Nonce, 24)
		assert.NotZero(t, res.Timestamp)
	})
}

func TestSigner_Sign(t *testing.T) {
	signer := newTestSigner()

	t.Run("Form", func(t *testing.T) {
		res := signer.Sign(SignatureContext{
			Method:    "POST",
			URL:       "http://example.com:80/resource",
			Timestamp: _testTimestamp,
			Nonce:     _testNonce,
			Form: url.Values{
				"file": {"vacation.jpg"},
				"size": {"original"},
			},
		})

		assert.Equal(t, "file=vacation.jpg&oauth_consumer_key=ck&oauth_nonce=abc123&oauth_signature_method=HMAC-SHA1&oauth_timestamp=1318467427&oauth_token=tk&oauth_version=1.0&size=original", res.ParamString)
		assert.Equal(t, "POST&http%3A%2F%2Fexample.com%2Fresource&file%3Dvacation.jpg%26oauth_consumer_key%3Dck%26oauth_nonce%3Dabc123%26oauth_signature_method%3DHMAC-SHA1%26oauth_timestamp%3D1318467427%26oauth_token%3Dtk%26oauth_version%3D1.0%26size%3Doriginal", res.BaseString)
		assert.Equal(t, "QMFvlnH//bn0SBT1/EP12MU4IkU=", res.Signature)
		assert.Equal(t, `OAuth oauth_consumer_key="ck", oauth_token="tk", oauth_signature_method="HMAC-SHA1", oauth_signature="QMFvlnH%2F%2Fbn0SBT1%2FEP12MU4IkU%3D", oauth_timestamp="1318467427", oauth_nonce="abc123", oauth_version="1.0"`, res.Header)
		assert.Equal(t, _testNonce, res.Nonce)
		assert.Equal(t, int64(_testTimestamp), res.Timestamp)
	})

	t.Run("EmptyToken", func(t *testing.T) {
		noToken := NewSigner(SignerConfig{Consumer: Credential{Key: "ck", Secret: "cs"}})
		res := noToken.Sign(SignatureContext{
			Method:    "GET",
			URL:       "https://example.com:443/resource",
			Timestamp: _testTimestamp,
			Nonce:     _testNonce,
		})

		assert.Equal(t, "oauth_consumer_key=ck&oauth_nonce=abc123&oauth_signature_method=HMAC-SHA1&oauth_timestamp=1318467427&oauth_token=&oauth_version=1.0", res.ParamString)
		assert.Equal(t, "iZ7IMenfRbFbSmtp977ErC461Co=", res.Signature)
		assert.Contains(t, res.Header, `oauth_token=""`)
	})

	t.Run("QueryWithDuplicatedAndUtf8", func(t *testing.T) {
		res := signer.Sign(SignatureContext{
			Method:    "GET",
			URL:       "http://example.com/api",
			Timestamp: _testTimestamp,
			Nonce:     _testNonce,
			Query: url.Values{
				"a":    {"x", "b"},
				"note": {"Hello World"},
				"name": {"测试"},
			},
		})

		assert.Equal(t, "a=b&a=x&name=%E6%B5%8B%E8%AF%95&note=Hello%20World&oauth_consumer_key=ck&oauth_nonce=abc123&oauth_signature_method=HMAC-SHA1&oauth_timestamp=1318467427&oauth_token=tk&oauth_version=1.0", res.ParamString)
		assert.Equal(t, "oWKVzKGx8nBCtdfxL+cqFjeHi8Q=", res.Signature)
	})

	t.Run("KeepNonDefaultPort", func(t *testing.T) {
		res := signer.Sign(SignatureContext{
			Method:    "POST",
			URL:       "http://example.com:8080/search",
			Timestamp: _testTimestamp,
			Nonce:     _testNonce,
			Form:      url.Values{"file": {"vacation.jpg"}},
			Query:     url.Values{"q": {"go"}, "page": {"2"}},
		})

		assert.Contains(t, res.BaseString, "example.com%3A8080")
		assert.Equal(t, "iQdpEC+w5EvYf+i6ltjJ+rWsSHg=", res.Signature)
	})

	t.Run("Realm", func(t *testing.T) {
		signer := NewSigner(SignerConfig{
			Consumer: Credential{Key: "ck", Secret: "cs"},
			Realm:    "api",
		})
		res := signer.Sign(SignatureContext{
			Method:    "GET",
			URL:       "http://example.com/api",
			Timestamp: _testTimestamp,
			Nonce:     _testNonce,
		})

		assert.True(t, strings.HasPrefix(res.Header, `OAuth realm="api", `), res.Header)
	})

	t.Run("Deterministic", func(t *testing.T) {
		sc := SignatureContext{
			Method:    "GET",
			URL:       "http://example.com/api",
			Timestamp: _testTimestamp,
			Nonce:     _testNonce,
		}

		assert.Equal(t, signer.Sign(sc), signer.Sign(sc))
	})

	t.Run("SensitiveToSecret", func(t *testing.T) {
		another := NewSigner(SignerConfig{
			Consumer: Credential{Key: "ck", Secret: "cs2"},
			Token:    Credential{Key: "tk", Secret: "ts"},
		})

		sc := SignatureContext{
			Method:    "GET",
			URL:       "http://example.com/api",
			Timestamp: _testTimestamp,
			Nonce:     _testNonce,
		}
		assert.NotEqual(t, signer.Sign(sc).Signature, another.Sign(sc).Signature)
	})

	t.Run("AutoFill", func(t *testing.T) {
		res := newFixedSigner().Sign(SignatureContext{
			Method: "POST",
			URL:    "http://example.com:80/resource",
			Form: url.Values{
				"file": {"vacation.jpg"},
				"size": {"original"},
			},
		})

		assert.Equal(t, "QMFvlnH//bn0SBT1/EP12MU4IkU=", res.Signature)
	})
}

func TestSigner_SignRequest(t *testing.T) {
	signer := newFixedSigner()

	t.Run("FormBody", func(t *testing.T) {
		r := oauth1test.NewRequest("http://example.com/resource", oauth1test.RequestSetup{
			Method:      "POST",
			ContentType: ContentTypeForm,
			BodyString:  "file=vacation.jpg&size=original",
		})

		res, err := signer.SignRequest(r)
		require.NoError(t, err)

		assert.Equal(t, "QMFvlnH//bn0SBT1/EP12MU4IkU=", res.Signature)
		assert.Equal(t, res.Header, r.Header.Get(HttpHeaderAuthorization))

		// 签名后 body 仍可读取。
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, "file=vacation.jpg&size=original", string(body))
	})

	t.Run("QueryOnUrl", func(t *testing.T) {
		r := oauth1test.NewRequest("http://example.com:8080/search?q=go&page=2", oauth1test.RequestSetup{
			Method:      "POST",
			ContentType: ContentTypeForm,
			BodyString:  "file=vacation.jpg",
		})

		res, err := signer.SignRequest(r)
		require.NoError(t, err)
		assert.Equal(t, "iQdpEC+w5EvYf+i6ltjJ+rWsSHg=", res.Signature)
	})

	t.Run("NonFormBodyIgnored", func(t *testing.T) {
		withBody := oauth1test.NewRequest("http://example.com/api", oauth1test.RequestSetup{
			Method:      "POST",
			ContentType: "application/json",
			BodyString:  `{"file":"vacation.jpg"}`,
		})
		noBody := oauth1test.NewRequest("http://example.com/api", oauth1test.RequestSetup{
			Method: "POST",
		})

		one, err := signer.SignRequest(withBody)
		require.NoError(t, err)
		another, err := signer.SignRequest(noBody)
		require.NoError(t, err)

		assert.Equal(t, another.Signature, one.Signature)
	})

	t.Run("InvalidQuery", func(t *testing.T) {
		r := oauth1test.NewRequest("http://example.com/api?a=%zz", oauth1test.RequestSetup{})

		_, err := signer.SignRequest(r)
		require.Error(t, err)
		require.Regexp(t, "invalid query string", err.Error())
	})

	t.Run("InvalidFormBody", func(t *testing.T) {
		r := oauth1test.NewRequest("http://example.com/api", oauth1test.RequestSetup{
			Method:      "POST",
			ContentType: ContentTypeForm,
			BodyString:  "a=%zz",
		})

		_, err := signer.SignRequest(r)
		require.Error(t, err)
		require.Regexp(t, "invalid form body", err.Error())
	})
}

func TestSigner_AuthorizationHeader(t *testing.T) {
	header := newFixedSigner().AuthorizationHeader("POST", "http://example.com:80/resource", url.Values{
		"file": {"vacation.jpg"},
		"size": {"original"},
	}, nil)

	assert.Equal(t, `OAuth oauth_consumer_key="ck", oauth_token="tk", oauth_signature_method="HMAC-SHA1", oauth_signature="QMFvlnH%2F%2Fbn0SBT1%2FEP12MU4IkU%3D", oauth_timestamp="1318467427", oauth_nonce="abc123", oauth_version="1.0"`, header)
}
