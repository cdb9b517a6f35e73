package chimw

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmstar/go-oauth1"
	"github.com/cmstar/go-oauth1/oauth1test"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOption() Option {
	return Option{
		SecretFinder: oauth1.MapSecretFinder{
			Consumers: map[string]string{"ck": "cs"},
			Tokens:    map[string]string{"tk": "ts"},
		},
		TimeChecker: oauth1.NoTimeChecker,
	}
}

// newRouter 挂载校验中间件和一个读取 [GetAuthorization] 的处理函数。
func newRouter(op Option) http.Handler {
	router := chi.NewRouter()
	router.Use(Verification(op))
	router.Get("/echo/{name}", func(w http.ResponseWriter, r *http.Request) {
		auth, ok := GetAuthorization(r)
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		io.WriteString(w, chi.URLParam(r, "name")+":"+auth.ConsumerKey)
	})
	return router
}

func newSigner() *oauth1.Signer {
	return oauth1.NewSigner(oauth1.SignerConfig{
		Consumer: oauth1.Credential{Key: "ck", Secret: "cs"},
		Token:    oauth1.Credential{Key: "tk", Secret: "ts"},
	})
}

func TestVerification(t *testing.T) {
	router := newRouter(newOption())
	signer := newSigner()

	t.Run("OK", func(t *testing.T) {
		r := oauth1test.NewRequest("http://temp.org/echo/hello?a=1", oauth1test.RequestSetup{})
		_, err := signer.SignRequest(r)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "hello:ck", w.Body.String())
	})

	t.Run("NoHeader", func(t *testing.T) {
		r := oauth1test.NewRequest("http://temp.org/echo/hello", oauth1test.RequestSetup{})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "OAuth", w.Header().Get(oauth1.HttpHeaderWwwAuthenticate))
	})

	t.Run("BadSignature", func(t *testing.T) {
		r := oauth1test.NewRequest("http://temp.org/echo/hello?a=1", oauth1test.RequestSetup{})
		_, err := signer.SignRequest(r)
		require.NoError(t, err)

		// 签名后参数被篡改。
		r.URL.RawQuery = "a=2"

		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Realm", func(t *testing.T) {
		op := newOption()
		op.Realm = "api"
		router := newRouter(op)

		r := oauth1test.NewRequest("http://temp.org/echo/hello", oauth1test.RequestSetup{})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, `OAuth realm="api"`, w.Header().Get(oauth1.HttpHeaderWwwAuthenticate))
	})

	t.Run("Logger", func(t *testing.T) {
		recorder := oauth1test.NewLogRecorder()
		op := newOption()
		op.Logger = recorder
		router := newRouter(op)

		r := oauth1test.NewRequest("http://temp.org/echo/hello", oauth1test.RequestSetup{})
		router.ServeHTTP(httptest.NewRecorder(), r)

		r = oauth1test.NewRequest("http://temp.org/echo/hello", oauth1test.RequestSetup{})
		_, err := signer.SignRequest(r)
		require.NoError(t, err)
		router.ServeHTTP(httptest.NewRecorder(), r)

		logged := recorder.String()
		assert.Contains(t, logged, "level=WARN")
		assert.Contains(t, logged, "Type=NoAuthorization")
		assert.Contains(t, logged, "level=DEBUG")
		assert.Contains(t, logged, "Type=OK")
		assert.Contains(t, logged, "ConsumerKey=ck")
	})

	t.Run("MissingSecretFinder", func(t *testing.T) {
		assert.PanicsWithValue(t, "SecretFinder must be provided", func() {
			Verification(Option{})
		})
	})
}

func TestGetAuthorization_notVerified(t *testing.T) {
	r := oauth1test.NewRequest("http://temp.org/", oauth1test.RequestSetup{})

	_, ok := GetAuthorization(r)
	assert.False(t, ok)
}
