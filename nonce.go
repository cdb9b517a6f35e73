package oauth1

import (
	"encoding/base64"
	"math/rand"
	"sync"
	"time"
)

/*
当前文件提供 nonce 的生成。
*/

// Noncer 生成 oauth_nonce ，即用于防止签名后的请求被重放的一次性随机值。
type Noncer interface {
	// Nonce 返回一个新的 nonce 。实现必须支持并发调用。
	Nonce() string
}

// NoncerFunc 是 [Noncer] 的函数形式适配。
type NoncerFunc func() string

// Nonce implements [Noncer.Nonce].
func (f NoncerFunc) Nonce() string {
	return f()
}

// NewRandomNoncer 返回默认的 [Noncer] 实现：
// 每次取 16 个随机字节，编码为 base64 标准格式（含补位），结果长度固定为 24 个字符。
//
// nonce 不要求密码学强度的随机性，但要求短时间内重复的概率足够低。
// 随机数源是实例自有的，并由互斥锁保护，并发调用不会读到同一段随机数据。
func NewRandomNoncer() Noncer {
	return &randomNoncer{
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

type randomNoncer struct {
	mu  sync.Mutex
	rnd *rand.Rand
	buf [16]byte
}

var _ Noncer = (*randomNoncer)(nil)

// Nonce implements [Noncer.Nonce].
func (x *randomNoncer) Nonce() string {
	x.mu.Lock()
	defer x.mu.Unlock()

	// math/rand 的 Read 总是填满整个 buf 且不返回错误。
	x.rnd.Read(x.buf[:])
	return base64.StdEncoding.EncodeToString(x.buf[:])
}
