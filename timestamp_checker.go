package oauth1

import (
	"fmt"
	"time"
)

/*
当前文件提供时间戳的校验。
*/

// TimeCheckerFunc 在服务端校验签名时，校验 oauth_timestamp 的值的有效性。
// 若时间校验不通过，返回描述原因的错误；否则返回 nil 表示校验通过。
type TimeCheckerFunc func(timestamp int64) error

var (
	// NoTimeChecker 是不校验时间戳的 [TimeCheckerFunc] 。
	NoTimeChecker TimeCheckerFunc = func(timestamp int64) error {
		return nil
	}

	// DefaultTimeChecker 是默认的时间戳校验 [TimeCheckerFunc] ：
	// 要求签名携带的时间戳与服务器当前时间的误差在 5 分钟内。
	DefaultTimeChecker TimeCheckerFunc = MaxDeviationTimeChecker(300)
)

// MaxDeviationTimeChecker 返回一个 [TimeCheckerFunc] ，
// 其校验给定的时间戳与当前时间的误差必须小于等于 maxDeviation ，单位为秒。
// maxDeviation 应为非负数。
func MaxDeviationTimeChecker(maxDeviation int64) TimeCheckerFunc {
	return func(timestamp int64) error {
		now := time.Now().Unix()
		d := now - timestamp

		// ABS().
		if d < 0 {
			d = -d
		}

		if d > maxDeviation {
			return fmt.Errorf("oauth_timestamp deviates too much: allow %ds, the server time is %d, got %d", maxDeviation, now, timestamp)
		}

		return nil
	}
}
