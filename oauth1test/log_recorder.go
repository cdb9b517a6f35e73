package oauth1test

import (
	"fmt"
	"strings"
	"sync"

	"github.com/cmstar/go-logx"
)

// LogRecorder 实现 logx.Logger ，按顺序记录收到的每条日志，用于在测试中断言日志输出。
// 可在多个 goroutine 上并发使用。
//
// 每条日志同时记录为两种形式：
//   - 文本： level={LEVEL} message={MESSAGE} KEY1=VALUE1 KEY2=VALUE2 ... ，值经 fmt.Sprintf("%v") 格式化；
//   - 结构化：一个 map[string]string ，包含 level 、 message 和各个键值对。
//
// 若键值对的数量为奇数，最后一个落单的值记录在 UNKNOWN 键上。
type LogRecorder struct {
	mu      sync.Mutex
	entries []logEntry
}

// logEntry 是一条日志的两种形式。
type logEntry struct {
	text string
	m    map[string]string
}

var _ logx.Logger = (*LogRecorder)(nil)

// NewLogRecorder 创建一个 LogRecorder 的新实例。
func NewLogRecorder() *LogRecorder {
	return &LogRecorder{}
}

// Log 实现 Logger.Log() 。
func (l *LogRecorder) Log(level logx.Level, message string, keyValues ...interface{}) error {
	b := new(strings.Builder)
	m := make(map[string]string)

	record := func(k, v string) {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(v)
		m[k] = v
	}

	record("level", logx.LevelToString(level))
	record("message", message)

	for i := 0; i < len(keyValues); i += 2 {
		if i+1 < len(keyValues) {
			record(fmt.Sprintf("%v", keyValues[i]), fmt.Sprintf("%v", keyValues[i+1]))
		} else {
			record("UNKNOWN", fmt.Sprintf("%v", keyValues[i]))
		}
	}

	l.mu.Lock()
	l.entries = append(l.entries, logEntry{text: b.String(), m: m})
	l.mu.Unlock()
	return nil
}

// LogFn 实现 Logger.LogFn() 。
func (l *LogRecorder) LogFn(level logx.Level, messageFactory func() (string, []interface{})) error {
	message, keyValues := messageFactory()
	return l.Log(level, message, keyValues...)
}

// String 返回当前记录的完整日志，每条日志一行，行尾为换行符。
func (l *LogRecorder) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	b := new(strings.Builder)
	for _, e := range l.entries {
		b.WriteString(e.text)
		b.WriteByte('\n')
	}
	return b.String()
}

// Map 返回结构化形式的日志。每条日志对应一个 map 。
func (l *LogRecorder) Map() []map[string]string {
	l.mu.Lock()
	defer l.mu.Unlock()

	m := make([]map[string]string, len(l.entries))
	for i, e := range l.entries {
		m[i] = e.m
	}
	return m
}
