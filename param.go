package oauth1

import (
	"net/url"
	"sort"
	"strings"
)

/*
当前文件提供参与签名的参数表的收集、排序与拼接。
*/

// Param 表示参与签名计算的一个参数。名称和值都已经过百分号转义。
type Param struct {
	Key   string // 转义后的参数名称。
	Value string // 转义后的参数值。
}

// ParamList 是一次签名计算中参与签名的全部参数。
//
// 参数在加入时即完成百分号转义，排序在全部加入后进行。先转义、后排序的次序是算法的一部分，
// 不可对调：转义可能改变字符间的相对顺序，比如“é”的原始字节大于“a”，
// 转义为“%C3%A9”后反而排在“a”前面。
type ParamList []Param

// Add 将一个参数转义后加入参数表。
// 同名参数可以重复加入，每个都参与签名，不会被去重。
func (p *ParamList) Add(key, value string) {
	*p = append(*p, Param{
		Key:   PercentEncode(key),
		Value: PercentEncode(value),
	})
}

// AddValues 将 values 内的全部参数逐个加入参数表。
// 一个名称带有多个值时，每个值都作为一个独立的参数加入。
func (p *ParamList) AddValues(values url.Values) {
	for key, vs := range values {
		for _, value := range vs {
			p.Add(key, value)
		}
	}
}

// Sort 将参数按转义后的名称的字节顺序升序排列，名称相同时再按转义后的值排序。
// 注意字节顺序不是字典顺序，字节顺序下，英文大写字母在小写字母前面，比如 X 排在 a 前面。
func (p ParamList) Sort() {
	sort.Slice(p, func(i, j int) bool {
		if p[i].Key != p[j].Key {
			return p[i].Key < p[j].Key
		}
		return p[i].Value < p[j].Value
	})
}

// String 将参数表按当前顺序以 key=value 形式用“&”拼接起来。
// 拼接结果不做整体转义，整体转义在构建签名基串时进行。
func (p ParamList) String() string {
	b := new(strings.Builder)
	for i, v := range p {
		if i > 0 {
			b.WriteByte('&')
		}

		b.WriteString(v.Key)
		b.WriteByte('=')
		b.WriteString(v.Value)
	}
	return b.String()
}
