package oauth1

import "strings"

/*
当前文件提供签名基串（ Signature Base String ）的构建。
*/

// NormalizeURL 返回规范化后用于签名计算的 URL ：
// http 的 URL 显式携带默认端口 80 ，或 https 的 URL 显式携带默认端口 443 时，端口被移除，
// 比如 http://temp.org:80/path 规范化为 http://temp.org/path 。
//
// 只移除紧跟在主机名之后的默认端口，出现在路径等其他位置上的相似片段不受影响；
// 非默认端口（如 :8080 ）总是被保留。其余输入原样返回。
func NormalizeURL(rawURL string) string {
	var defaultPort string
	switch {
	case strings.HasPrefix(rawURL, "http://"):
		defaultPort = ":80"
	case strings.HasPrefix(rawURL, "https://"):
		defaultPort = ":443"
	default:
		return rawURL
	}

	// 主机段自 scheme:// 之后、到第一个“/”为止。默认端口必须恰好在主机段的末尾。
	hostStart := strings.Index(rawURL, "//") + 2
	pathIdx := strings.IndexByte(rawURL[hostStart:], '/')
	if pathIdx < 0 {
		return rawURL
	}

	pathStart := hostStart + pathIdx
	if !strings.HasSuffix(rawURL[:pathStart], defaultPort) {
		return rawURL
	}

	return rawURL[:pathStart-len(defaultPort)] + rawURL[pathStart:]
}

// SignatureBaseString 构建签名基串，即 OAuth 1.0 中被 HMAC-SHA1 签名的串（ RFC 5849 3.4.1 节）。
// 格式为：
//
//	METHOD&url&params
//
// 三部分用“&”连接： METHOD 是大写的 HTTP 方法名，它不含特殊字符，不需要转义；
// url 是经 [NormalizeURL] 规范化、再整体做一次百分号转义的请求地址；
// params 是整体做一次百分号转义的参数串，即 [ParamList.String] 的结果。
//
// 基串必须和服务端重新计算出的逐字节一致，任何一处转义或排序上的差异都会导致校验失败，
// 而且通常没有直观的报错信息。
func SignatureBaseString(method, rawURL, paramString string) string {
	b := new(strings.Builder)
	b.WriteString(strings.ToUpper(method))
	b.WriteByte('&')
	appendEncoded(b, NormalizeURL(rawURL))
	b.WriteByte('&')
	appendEncoded(b, paramString)
	return b.String()
}
