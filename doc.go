/*
oauth1 实现 OAuth 1.0 （ RFC 5849 ）的请求签名，签名算法只支持 HMAC-SHA1 。

客户端通过 [Signer] 为请求计算签名并生成 Authorization 头，或者用 [Transport] 在发送时自动签名；
服务端通过 [Verify] 重新计算并校验签名， chimw 和 echomw 子包提供对应的中间件。
本包只负责对已经持有的消费方凭据和 token 凭据做签名，不涉及 token 的申请与发放流程。

# 凭据

签名使用两组凭据（ [Credential] ）：
  - 消费方凭据（ consumer key/secret ）标识调用方应用的身份。
  - token 凭据（ token key/secret ）标识被授权的用户或会话。尚未持有 token 时，
    token 整体留空即可，空字符串照常参与计算，不会被省略。

# 签名算法

字符集统一使用 UTF-8 。百分号转义遵循 RFC 3986 的严格形式：除 ASCII 字母、数字和
“-”“.”“_”“~”外一律转义为大写十六进制的 %XX ，空格转义为 %20 而不是“+”。

签名的计算步骤为：
 1. 收集参数。包括六个协议参数 oauth_consumer_key 、 oauth_nonce 、 oauth_signature_method
    （固定为 HMAC-SHA1 ）、 oauth_timestamp 、 oauth_token 、 oauth_version （固定为 1.0 ），
    加上 URL 上的全部 query 参数和表单类型 body 里的全部参数。
    同名参数每个值都是独立的一项，不去重。每项的名称和值在加入时即完成百分号转义。
 2. 排序。按转义后的名称的字节顺序升序排列，名称相同时再按转义后的值排序。
    先转义、后排序的次序不可对调，转义可能改变字符间的相对顺序。
    之后按 key=value 形式用“&”拼接成参数串。
 3. 规范化 URL 。 http 地址上显式携带的默认端口 80 、 https 地址上显式携带的默认端口 443
    被移除，其他端口保留。地址不含 query string 部分。
 4. 构建签名基串，格式为（两处“&”为字面量）：

    METHOD&percentEncode(url)&percentEncode(params)

 5. 推导密钥 percentEncode(consumerSecret)&percentEncode(tokenSecret) ，
    计算基串的 HMAC-SHA1 值，按 base64 标准格式（含补位）编码，得到签名。

# Authorization 头

签名放在请求的 Authorization 头上，七个字段固定按下面的顺序排列：

	OAuth oauth_consumer_key="..", oauth_token="..", oauth_signature_method="HMAC-SHA1",
	oauth_signature="..", oauth_timestamp="..", oauth_nonce="..", oauth_version="1.0"

除 oauth_timestamp 外，每个字段的值写入头时会再做一次百分号转义：签名和 nonce 是
base64 格式，含有不能直接放进引号的“+”“/”“=”字符。

# 例子

消费方凭据为 (ck, cs) ， token 凭据为 (tk, ts) ， nonce 固定为 abc123 ，
时间戳固定为 1318467427 。待签名的请求为：

	POST http://example.com:80/resource
	Content-Type: application/x-www-form-urlencoded

	file=vacation.jpg&size=original

收集并排序参数，拼接得到参数串：

	file=vacation.jpg&oauth_consumer_key=ck&oauth_nonce=abc123&oauth_signature_method=HMAC-SHA1&oauth_timestamp=1318467427&oauth_token=tk&oauth_version=1.0&size=original

URL 规范化移除默认端口 80 ，得到 http://example.com/resource 。构建签名基串：

	POST&http%3A%2F%2Fexample.com%2Fresource&file%3Dvacation.jpg%26oauth_consumer_key%3Dck%26oauth_nonce%3Dabc123%26oauth_signature_method%3DHMAC-SHA1%26oauth_timestamp%3D1318467427%26oauth_token%3Dtk%26oauth_version%3D1.0%26size%3Doriginal

密钥为 cs&ts ，计算 HMAC-SHA1 并编码，得到签名：

	QMFvlnH//bn0SBT1/EP12MU4IkU=

拼接 Authorization 头（签名中的“/”“=”再次转义），追加到请求上，最终请求为：

	POST http://example.com:80/resource
	Content-Type: application/x-www-form-urlencoded
	Authorization: OAuth oauth_consumer_key="ck", oauth_token="tk", oauth_signature_method="HMAC-SHA1", oauth_signature="QMFvlnH%2F%2Fbn0SBT1%2FEP12MU4IkU%3D", oauth_timestamp="1318467427", oauth_nonce="abc123", oauth_version="1.0"

	file=vacation.jpg&size=original

服务端的校验过程是同样的计算：带入头上的 nonce 和时间戳重新算一遍签名，再和头上的签名比对。
*/
package oauth1
