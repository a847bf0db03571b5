package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

func SignHMACSHA256Base64(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// VerifyHMACSHA256Base64 recomputa a assinatura do corpo bruto e compara em tempo constante.
func VerifyHMACSHA256Base64(body []byte, signature, secret string) bool {
	if signature == "" || secret == "" {
		return false
	}
	return TimingSafeEqual(SignHMACSHA256Base64(body, secret), signature)
}
