package domain

import (
	"fmt"
	"regexp"
)

var (
	// profileURLRegex は LinkedIn プロフィールURLの正規形に一致します。
	// スキームは https、ホストは linkedin.com / www.linkedin.com、
	// パスは /in/<id> で、末尾スラッシュとクエリ文字列を許容するのだ。
	profileURLRegex = regexp.MustCompile(`^https://(www\.)?linkedin\.com/in/[a-zA-Z0-9\-_%]+/?(\?.*)?$`)

	// linkIDRegex は /in/ 直後のパスセグメントを取り出します。
	linkIDRegex = regexp.MustCompile(`/in/([^/?]+)`)
)

// IsValidProfileURL は指定されたURLが LinkedIn プロフィールURLの形かを判定します。
// ネットワーク呼び出しの前段チェックとして使い、無駄な往復を避けるのだ。
func IsValidProfileURL(rawURL string) bool {
	return profileURLRegex.MatchString(rawURL)
}

// ExtractLinkID は LinkedIn プロフィールURLから公開識別子（linkId）を抽出します。
// 末尾スラッシュやクエリ文字列は識別子に含めません。
func ExtractLinkID(rawURL string) (string, error) {
	if !IsValidProfileURL(rawURL) {
		return "", fmt.Errorf("LinkedInプロフィールURLの形式ではありません: %q", rawURL)
	}

	m := linkIDRegex.FindStringSubmatch(rawURL)
	if m == nil {
		return "", fmt.Errorf("URLから識別子を抽出できませんでした: %q", rawURL)
	}
	return m[1], nil
}
