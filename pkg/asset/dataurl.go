package asset

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// DefaultImageMimeType は MIME タイプが特定できない場合のフォールバックです。
const DefaultImageMimeType = "image/png"

// EncodeDataURL は生成画像のバイト列を data URL 文字列に変換します。
// MIME タイプが空の場合は image/png として扱います。
func EncodeDataURL(data []byte, mimeType string) string {
	if mimeType == "" {
		mimeType = DefaultImageMimeType
	}
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}

// IsDataURL は文字列が data URL 形式かどうかを判定します。
func IsDataURL(s string) bool {
	return strings.HasPrefix(s, "data:")
}

// DecodeDataURL は data URL 文字列をバイト列と MIME タイプに復元します。
// ヘッダーに MIME タイプが含まれない場合は image/png を返します。
func DecodeDataURL(dataURL string) ([]byte, string, error) {
	header, payload, ok := strings.Cut(dataURL, ",")
	if !ok {
		return nil, "", fmt.Errorf("data URL の形式が不正です: 区切り文字が見つかりません")
	}

	mimeType := DefaultImageMimeType
	if rest, found := strings.CutPrefix(header, "data:"); found {
		if mt, _, hasParam := strings.Cut(rest, ";"); hasParam && mt != "" {
			mimeType = mt
		} else if !hasParam && rest != "" {
			mimeType = rest
		}
	} else {
		return nil, "", fmt.Errorf("data URL の形式が不正です: data: プレフィックスがありません")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("data URL のデコードに失敗しました: %w", err)
	}
	return data, mimeType, nil
}

// ExtForMimeType は MIME タイプに対応する拡張子を返します。未知の場合は .png です。
func ExtForMimeType(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".png"
	}
}
