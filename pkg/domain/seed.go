package domain

import (
	"crypto/sha256"
	"encoding/binary"
)

// SeedFromName は主人公の名前から決定論的なシード値を生成します。
// 同一人物のパネルは同じシードで描画されるため、顔立ちの一貫性が保たれるのだ。
func SeedFromName(name string) int64 {
	hash := sha256.Sum256([]byte(name))
	// ハッシュの最初の4バイトを int32 相当に変換
	seed := int64(binary.BigEndian.Uint32(hash[:4]))
	// Geminiのシード値は正の数が望ましいため、最上位ビットを落とすのが安全なのだ
	return seed & 0x7FFFFFFF
}
