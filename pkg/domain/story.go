package domain

import (
	"fmt"
	"sort"
)

// OutlineBeat は物語アウトラインの1段階（ヒーローズ・ジャーニーのステージ）です。
type OutlineBeat struct {
	Stage     string `json:"stage"`
	PlotPoint string `json:"plotPoint"`
}

// StoryOutline は AI モデルから返されるアウトライン全体の構造です。
// Outline の並び順が物語の進行順をそのまま表します。
type StoryOutline struct {
	Outline []OutlineBeat `json:"outline"`
}

// Validate はアウトラインが期待パネル数ぶんの段階を持つかを検査します。
func (s StoryOutline) Validate(expected int) error {
	if len(s.Outline) == 0 {
		return fmt.Errorf("アウトラインが空です")
	}
	if expected > 0 && len(s.Outline) != expected {
		return fmt.Errorf("アウトラインの段階数が一致しません: 期待 %d, 実際 %d", expected, len(s.Outline))
	}
	for i, beat := range s.Outline {
		if beat.Stage == "" || beat.PlotPoint == "" {
			return fmt.Errorf("アウトライン第 %d 段階に空のフィールドがあります", i+1)
		}
	}
	return nil
}

// PanelScript は1パネルぶんの台本です。
type PanelScript struct {
	PanelNumber      int    `json:"panelNumber"`
	Caption          string `json:"caption"`
	StoryDescription string `json:"storyDescription"`
	ImagePrompt      string `json:"imagePrompt"`
}

// PanelScriptResponse は AI モデルから返される台本全体の構造です。
type PanelScriptResponse struct {
	Panels []PanelScript `json:"panels"`
}

// PanelScripts はパネル台本のスライスに対する操作をまとめた型です。
type PanelScripts []PanelScript

// Validate は台本バッチの最低限の形を検査します。
// パネル番号はモデルが振るため、欠番は許容し、非正値と重複だけを拒否するのだ。
func (ps PanelScripts) Validate() error {
	if len(ps) == 0 {
		return fmt.Errorf("パネル台本が空です")
	}
	seen := make(map[int]struct{}, len(ps))
	for _, p := range ps {
		if p.PanelNumber <= 0 {
			return fmt.Errorf("パネル番号が不正です: %d", p.PanelNumber)
		}
		if _, ok := seen[p.PanelNumber]; ok {
			return fmt.Errorf("パネル番号が重複しています: %d", p.PanelNumber)
		}
		seen[p.PanelNumber] = struct{}{}
		if p.ImagePrompt == "" {
			return fmt.Errorf("パネル %d の画像プロンプトが空です", p.PanelNumber)
		}
	}
	return nil
}

// SortByNumber はパネル番号の昇順に整列した新しいスライスを返します。
func (ps PanelScripts) SortByNumber() PanelScripts {
	sorted := make(PanelScripts, len(ps))
	copy(sorted, ps)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].PanelNumber < sorted[j].PanelNumber
	})
	return sorted
}

// PanelImage は描画済みパネルのバイナリです。パネル番号と1対1で対応します。
type PanelImage struct {
	PanelNumber int
	Data        []byte
	MimeType    string
}

// RenderedPanel は永続化されたパネル画像への参照です。
type RenderedPanel struct {
	PanelNumber int    `json:"panel_number"`
	Path        string `json:"path"`
}

// PanelFailure は個別パネルの描画失敗を表します。
// バッチ全体を落とさず、失敗したパネルだけを呼び出し元へ報告するのだ。
type PanelFailure struct {
	PanelNumber int    `json:"panel_number"`
	Message     string `json:"message"`
}
