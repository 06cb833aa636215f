package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestStoryOutline_JSON(t *testing.T) {
	t.Run("AIからのレスポンス形式をシミュレートするのだ", func(t *testing.T) {
		inputJSON := `{
			"outline": [
				{"stage": "Ordinary World", "plotPoint": "Film school in a small town"},
				{"stage": "Call to Adventure", "plotPoint": "First job offer at Acme"}
			]
		}`

		var outline StoryOutline
		if err := json.Unmarshal([]byte(inputJSON), &outline); err != nil {
			t.Fatalf("パース失敗なのだ: %v", err)
		}
		if len(outline.Outline) != 2 {
			t.Fatalf("段階数が違うのだ: %d", len(outline.Outline))
		}
		if outline.Outline[0].Stage != "Ordinary World" {
			t.Errorf("ステージ名が違うのだ: %s", outline.Outline[0].Stage)
		}
	})
}

func TestStoryOutline_Validate(t *testing.T) {
	valid := StoryOutline{Outline: []OutlineBeat{
		{Stage: "Ordinary World", PlotPoint: "a"},
		{Stage: "Return", PlotPoint: "b"},
	}}

	t.Run("段階数が一致すれば成功すること", func(t *testing.T) {
		if err := valid.Validate(2); err != nil {
			t.Errorf("正常なアウトラインでエラーが発生しました: %v", err)
		}
	})
	t.Run("段階数の不一致を検出すること", func(t *testing.T) {
		if err := valid.Validate(8); err == nil {
			t.Error("段階数の不一致でエラーが発生しませんでした")
		}
	})
	t.Run("空のアウトラインを拒否すること", func(t *testing.T) {
		if err := (StoryOutline{}).Validate(8); err == nil {
			t.Error("空のアウトラインでエラーが発生しませんでした")
		}
	})
	t.Run("空フィールドを拒否すること", func(t *testing.T) {
		broken := StoryOutline{Outline: []OutlineBeat{{Stage: "Ordeal", PlotPoint: ""}}}
		if err := broken.Validate(1); err == nil {
			t.Error("PlotPointが空なのにエラーが発生しませんでした")
		}
	})
}

func TestPanelScripts_Validate(t *testing.T) {
	t.Run("欠番は許容すること", func(t *testing.T) {
		ps := PanelScripts{
			{PanelNumber: 1, ImagePrompt: "a"},
			{PanelNumber: 3, ImagePrompt: "b"}, // 2が欠番でも下流は耐える契約
		}
		if err := ps.Validate(); err != nil {
			t.Errorf("欠番ありでエラーが発生しました: %v", err)
		}
	})
	t.Run("重複番号を拒否すること", func(t *testing.T) {
		ps := PanelScripts{
			{PanelNumber: 1, ImagePrompt: "a"},
			{PanelNumber: 1, ImagePrompt: "b"},
		}
		if err := ps.Validate(); err == nil {
			t.Error("重複番号でエラーが発生しませんでした")
		}
	})
	t.Run("非正の番号を拒否すること", func(t *testing.T) {
		ps := PanelScripts{{PanelNumber: 0, ImagePrompt: "a"}}
		if err := ps.Validate(); err == nil {
			t.Error("番号0でエラーが発生しませんでした")
		}
	})
	t.Run("空バッチを拒否すること", func(t *testing.T) {
		if err := (PanelScripts{}).Validate(); err == nil {
			t.Error("空バッチでエラーが発生しませんでした")
		}
	})
}

func TestPanelScripts_SortByNumber(t *testing.T) {
	ps := PanelScripts{
		{PanelNumber: 3}, {PanelNumber: 1}, {PanelNumber: 2},
	}
	sorted := ps.SortByNumber()

	for i, want := range []int{1, 2, 3} {
		if sorted[i].PanelNumber != want {
			t.Errorf("整列結果が違うのだ: index %d = %d, 期待 %d", i, sorted[i].PanelNumber, want)
		}
	}
	// 元のスライスは変更しないこと
	if ps[0].PanelNumber != 3 {
		t.Error("SortByNumber が元のスライスを破壊したのだ")
	}
}

func TestStageError(t *testing.T) {
	cause := errors.New("connection refused")
	se := NewStageError(StageScrape, ErrorKindTransport, "ScrapingDog APIに到達できません", cause)

	if !errors.Is(se, cause) {
		t.Error("Unwrap でエラーチェーンを辿れないのだ")
	}

	var extracted *StageError
	if !errors.As(error(se), &extracted) {
		t.Fatal("errors.As で StageError を取り出せないのだ")
	}
	if extracted.Stage != StageScrape || extracted.Kind != ErrorKindTransport {
		t.Errorf("工程・分類が保持されていないのだ: %+v", extracted)
	}
}

func TestFailureResult(t *testing.T) {
	se := NewStageError(StageOutline, ErrorKindShape, "応答がスキーマを満たしません", nil)
	result := FailureResult(se)

	if result.Success {
		t.Error("失敗結果の Success が true なのだ")
	}
	if result.FailedStage != StageOutline || result.ErrorKind != ErrorKindShape {
		t.Errorf("失敗工程の情報が引き継がれていないのだ: %+v", result)
	}
	if result.Message == "" {
		t.Error("メッセージが空なのだ")
	}
}
