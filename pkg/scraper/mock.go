package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/shouni/go-career-manga/pkg/domain"
)

// MockClient はローカルのJSONファイルからプロフィールを読み込みます。
// 開発中に ScrapingDog のクレジットを消費しないための代替実装なのだ。
type MockClient struct {
	path string
}

// NewMockClient はモッククライアントを生成します。
// path には ScrapingDog の応答形式（レコードの配列）のJSONを指定します。
func NewMockClient(path string) *MockClient {
	return &MockClient{path: path}
}

// FetchProfile はモックファイルを読み込んで正規化済みプロフィールを返します。
// 引数の profileURL はそのまま正規化結果の ProfileURL に採用されます。
func (m *MockClient) FetchProfile(_ context.Context, profileURL string) (domain.Profile, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return domain.Profile{}, domain.NewStageError(
			domain.StageScrape, domain.ErrorKindValidation,
			fmt.Sprintf("モックファイル '%s' の読み込みに失敗しました", m.path), err)
	}

	var records []domain.ProviderRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return domain.Profile{}, domain.NewStageError(
			domain.StageScrape, domain.ErrorKindShape,
			"モックファイルのJSONパースに失敗しました", err)
	}
	if len(records) == 0 {
		return domain.Profile{}, domain.NewStageError(
			domain.StageScrape, domain.ErrorKindShape,
			"モックファイルにプロフィールデータがありません", nil)
	}

	return domain.NormalizeProfile(records[0], profileURL), nil
}
