package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shouni/go-career-manga/pkg/domain"
)

const testProfileJSON = `[{
	"fullName": "Sarah Chen",
	"headline": "Senior Engineer",
	"location": "San Francisco Bay Area",
	"about": "Builder of things.",
	"profile_photo": "https://x/y.jpg",
	"experience": [{"position": "Engineer", "company_name": "Acme", "duration": "Jan 2020 - Present"}],
	"education": [{"school": "MIT", "degree": "CS"}]
}]`

func TestClient_FetchProfile(t *testing.T) {
	t.Run("正常系: クエリパラメータと正規化を確認するのだ", func(t *testing.T) {
		var gotQuery map[string]string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = map[string]string{
				"api_key": r.URL.Query().Get("api_key"),
				"type":    r.URL.Query().Get("type"),
				"linkId":  r.URL.Query().Get("linkId"),
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(testProfileJSON))
		}))
		defer server.Close()

		client := New("test-key", 5*time.Second, WithBaseURL(server.URL+"/"))
		profile, err := client.FetchProfile(context.Background(), "https://www.linkedin.com/in/sarah-chen")
		if err != nil {
			t.Fatalf("取得に失敗したのだ: %v", err)
		}

		if gotQuery["api_key"] != "test-key" || gotQuery["type"] != "profile" || gotQuery["linkId"] != "sarah-chen" {
			t.Errorf("クエリパラメータが違うのだ: %+v", gotQuery)
		}
		if profile.Name != "Sarah Chen" {
			t.Errorf("名前が違うのだ: %q", profile.Name)
		}
		if profile.ProfileURL != "https://www.linkedin.com/in/sarah-chen" {
			t.Errorf("ProfileURL は呼び出し元の指定値を保持すべきなのだ: %q", profile.ProfileURL)
		}
		if len(profile.Experience) != 1 || profile.Experience[0].Company != "Acme" {
			t.Errorf("職歴の正規化が違うのだ: %+v", profile.Experience)
		}
	})

	t.Run("不正URLではネットワーク呼び出しを行わないこと", func(t *testing.T) {
		called := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer server.Close()

		client := New("test-key", 5*time.Second, WithBaseURL(server.URL+"/"))
		_, err := client.FetchProfile(context.Background(), "https://example.com/in/someone")

		var se *domain.StageError
		if !errors.As(err, &se) {
			t.Fatalf("StageError が返るべきなのだ: %v", err)
		}
		if se.Kind != domain.ErrorKindValidation {
			t.Errorf("分類は validation であるべきなのだ: %s", se.Kind)
		}
		if called {
			t.Error("検証失敗時にネットワーク呼び出しが発生したのだ")
		}
	})

	t.Run("HTTP 429 はステータスコード付きの transport エラーになること", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := New("test-key", 5*time.Second, WithBaseURL(server.URL+"/"))
		_, err := client.FetchProfile(context.Background(), "https://www.linkedin.com/in/sarah-chen")

		var se *domain.StageError
		if !errors.As(err, &se) {
			t.Fatalf("StageError が返るべきなのだ: %v", err)
		}
		if se.Stage != domain.StageScrape || se.Kind != domain.ErrorKindTransport {
			t.Errorf("工程・分類が違うのだ: %+v", se)
		}
		if !strings.Contains(se.Message, "429") {
			t.Errorf("メッセージにステータスコードが含まれるべきなのだ: %q", se.Message)
		}
	})

	t.Run("空配列は shape エラーとして区別されること", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		}))
		defer server.Close()

		client := New("test-key", 5*time.Second, WithBaseURL(server.URL+"/"))
		_, err := client.FetchProfile(context.Background(), "https://www.linkedin.com/in/sarah-chen")

		var se *domain.StageError
		if !errors.As(err, &se) {
			t.Fatalf("StageError が返るべきなのだ: %v", err)
		}
		if se.Kind != domain.ErrorKindShape {
			t.Errorf("到達はしたが中身が空のケースは shape であるべきなのだ: %s", se.Kind)
		}
	})

	t.Run("APIキー未設定は validation エラーになること", func(t *testing.T) {
		client := New("", 5*time.Second)
		_, err := client.FetchProfile(context.Background(), "https://www.linkedin.com/in/sarah-chen")

		var se *domain.StageError
		if !errors.As(err, &se) || se.Kind != domain.ErrorKindValidation {
			t.Errorf("APIキー未設定は validation エラーであるべきなのだ: %v", err)
		}
	})
}

func TestMockClient_FetchProfile(t *testing.T) {
	t.Run("モックファイルから読み込めるのだ", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "profile.json")
		if err := os.WriteFile(path, []byte(testProfileJSON), 0o644); err != nil {
			t.Fatal(err)
		}

		mock := NewMockClient(path)
		profile, err := mock.FetchProfile(context.Background(), "https://www.linkedin.com/in/mock-profile")
		if err != nil {
			t.Fatalf("モック読み込みに失敗したのだ: %v", err)
		}
		if profile.Name != "Sarah Chen" || profile.ProfileURL != "https://www.linkedin.com/in/mock-profile" {
			t.Errorf("モックの正規化結果が違うのだ: %+v", profile)
		}
	})

	t.Run("ファイルがない場合はエラーになること", func(t *testing.T) {
		mock := NewMockClient(filepath.Join(t.TempDir(), "missing.json"))
		if _, err := mock.FetchProfile(context.Background(), "https://www.linkedin.com/in/x"); err == nil {
			t.Error("存在しないファイルでエラーが発生しませんでした")
		}
	})
}
