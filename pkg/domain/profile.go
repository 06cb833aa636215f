package domain

import "strings"

// Experience は職歴の1エントリを保持します。
type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	CompanyURL  string `json:"company_url,omitempty"`
}

// Education は学歴の1エントリを保持します。
type Education struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study,omitempty"`
	Duration     string `json:"duration"`
}

// Profile は正規化済みのプロフィールデータです。
// すべてのフィールドは欠損時に空文字列・空スライスへ倒すのが契約なのだ。
// プロンプトテンプレートが未定義値を埋め込む事故を防ぐためだよ。
type Profile struct {
	Name         string       `json:"name"`
	Headline     string       `json:"headline"`
	Location     string       `json:"location"`
	About        string       `json:"about"`
	Experience   []Experience `json:"experience"`
	Education    []Education  `json:"education"`
	Skills       []string     `json:"skills"`
	Connections  string       `json:"connections,omitempty"`
	Followers    string       `json:"followers,omitempty"`
	ProfileURL   string       `json:"profile_url"`
	ProfilePhoto string       `json:"profile_photo,omitempty"`
}

// ProviderExperience は ScrapingDog API が返す職歴エントリの生データです。
type ProviderExperience struct {
	Position    string `json:"position"`
	CompanyName string `json:"company_name"`
	CompanyURL  string `json:"company_url"`
	Location    string `json:"location"`
	Summary     string `json:"summary"`
	StartsAt    string `json:"starts_at"`
	EndsAt      string `json:"ends_at"`
	Duration    string `json:"duration"`
}

// ProviderEducation は ScrapingDog API が返す学歴エントリの生データです。
type ProviderEducation struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
	StartsAt     string `json:"starts_at"`
	EndsAt       string `json:"ends_at"`
}

// ProviderRecord は ScrapingDog のプロフィール応答（配列の1要素）です。
// プロバイダーのスキーマ変更はこの構造体と NormalizeProfile だけに閉じ込めます。
type ProviderRecord struct {
	FullName         string               `json:"fullName"`
	FirstName        string               `json:"first_name"`
	LastName         string               `json:"last_name"`
	PublicIdentifier string               `json:"public_identifier"`
	ProfilePhoto     string               `json:"profile_photo"`
	Headline         string               `json:"headline"`
	Location         string               `json:"location"`
	Followers        string               `json:"followers"`
	Connections      string               `json:"connections"`
	About            string               `json:"about"`
	Experience       []ProviderExperience `json:"experience"`
	Education        []ProviderEducation  `json:"education"`
}

// NormalizeProfile はプロバイダー固有のレコードを安定した内部形式に変換するのだ。
// 副作用のない純粋な変換で、欠損フィールドは例外にせず空値へ倒します。
// ProfileURL は常に呼び出し元が指定した originalURL を採用します。
func NormalizeProfile(rec ProviderRecord, originalURL string) Profile {
	experience := make([]Experience, 0, len(rec.Experience))
	for _, exp := range rec.Experience {
		duration := exp.Duration
		if duration == "" {
			duration = joinDateRange(exp.StartsAt, exp.EndsAt)
		}
		experience = append(experience, Experience{
			Title:       exp.Position,
			Company:     exp.CompanyName,
			Duration:    duration,
			Description: exp.Summary,
			Location:    exp.Location,
			CompanyURL:  exp.CompanyURL,
		})
	}

	education := make([]Education, 0, len(rec.Education))
	for _, edu := range rec.Education {
		education = append(education, Education{
			School:       edu.School,
			Degree:       edu.Degree,
			FieldOfStudy: edu.FieldOfStudy,
			Duration:     joinDateRange(edu.StartsAt, edu.EndsAt),
		})
	}

	return Profile{
		Name:       rec.FullName,
		Headline:   rec.Headline,
		Location:   rec.Location,
		About:      rec.About,
		Experience: experience,
		Education:  education,
		// ScrapingDog はスキルを返さないため常に空スライスなのだ
		Skills:       []string{},
		Connections:  rec.Connections,
		Followers:    rec.Followers,
		ProfileURL:   originalURL,
		ProfilePhoto: rec.ProfilePhoto,
	}
}

// joinDateRange は開始・終了日を " - " で連結します。両方空なら空文字列を返します。
func joinDateRange(start, end string) string {
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)
	if start == "" && end == "" {
		return ""
	}
	return strings.TrimSpace(start + " - " + end)
}

// CurrentRole は直近の役職名を返します。職歴が空の場合は空文字列です。
func (p Profile) CurrentRole() string {
	if len(p.Experience) == 0 {
		return ""
	}
	return p.Experience[0].Title
}

// CurrentCompany は直近の所属企業名を返します。職歴が空の場合は空文字列です。
func (p Profile) CurrentCompany() string {
	if len(p.Experience) == 0 {
		return ""
	}
	return p.Experience[0].Company
}
