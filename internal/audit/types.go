// Package audit defines the question bank, answer set, and result types for
// a health-check questionnaire, and the deterministic scoring over them.
package audit

// DefaultMaxPoints is the per-question ceiling used when neither the question
// nor the bank sets one.
const DefaultMaxPoints = 10

// Bank is a fixed, ordered set of questions plus the tiers a score maps to.
type Bank struct {
	Name        string     `json:"name" yaml:"name" toml:"name"`
	Version     int        `json:"version" yaml:"version" toml:"version"`
	Title       string     `json:"title,omitempty" yaml:"title" toml:"title"`
	Description string     `json:"description,omitempty" yaml:"description" toml:"description"`
	MaxPoints   int        `json:"max_points,omitempty" yaml:"max_points" toml:"max_points"`
	Questions   []Question `json:"questions" yaml:"questions" toml:"questions"`
	Tiers       []Tier     `json:"tiers" yaml:"tiers" toml:"tiers"`
}

// Question is a single multiple-choice prompt.
type Question struct {
	ID        int      `json:"id" yaml:"id" toml:"id"`
	Text      string   `json:"text" yaml:"text" toml:"text"`
	Options   []Option `json:"options" yaml:"options" toml:"options"`
	MaxPoints int      `json:"max_points,omitempty" yaml:"max_points" toml:"max_points"`
}

// Option is one selectable answer. An NA option opts its question out of
// both the earned and the achievable total.
type Option struct {
	Text   string `json:"text" yaml:"text" toml:"text"`
	Points int    `json:"points" yaml:"points" toml:"points"`
	NA     bool   `json:"na,omitempty" yaml:"na" toml:"na"`
}

// Tier is a percentage band with its canned content. Below is the exclusive
// upper bound; the last tier leaves it at 0 and catches everything above.
type Tier struct {
	ID          string       `json:"id" yaml:"id" toml:"id"`
	Below       int          `json:"below,omitempty" yaml:"below" toml:"below"`
	Title       string       `json:"title" yaml:"title" toml:"title"`
	Description string       `json:"description" yaml:"description" toml:"description"`
	Action      string       `json:"action" yaml:"action" toml:"action"`
	CTA         CallToAction `json:"cta" yaml:"cta" toml:"cta"`
}

// CallToAction is the link offered with a result.
type CallToAction struct {
	Label   string `json:"label" yaml:"label" toml:"label"`
	URL     string `json:"url" yaml:"url" toml:"url"`
	Context string `json:"context,omitempty" yaml:"context" toml:"context"`
	Subtext string `json:"subtext,omitempty" yaml:"subtext" toml:"subtext"`
}

// AnswerSet maps a question ID to the index of the selected option.
// A question with no entry is unanswered.
type AnswerSet map[int]int

// Result is the scored outcome of an answer set. Rank is the 1-based
// position of the selected tier, lowest first, out of Ranks tiers.
type Result struct {
	Percentage  int          `json:"percentage"`
	Tier        string       `json:"tier,omitempty"`
	Rank        int          `json:"rank"`
	Ranks       int          `json:"ranks"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Action      string       `json:"action"`
	CTA         CallToAction `json:"cta"`
}

// Progress reports how much of the bank has been answered.
type Progress struct {
	Answered int  `json:"answered"`
	Total    int  `json:"total"`
	Complete bool `json:"complete"`
}

// QuestionScore is the per-question contribution to a result.
type QuestionScore struct {
	QuestionID int    `json:"question_id"`
	Status     Status `json:"status"`
	Points     int    `json:"points"`
	MaxPoints  int    `json:"max_points"`
	Option     string `json:"option,omitempty"`
}

// Report is the top-level output object of the CLI.
type Report struct {
	Tool      string          `json:"tool"`
	Version   string          `json:"version"`
	Input     Input           `json:"input"`
	Progress  Progress        `json:"progress"`
	Result    Result          `json:"result"`
	Breakdown []QuestionScore `json:"breakdown"`
}

// Input describes the bank and answers a report was computed from.
type Input struct {
	Bank        string `json:"bank"`
	BankTitle   string `json:"bank_title,omitempty"`
	BankHash    string `json:"bank_hash"`
	AnswersFile string `json:"answers_file,omitempty"`
	AnswersHash string `json:"answers_hash,omitempty"`
}

// Ceiling returns the maximum achievable points for q within b.
func (b *Bank) Ceiling(q Question) int {
	if q.MaxPoints > 0 {
		return q.MaxPoints
	}
	if b.MaxPoints > 0 {
		return b.MaxPoints
	}
	return DefaultMaxPoints
}

// Question returns the question with the given ID.
func (b *Bank) Question(id int) (Question, bool) {
	for _, q := range b.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// Option resolves a selected index. Out-of-range indexes report false.
func (q Question) Option(index int) (Option, bool) {
	if index < 0 || index >= len(q.Options) {
		return Option{}, false
	}
	return q.Options[index], true
}
