package questionbank

// Difficulty is a question bank tier.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists the tiers in ascending order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Label is the Arabic name of the tier. Anything that is not easy or medium
// is labelled hard.
func (d Difficulty) Label() string {
	switch d {
	case DifficultyEasy:
		return "سهل"
	case DifficultyMedium:
		return "متوسط"
	default:
		return "صعب"
	}
}

// TypeMCQ marks a multiple-choice record. Every other type is free answer.
const TypeMCQ = "mcq"

// Record is a single stored question.
type Record struct {
	Type     string   `json:"type"`
	Question string   `json:"question"`
	Options  []string `json:"options,omitempty"`
	Correct  string   `json:"correct"`
	Solution string   `json:"solution"`
}

// IsMCQ reports whether the record is multiple choice.
func (r Record) IsMCQ() bool {
	return r.Type == TypeMCQ
}

// Document is the on-disk question bank:
//
//	{"questions_bank": {"<subject>": {"easy": [...], "medium": [...], "hard": [...]}}}
type Document struct {
	QuestionsBank map[string]map[Difficulty][]Record `json:"questions_bank"`
}

const documentSchema = `{
  "type": "object",
  "required": ["questions_bank"],
  "properties": {
    "questions_bank": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "additionalProperties": false,
        "properties": {
          "easy": {"$ref": "#/definitions/records"},
          "medium": {"$ref": "#/definitions/records"},
          "hard": {"$ref": "#/definitions/records"}
        }
      }
    }
  },
  "definitions": {
    "records": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["type", "question", "correct"],
        "properties": {
          "type": {"type": "string", "minLength": 1},
          "question": {"type": "string", "minLength": 1},
          "options": {"type": "array", "items": {"type": "string"}},
          "correct": {"type": "string"},
          "solution": {"type": "string"}
        }
      }
    }
  }
}`
