package curriculum

// Document is the on-disk curriculum:
//
//	{"curriculum": {"1st_year": {...}, "2nd_year": {...}, "3rd_year": {...}}}
type Document struct {
	Curriculum map[string]LevelEntry `json:"curriculum"`
}

// LevelEntry is one school year. The first year lists its subjects directly;
// later years group subjects by branch.
type LevelEntry struct {
	Name     string            `json:"name,omitempty"`
	Subjects []string          `json:"subjects,omitempty"`
	Branches map[string]Branch `json:"branches,omitempty"`
}

// Branch is a specialisation track (شعبة) within a year.
type Branch struct {
	Name     string   `json:"name"`
	Subjects []string `json:"subjects"`
}

// BranchInfo pairs a branch key with its display data.
type BranchInfo struct {
	Key      string   `json:"key"`
	Name     string   `json:"name"`
	Subjects []string `json:"subjects"`
}

// Result is the verdict of a curriculum validation.
type Result struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

const documentSchema = `{
  "type": "object",
  "required": ["curriculum"],
  "properties": {
    "curriculum": {
      "type": "object",
      "required": ["1st_year", "2nd_year", "3rd_year"],
      "properties": {
        "1st_year": {
          "type": "object",
          "required": ["subjects"],
          "properties": {
            "name": {"type": "string"},
            "subjects": {"$ref": "#/definitions/subjects"}
          }
        },
        "2nd_year": {"$ref": "#/definitions/branchedLevel"},
        "3rd_year": {"$ref": "#/definitions/branchedLevel"}
      }
    }
  },
  "definitions": {
    "subjects": {
      "type": "array",
      "items": {"type": "string", "minLength": 1}
    },
    "branchedLevel": {
      "type": "object",
      "required": ["branches"],
      "properties": {
        "name": {"type": "string"},
        "branches": {
          "type": "object",
          "minProperties": 1,
          "additionalProperties": {
            "type": "object",
            "required": ["name", "subjects"],
            "properties": {
              "name": {"type": "string", "minLength": 1},
              "subjects": {"$ref": "#/definitions/subjects"}
            }
          }
        }
      }
    }
  }
}`
