package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/robalobadob/boardparity/internal/labels"
	"github.com/robalobadob/boardparity/internal/quiz"
)

// questionView is the JSON shape of a question.
type questionView struct {
	Mode      string `json:"mode"`
	Prompt    string `json:"prompt"`
	File      string `json:"file,omitempty"`
	Rank      int    `json:"rank,omitempty"`
	Square    string `json:"square,omitempty"`
	Highlight string `json:"highlight"`
}

// explanationView lists only the facts relevant to the question's mode.
type explanationView struct {
	File       string `json:"file,omitempty"`
	FileParity string `json:"fileParity,omitempty"`
	Rank       int    `json:"rank,omitempty"`
	RankParity string `json:"rankParity,omitempty"`
	Color      string `json:"color,omitempty"`
	SameParity *bool  `json:"sameParity,omitempty"`
}

type resultView struct {
	Correct     bool            `json:"correct"`
	Side        string          `json:"side"`
	Question    questionView    `json:"question"`
	Explanation explanationView `json:"explanation"`
	Text        string          `json:"text"` // e.g. "Correct! c → even"
}

type stateView struct {
	Mode     string       `json:"mode"`
	Running  bool         `json:"running"`
	Question questionView `json:"question"`
	Correct  int          `json:"correct"`
	Total    int          `json:"total"`
	Accuracy int          `json:"accuracy"`
	Last     *resultView  `json:"last,omitempty"`
}

func viewQuestion(q quiz.Question) questionView {
	v := questionView{Mode: q.Mode.String(), Prompt: q.Prompt(), Highlight: q.Highlight.String()}
	switch q.Mode {
	case quiz.ByFile:
		v.File = q.File.String()
	case quiz.ByRank:
		v.Rank = int(q.Rank)
	default:
		v.File = q.File.String()
		v.Rank = int(q.Rank)
		v.Square = q.Square().String()
	}
	return v
}

func viewExplanation(e quiz.Explanation) explanationView {
	var v explanationView
	if e.Mode != quiz.ByRank {
		v.File = e.File.String()
		v.FileParity = e.FileParity.String()
	}
	if e.Mode != quiz.ByFile {
		v.Rank = int(e.Rank)
		v.RankParity = e.RankParity.String()
	}
	if e.Mode == quiz.BySquare {
		same := e.SameParity()
		v.Color = e.Color.String()
		v.SameParity = &same
	}
	return v
}

func viewResult(r quiz.Result, text labels.Catalog) *resultView {
	return &resultView{
		Correct:     r.Correct,
		Side:        r.Side.String(),
		Question:    viewQuestion(r.Question),
		Explanation: viewExplanation(r.Explanation),
		Text:        text.Feedback(r),
	}
}

func viewState(s quiz.Snapshot, text labels.Catalog) stateView {
	v := stateView{
		Mode:     s.Mode.String(),
		Running:  s.Running,
		Question: viewQuestion(s.Question),
		Correct:  s.Correct,
		Total:    s.Total,
		Accuracy: s.Accuracy(),
	}
	if s.Last != nil {
		v.Last = viewResult(*s.Last, text)
	}
	return v
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes {"error": code}.
func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
