// handlers/pages.go
package handlers

import (
	"embed"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"show-do-ingles/game"
	"show-do-ingles/leaderboard"
	"show-do-ingles/models"
	"show-do-ingles/store"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"money": game.FormatPrize,
	"inc":   func(i int) int { return i + 1 },
}).ParseFS(templateFS, "templates/index.html"))

// Screens rendered by the home page.
const (
	ScreenStart       = "start"
	ScreenLoading     = "loading"
	ScreenError       = "error"
	ScreenQuestion    = "question"
	ScreenExplanation = "explanation"
	ScreenEnd         = "end"
	ScreenLeaderboard = "leaderboard"
)

type optionView struct {
	Index    int
	Letter   string
	Text     string
	Class    string
	Disabled bool
}

type rung struct {
	Level   int
	Prize   int
	Current bool
	Passed  bool
}

type PageData struct {
	Title   string
	Screen  string
	Game    game.Snapshot
	Options []optionView
	Ladder  []rung
	Entries []models.LeaderboardEntry
}

func screenFor(snap game.Snapshot) string {
	switch snap.Status {
	case models.StatusPlaying:
		switch {
		case snap.IsLoading:
			return ScreenLoading
		case snap.LastError != "":
			return ScreenError
		case snap.Explaining:
			return ScreenExplanation
		default:
			return ScreenQuestion
		}
	case models.StatusGameOver, models.StatusWin:
		return ScreenEnd
	case models.StatusLeaderboard:
		return ScreenLeaderboard
	default:
		return ScreenStart
	}
}

func optionViews(snap game.Snapshot) []optionView {
	if snap.Question == nil {
		return nil
	}
	views := make([]optionView, len(snap.Question.Options))
	for i, text := range snap.Question.Options {
		v := optionView{Index: i, Letter: string(rune('A' + i)), Text: text, Disabled: snap.Selected != nil}
		selected := snap.Selected != nil && *snap.Selected == i
		correct := snap.Question.CorrectIndex != nil && *snap.Question.CorrectIndex == i
		switch {
		case snap.Revealed && correct:
			v.Class = "correct"
		case snap.Revealed && selected:
			v.Class = "wrong"
		case selected:
			v.Class = "selected"
		}
		views[i] = v
	}
	return views
}

func ladder(snap game.Snapshot) []rung {
	prizes := game.Ladder()
	rungs := make([]rung, 0, len(prizes))
	for i := len(prizes) - 1; i >= 0; i-- {
		level := i + 1
		rungs = append(rungs, rung{
			Level:   level,
			Prize:   prizes[i],
			Current: level == snap.Level,
			Passed:  level < snap.Level,
		})
	}
	return rungs
}

func HomePage(games *store.Games, board *leaderboard.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := games.GetOrCreate(sessionID(r)).Snapshot()

		data := PageData{
			Title:   "Show do Inglês",
			Screen:  screenFor(snap),
			Game:    snap,
			Options: optionViews(snap),
			Ladder:  ladder(snap),
		}
		if data.Screen == ScreenLeaderboard {
			data.Entries = board.Entries()
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := pageTemplate.Execute(w, data); err != nil {
			log.Printf("render home: %v", err)
		}
	}
}

// PageAction applies a transition from a form post and sends the browser back
// to the home page. Rejected transitions leave the page as it was.
func PageAction(games *store.Games) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := mux.Vars(r)["action"]
		act, ok := actions[name]
		if !ok {
			http.NotFound(w, r)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Requisição inválida", http.StatusBadRequest)
			return
		}

		req := ActionRequest{Name: r.PostForm.Get("name")}
		if raw := r.PostForm.Get("option"); raw != "" {
			option, err := strconv.Atoi(raw)
			if err != nil {
				http.Error(w, "Opção inválida", http.StatusBadRequest)
				return
			}
			req.Option = &option
		}
		if err := validateAction(name, req); err != nil {
			http.Error(w, "Informe a opção escolhida", http.StatusBadRequest)
			return
		}

		act(games.GetOrCreate(sessionID(r)), req)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
