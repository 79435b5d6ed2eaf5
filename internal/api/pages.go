package api

import (
	"bytes"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/meur/shortbox/internal/collection"
	"github.com/meur/shortbox/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// pageData is everything index.html renders
type pageData struct {
	View       collection.View
	Configured bool
	Flash      string
	LoadError  string
	Notice     string // failure whose form is not on the page
	Failure    *formFailure
	AddForm    models.ItemForm // refilled after a rejected add
}

// formFailure keeps a rejected submission next to the form that sent it
type formFailure struct {
	Target  string // add, edit or delete
	ItemID  int64
	Message string
	Form    models.ItemForm
}

type pageRenderer struct {
	index *template.Template
}

func newPageRenderer() *pageRenderer {
	funcs := template.FuncMap{
		"money": func(d decimal.Decimal) string {
			return "$" + d.StringFixed(2)
		},
		"tags": func(item models.Item) []string {
			return collection.ParseTags(item.TagString())
		},
		"gradeValue": func(g models.ConditionGrade) string {
			return strconv.FormatInt(g.ID, 10)
		},
		"failureFor": func(f *formFailure, target string, id int64) string {
			if f == nil || f.Target != target || f.ItemID != id {
				return ""
			}
			return f.Message
		},
		"editForm": editForm,
	}

	return &pageRenderer{
		index: template.Must(template.New("index.html").Funcs(funcs).ParseFS(assets, "templates/index.html")),
	}
}

func (p *pageRenderer) render(w http.ResponseWriter, status int, data pageData) error {
	var buf bytes.Buffer
	if err := p.index.Execute(&buf, data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// handleIndex renders the collection page
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, criteriaFromQuery(r), r.URL.Query().Get("flash"), nil)
}

// handleFormCreate handles the add form
func (s *Server) handleFormCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid form")
		return
	}
	form := formFromRequest(r)
	criteria := criteriaFromForm(r)

	res := s.svc.Create(r.Context(), form)
	if res.Success {
		redirectToIndex(w, r, criteria, res.Message)
		return
	}
	s.renderPage(w, r, http.StatusUnprocessableEntity, criteria, "", &formFailure{
		Target:  "add",
		Message: res.Message,
		Form:    form,
	})
}

// handleFormUpdate handles an item's edit form
func (s *Server) handleFormUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid form")
		return
	}
	form := formFromRequest(r)
	criteria := criteriaFromForm(r)

	res := s.svc.Update(r.Context(), id, form)
	if res.Success {
		redirectToIndex(w, r, criteria, res.Message)
		return
	}
	s.renderPage(w, r, http.StatusUnprocessableEntity, criteria, "", &formFailure{
		Target:  "edit",
		ItemID:  id,
		Message: res.Message,
		Form:    form,
	})
}

// handleFormDelete handles an item's delete button
func (s *Server) handleFormDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid form")
		return
	}
	criteria := criteriaFromForm(r)

	res := s.svc.Delete(r.Context(), id)
	if res.Success {
		redirectToIndex(w, r, criteria, res.Message)
		return
	}
	s.renderPage(w, r, http.StatusUnprocessableEntity, criteria, "", &formFailure{
		Target:  "delete",
		ItemID:  id,
		Message: res.Message,
	})
}

// renderPage always reads fresh state from the store before rendering
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, c collection.Criteria, flash string, failure *formFailure) {
	data := pageData{
		Configured: s.svc.Configured(),
		Flash:      flash,
		Failure:    failure,
	}
	if failure != nil && failure.Target == "add" {
		data.AddForm = failure.Form
	}

	view, err := s.svc.View(r.Context(), c)
	if err != nil {
		s.logger.Error("build view", zap.Error(err))
		data.LoadError = "Could not load the collection. Try again in a moment."
		view = collection.BuildView(collection.Snapshot{}, c)
		if status == http.StatusOK {
			status = http.StatusInternalServerError
		}
	}
	data.View = view

	if failure != nil && failure.Target != "add" && !viewHasItem(view, failure.ItemID) {
		data.Notice = failure.Message
	}

	if err := s.pages.render(w, status, data); err != nil {
		s.logger.Error("render page", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to render page")
	}
}

// editForm returns the values for an item's edit form: the rejected submission
// when that form just failed, the stored item otherwise.
func editForm(f *formFailure, item models.Item) models.ItemForm {
	if f != nil && f.Target == "edit" && f.ItemID == item.ID {
		return f.Form
	}

	form := models.ItemForm{
		Series:       item.Series,
		Issue:        item.Issue,
		CurrentValue: item.CurrentValue.StringFixed(2),
		Notes:        item.Notes,
		Tags:         item.TagString(),
	}
	if item.ConditionID != nil {
		form.ConditionID = strconv.FormatInt(*item.ConditionID, 10)
	}
	return form
}

func viewHasItem(view collection.View, id int64) bool {
	for _, g := range view.Groups {
		for _, item := range g.Items {
			if item.ID == id {
				return true
			}
		}
	}
	return false
}

func redirectToIndex(w http.ResponseWriter, r *http.Request, c collection.Criteria, flash string) {
	q := url.Values{}
	if c.Query != "" {
		q.Set("q", c.Query)
	}
	if c.Condition != collection.ShowAll {
		q.Set("condition", c.Condition)
	}
	if c.Tag != collection.ShowAll {
		q.Set("tag", c.Tag)
	}
	if flash != "" {
		q.Set("flash", flash)
	}

	target := "/"
	if len(q) > 0 {
		target += "?" + q.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func formFromRequest(r *http.Request) models.ItemForm {
	return models.ItemForm{
		Series:        r.PostFormValue("series"),
		Issue:         r.PostFormValue("issue"),
		ConditionID:   r.PostFormValue("condition_id"),
		PurchasePrice: r.PostFormValue("purchase_price"),
		CurrentValue:  r.PostFormValue("current_value"),
		Notes:         r.PostFormValue("notes"),
		Tags:          r.PostFormValue("tags"),
	}
}

// criteriaFromForm reads the filter state carried as hidden inputs
func criteriaFromForm(r *http.Request) collection.Criteria {
	return collection.Criteria{
		Query:     r.PostFormValue("q"),
		Condition: r.PostFormValue("condition"),
		Tag:       r.PostFormValue("tag"),
	}.Normalized()
}
