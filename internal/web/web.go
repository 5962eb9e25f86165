// Package web holds the console's embedded HTML templates.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"strconv"
	"time"

	"user-admin-console/internal/features/user/models"
	"user-admin-console/internal/features/user/service"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// PageTemplate is the name gin renders for GET /.
const PageTemplate = "console"

// Page is the data the console template renders.
type Page struct {
	service.View
	Today     time.Time
	Sorts     []models.Sort
	PageSizes []int
}

func NewPage(view service.View, now time.Time) Page {
	return Page{
		View:      view,
		Today:     now,
		Sorts:     models.Sorts,
		PageSizes: models.PageSizes,
	}
}

// DisplayPage is the 1-based page shown in the toolbar.
func (p Page) DisplayPage() int {
	return p.Meta.Page + 1
}

// Subtitle is the caption of the users card.
func (p Page) Subtitle() string {
	if p.Loading {
		return "Loading list…"
	}
	return fmt.Sprintf("%d total", p.Meta.TotalElements)
}

var badgeTones = map[string]string{
	"slate": "bg-slate-100 text-slate-700 border-slate-200",
	"green": "bg-green-100 text-green-700 border-green-200",
	"blue":  "bg-blue-100 text-blue-700 border-blue-200",
	"red":   "bg-rose-100 text-rose-700 border-rose-200",
}

var buttonVariants = map[string]string{
	"primary":   "bg-slate-900 text-white hover:bg-slate-800 focus-visible:ring-slate-400",
	"secondary": "bg-white text-slate-900 ring-1 ring-slate-200 hover:bg-slate-50 focus-visible:ring-slate-300",
	"ghost":     "bg-white/60 text-slate-900 ring-1 ring-slate-200 hover:bg-white focus-visible:ring-slate-300",
	"danger":    "bg-rose-600 text-white hover:bg-rose-500 focus-visible:ring-rose-400",
}

var toastTones = map[service.Tone]string{
	service.ToneGreen: "bg-emerald-600",
	service.ToneRed:   "bg-rose-600",
}

// badgeClass and buttonClass take interface{} so a primitive called
// without the key renders the default class.
func badgeClass(tone interface{}) string {
	name, _ := tone.(string)
	if c, ok := badgeTones[name]; ok {
		return c
	}
	return badgeTones["slate"]
}

func buttonClass(variant interface{}) string {
	name, _ := variant.(string)
	if c, ok := buttonVariants[name]; ok {
		return c
	}
	return buttonVariants["primary"]
}

func toastClass(tone service.Tone) string {
	if c, ok := toastTones[tone]; ok {
		return c
	}
	return toastTones[service.ToneGreen]
}

// dict builds the argument map passed to primitive templates.
func dict(pairs ...interface{}) (map[string]interface{}, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	m := make(map[string]interface{}, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}

// deletePath is the form action of a row's delete button.
func deletePath(id string, soft bool) string {
	return "/users/" + url.PathEscape(id) + "/delete?soft=" + strconv.FormatBool(soft)
}

func date(t time.Time) string {
	return t.Format("2006-01-02")
}

func FuncMap() template.FuncMap {
	return template.FuncMap{
		"badgeClass":  badgeClass,
		"buttonClass": buttonClass,
		"toastClass":  toastClass,
		"deletePath":  deletePath,
		"dict":        dict,
		"date":        date,
	}
}

// Templates parses the embedded layout and primitives.
func Templates() (*template.Template, error) {
	return template.New(PageTemplate).Funcs(FuncMap()).ParseFS(templatesFS, "templates/*.tmpl")
}
