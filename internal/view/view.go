package view

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	baseDir  string
	once     sync.Once
	tplCache = struct {
		sync.RWMutex
		m map[string]*template.Template
	}{m: map[string]*template.Template{}}
)

func detectBase() {
	candidates := []string{"templates", "../templates", "../../templates", "../../../templates"}
	for _, c := range candidates {
		if fi, err := os.Stat(filepath.Clean(c)); err == nil && fi.IsDir() {
			baseDir = filepath.Clean(c)
			return
		}
	}
	baseDir = "templates"
}

// Funcs is the shared template func map.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"year": func() int { return time.Now().Year() },
		// money formats a float64 or a nullable *float64 amount.
		"money": func(v any) string {
			switch x := v.(type) {
			case float64:
				return fmt.Sprintf("%.2f", x)
			case *float64:
				if x != nil {
					return fmt.Sprintf("%.2f", *x)
				}
			}
			return ""
		},
		"date": func(t time.Time) string { return t.Format("2006-01-02") },
	}
}

// Render parses and executes a template file wrapped in layout.html (plus the
// header partial) unless the file is a full document. Parsed templates are
// cached outside DEV=1.
func Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) error {
	once.Do(detectBase)
	if data == nil {
		data = map[string]any{}
	}
	devMode := os.Getenv("DEV") == "1"
	if !devMode {
		tplCache.RLock()
		t, ok := tplCache.m[name]
		tplCache.RUnlock()
		if ok && t != nil {
			return t.Execute(w, data)
		}
	}

	mainPath := filepath.Join(baseDir, name)
	if _, err := os.Stat(mainPath); err != nil {
		return err
	}
	content, err := os.ReadFile(mainPath)
	if err != nil {
		return err
	}

	var t *template.Template
	layoutPath := filepath.Join(baseDir, "layout.html")
	useLayout := !bytes.Contains(bytes.ToLower(content), []byte("<!doctype"))
	if useLayout {
		if fi, err := os.Stat(layoutPath); err != nil || fi.IsDir() {
			useLayout = false
		}
	}
	if useLayout {
		files := []string{layoutPath, mainPath}
		header := filepath.Join(baseDir, "partials", "header.html")
		if fi, err := os.Stat(header); err == nil && !fi.IsDir() {
			files = append(files, header)
		}
		t, err = template.New("layout.html").Funcs(Funcs()).ParseFiles(files...)
	} else {
		t, err = template.New(name).Funcs(Funcs()).ParseFiles(mainPath)
	}
	if err != nil {
		return err
	}

	if !devMode {
		tplCache.Lock()
		tplCache.m[name] = t
		tplCache.Unlock()
	}
	return t.Execute(w, data)
}
