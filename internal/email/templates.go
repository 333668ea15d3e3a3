package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// TemplateReviewDecision - письмо дизайнеру о решении модерации
const TemplateReviewDecision = "review_decision"

const reviewDecisionTemplate = `<p>Hello {{.DesignerName}},</p>
<p>Your work <strong>{{.WorkTitle}}</strong> was {{.Status}}.</p>
{{if .Comment}}<p>Reviewer comment: {{.Comment}}</p>{{end}}
<p>MuseWorks</p>`

// TemplateManager реализует TemplateRenderer
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager создает менеджер со встроенными шаблонами
func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{templates: make(map[string]*template.Template)}
	// встроенный шаблон валиден, ошибка здесь - ошибка программиста
	if err := tm.AddTemplate(TemplateReviewDecision, reviewDecisionTemplate); err != nil {
		panic(err)
	}
	return tm
}

// Render рендерит шаблон с данными
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// AddTemplate добавляет или заменяет шаблон
func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()
	return nil
}
