package email

// Provider определяет интерфейс для отправки email
type Provider interface {
	// Send отправляет письмо
	Send(email *Email) error

	// Validate проверяет конфигурацию провайдера
	Validate() error
}

// TemplateRenderer рендерит именованные шаблоны писем
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
}
