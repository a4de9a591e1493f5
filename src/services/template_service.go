package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"walter/src/models"
	"walter/src/repositories"
	"walter/src/utils"
)

// ErrUndefinedParameter is returned when a template references a parameter
// the generated responses do not define. Rendering is strict: nothing is
// silently substituted with a blank.
var ErrUndefinedParameter = errors.New("undefined template parameter")

type TemplateServiceI interface {
	BuildParameters(responses []models.GeneratedResponse) map[string]string
	Render(ctx context.Context, user *models.User, templateName string, parameters map[string]string) (string, error)
}

// TemplateService renders parameterized newsletter templates and archives
// the result.
type TemplateService struct {
	templateRepository   repositories.TemplateRepository
	newsletterRepository repositories.NewsletterRepository
}

func NewTemplateService(templateRepository repositories.TemplateRepository, newsletterRepository repositories.NewsletterRepository) *TemplateService {
	return &TemplateService{
		templateRepository:   templateRepository,
		newsletterRepository: newsletterRepository,
	}
}

// BuildParameters flattens the ordered generated responses into the mapping
// the renderer consumes. A duplicated key keeps the later response,
// matching how the responses would overwrite each other upstream.
func (s *TemplateService) BuildParameters(responses []models.GeneratedResponse) map[string]string {
	parameters := make(map[string]string, len(responses))
	for _, response := range responses {
		parameters[response.Key] = response.Text
	}
	return parameters
}

// Render binds the parameters into the named template and archives the
// rendered body for the user before returning it.
func (s *TemplateService) Render(ctx context.Context, user *models.User, templateName string, parameters map[string]string) (string, error) {
	logger := utils.LoggerFromContext(ctx)
	logger.Infof("Rendering template %q with %d parameters for %s", templateName, len(parameters), user.Email)

	text, err := s.templateRepository.GetTemplateText(ctx, templateName)
	if err != nil {
		return "", err
	}

	tmpl, err := template.New(templateName).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("parse template %q: %w", templateName, err)
	}

	var rendered strings.Builder
	if err := tmpl.Execute(&rendered, parameters); err != nil {
		// missingkey=error reports absent map keys through ExecError.
		if strings.Contains(err.Error(), "map has no entry for key") {
			return "", fmt.Errorf("%w: template %q: %v", ErrUndefinedParameter, templateName, err)
		}
		return "", fmt.Errorf("execute template %q: %w", templateName, err)
	}

	body := rendered.String()
	if err := s.newsletterRepository.PutNewsletter(ctx, user, templateName, body); err != nil {
		return "", err
	}
	return body, nil
}
